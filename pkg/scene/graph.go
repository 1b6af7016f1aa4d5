// Package scene 提供宿主引擎风格的场景图
//
// 场景图由命名节点组成，节点持有位置/缩放变换和隐藏标志。
// 变换写入在下一帧生效（本实现中立即写入活源值，渲染层在下一次
// Draw 时采样到新值，效果等价）。
//
// 查找接口分两种：
//   - Find(path) 同步按路径查找单个节点
//   - FindAll(pattern) 返回异步节点集合，在下一次 Graph.Update()
//     时解析完成，调用方通过 Ready() 轮询
package scene

import (
	"log"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/facemunch/pkg/reactive"
)

// Node 场景图节点
// 持有位置/缩放变换（活源值）和隐藏标志
type Node struct {
	name     string
	parent   *Node
	children []*Node

	position *reactive.VecSource
	scale    *reactive.VecSource
	hidden   bool

	// boundPosition 非 nil 时，位置采样自外部活值（如嘴部中心）
	// 绑定后对 position 源值的写入不再可见
	boundPosition reactive.VecValue
}

// newNode 创建具有默认变换的节点（位置原点，缩放 1）
func newNode(name string) *Node {
	return &Node{
		name:     name,
		position: reactive.NewVecSource(reactive.Vec3{}),
		scale:    reactive.NewVecSource(reactive.Uniform(1.0)),
	}
}

// Name 返回节点名称
func (n *Node) Name() string {
	return n.name
}

// Path 返回从根节点（不含根）到本节点的斜杠路径
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}
	parentPath := n.parent.Path()
	if parentPath == "" {
		return n.name
	}
	return parentPath + "/" + n.name
}

// Position 采样当前位置
func (n *Node) Position() reactive.Vec3 {
	if n.boundPosition != nil {
		return n.boundPosition.Value()
	}
	return n.position.Value()
}

// PositionValue 返回节点位置的活值（用于距离绑定等派生计算）
func (n *Node) PositionValue() reactive.VecValue {
	if n.boundPosition != nil {
		return n.boundPosition
	}
	return n.position
}

// SetPosition 写入位置
// 节点位置已绑定到外部活值时写入无效（记录日志后忽略）
func (n *Node) SetPosition(v reactive.Vec3) {
	if n.boundPosition != nil {
		log.Printf("[Scene] SetPosition ignored: node %q position is bound", n.name)
		return
	}
	n.position.Set(v)
}

// SetPositionY 仅写入垂直分量，保留水平偏移
// 下落 Tween 每帧通过此方法驱动节点垂直运动
func (n *Node) SetPositionY(y float64) {
	if n.boundPosition != nil {
		log.Printf("[Scene] SetPositionY ignored: node %q position is bound", n.name)
		return
	}
	p := n.position.Value()
	p.Y = y
	n.position.Set(p)
}

// BindPosition 将节点位置绑定到外部活值
// 绑定后节点位置跟随外部值变化（如嘴部跟踪代理跟随嘴部中心）
func (n *Node) BindPosition(v reactive.VecValue) {
	n.boundPosition = v
}

// Scale 采样当前缩放
func (n *Node) Scale() reactive.Vec3 {
	return n.scale.Value()
}

// SetScale 写入缩放
func (n *Node) SetScale(v reactive.Vec3) {
	n.scale.Set(v)
}

// Hidden 返回节点是否隐藏
func (n *Node) Hidden() bool {
	return n.hidden
}

// SetHidden 设置节点隐藏标志
func (n *Node) SetHidden(hidden bool) {
	n.hidden = hidden
}

// AddChild 创建并挂接一个子节点
func (n *Node) AddChild(name string) *Node {
	child := newNode(name)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Children 返回子节点列表
func (n *Node) Children() []*Node {
	return n.children
}

// NodeQuery 异步节点集合
// FindAll 返回后处于未解析状态，Graph.Update() 解析完成后
// Ready() 返回 true，Nodes() 返回匹配节点
type NodeQuery struct {
	pattern  string
	resolved bool
	nodes    []*Node
}

// Ready 返回集合是否已解析
func (q *NodeQuery) Ready() bool {
	return q.resolved
}

// Nodes 返回匹配的节点列表，未解析时返回 nil
func (q *NodeQuery) Nodes() []*Node {
	if !q.resolved {
		return nil
	}
	return q.nodes
}

// Graph 场景图
type Graph struct {
	root    *Node
	pending []*NodeQuery
}

// NewGraph 创建空场景图
func NewGraph() *Graph {
	return &Graph{
		root: newNode(""),
	}
}

// Root 返回根节点
func (g *Graph) Root() *Node {
	return g.root
}

// Find 按斜杠路径同步查找节点，如 "face/mouth_proxy"
// 未找到时返回 nil
func (g *Graph) Find(nodePath string) *Node {
	current := g.root
	for _, part := range strings.Split(nodePath, "/") {
		if part == "" {
			continue
		}
		var next *Node
		for _, child := range current.children {
			if child.name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// FindAll 按路径模式异步查找节点集合
// 模式使用 path.Match 语法，如 "food/item_*"
// 返回的集合在下一次 Update() 调用时解析完成
func (g *Graph) FindAll(pattern string) *NodeQuery {
	query := &NodeQuery{pattern: pattern}
	g.pending = append(g.pending, query)
	return query
}

// Update 推进场景图：解析所有待处理的异步查找
// 宿主循环每帧调用一次
func (g *Graph) Update() {
	for _, query := range g.pending {
		query.nodes = g.collectMatches(query.pattern)
		query.resolved = true
		log.Printf("[Scene] Query %q resolved: %d nodes", query.pattern, len(query.nodes))
	}
	g.pending = g.pending[:0]
}

// collectMatches 收集路径匹配模式的所有节点，按路径排序保证索引顺序稳定
// 路径中的数字段按数值比较，item_9 排在 item_10 之前
func (g *Graph) collectMatches(pattern string) []*Node {
	var matches []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			if ok, err := path.Match(pattern, child.Path()); err == nil && ok {
				matches = append(matches, child)
			}
			walk(child)
		}
	}
	walk(g.root)
	sort.Slice(matches, func(i, j int) bool {
		return naturalLess(matches[i].Path(), matches[j].Path())
	})
	return matches
}

// naturalLess 比较两个路径：逐字符比较，连续数字段按数值比较
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			av, aRest := takeNumber(a)
			bv, bRest := takeNumber(b)
			if av != bv {
				return av < bv
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// takeNumber 取出字符串开头的连续数字，返回其数值和剩余部分
func takeNumber(s string) (uint64, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	v, _ := strconv.ParseUint(s[:i], 10, 64)
	return v, s[i:]
}
