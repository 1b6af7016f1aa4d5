package game

import (
	"log"
	"math/rand"

	"github.com/decker502/facemunch/pkg/anim"
	"github.com/decker502/facemunch/pkg/config"
	"github.com/decker502/facemunch/pkg/facetrack"
	"github.com/decker502/facemunch/pkg/reactive"
	"github.com/decker502/facemunch/pkg/scene"
)

// primaryFace 主面部索引（本游戏只跟踪一张面部）
const primaryFace = 0

// completionKind 动画完成事件类型
type completionKind int

const (
	// fallCompleted 下落动画播放完毕（物体触底未被接住）
	fallCompleted completionKind = iota
	// eatCompleted 吞吃收缩动画播放完毕
	eatCompleted
)

// completionEvent 动画完成事件
// Tween 完成回调不直接修改共享状态，而是入队一个事件，
// 由状态机在下一个周期开头统一消费，保持单线程不变量可审计
type completionEvent struct {
	kind completionKind
	obj  *FallingObject // eatCompleted 时指向被吞吃的物体
}

// GameController 游戏控制器状态机
//
// 按固定间隔（默认 250 毫秒）轮询，驱动
// Invalid → Init → WaitPool → Tick 状态推进（Catch 为保留分支）：
// 发现下落物节点池、预计算各物体到嘴部的距离绑定、每个周期随机
// 开始一次下落并检测张嘴吞吃、把被吞吃或触底的物体重置回静止态。
//
// 所有依赖（场景图、动画引擎、面部跟踪、随机源、配置）在构造时
// 显式注入。
type GameController struct {
	cfg     *config.GameConfig
	graph   *scene.Graph
	engine  *anim.Engine
	tracker facetrack.Tracker
	rng     *rand.Rand

	state      GameState
	timer      *anim.Timer
	mouthProxy *scene.Node
	poolQuery  *scene.NodeQuery
	objects    []*FallingObject
	events     []completionEvent

	// eatenCount 本局吞吃计数（演示宿主显示用）
	eatenCount int
}

// NewGameController 创建游戏控制器，初始状态为 StateInvalid
func NewGameController(cfg *config.GameConfig, graph *scene.Graph, engine *anim.Engine, tracker facetrack.Tracker, rng *rand.Rand) *GameController {
	return &GameController{
		cfg:     cfg,
		graph:   graph,
		engine:  engine,
		tracker: tracker,
		rng:     rng,
		state:   StateInvalid,
	}
}

// State 返回当前状态
func (c *GameController) State() GameState {
	return c.state
}

// EatenCount 返回本局吞吃计数
func (c *GameController) EatenCount() int {
	return c.eatenCount
}

// Objects 返回下落物列表（StateWaitPool 解析完成前为 nil）
func (c *GameController) Objects() []*FallingObject {
	return c.objects
}

// Start 启动状态机：进入 StateInit 并注册固定间隔轮询定时器
// 重复调用无效
func (c *GameController) Start() {
	if c.state != StateInvalid {
		log.Printf("[GameController] Start ignored: already in state %s", c.state)
		return
	}
	c.state = StateInit
	c.timer = c.engine.NewTimer(c.cfg.TickIntervalMs, c.step)
	log.Printf("[GameController] Started, tick interval %.0fms", c.cfg.TickIntervalMs)
}

// Stop 停止状态机：取消轮询定时器并释放所有动画
func (c *GameController) Stop() {
	if c.timer != nil {
		c.timer.Cancel()
		c.timer = nil
	}
	for _, obj := range c.objects {
		if obj.Tween != nil {
			obj.Tween.Dispose()
			obj.Tween = nil
		}
	}
	log.Printf("[GameController] Stopped in state %s", c.state)
}

// ApplyConfig 应用新配置（热重载）
// 判定阈值和动画参数立即生效；轮询间隔变化时重建定时器
func (c *GameController) ApplyConfig(cfg *config.GameConfig) {
	oldInterval := c.cfg.TickIntervalMs
	c.cfg = cfg
	if c.timer != nil && cfg.TickIntervalMs != oldInterval {
		c.timer.Cancel()
		c.timer = c.engine.NewTimer(cfg.TickIntervalMs, c.step)
		log.Printf("[GameController] Tick interval changed: %.0fms -> %.0fms", oldInterval, cfg.TickIntervalMs)
	}
	log.Printf("[GameController] Config applied: eatRange=%.3f mouthOpenThreshold=%.2f", cfg.EatRange, cfg.MouthOpenThreshold)
}

// step 执行一个状态机周期
func (c *GameController) step() {
	switch c.state {
	case StateInit:
		c.enterInit()
	case StateWaitPool:
		c.pollPool()
	case StateTick:
		c.tick()
	case StateCatch:
		// 保留分支：当前逻辑不可达
	}
}

// enterInit 初始化入口动作：
// 隐藏嘴部跟踪代理、绑定代理位置到嘴部中心、发起节点池异步查找，
// 然后无条件进入 StateWaitPool
func (c *GameController) enterInit() {
	c.mouthProxy = c.graph.Find(c.cfg.MouthProxyPath)
	if c.mouthProxy != nil {
		c.mouthProxy.SetHidden(true)
		c.mouthProxy.BindPosition(c.tracker.MouthCenter(primaryFace))
	} else {
		// 缺失场景物体守卫：代理缺失不致命，距离绑定直接使用跟踪值
		log.Printf("[GameController] Warning: mouth proxy node %q not found", c.cfg.MouthProxyPath)
	}

	c.poolQuery = c.graph.FindAll(c.cfg.PoolPattern)
	c.state = StateWaitPool
	log.Printf("[GameController] Init done, waiting for pool %q", c.cfg.PoolPattern)
}

// pollPool 轮询异步节点池
// 解析完成后隐藏所有物体、预计算各物体的距离绑定，进入 StateTick
func (c *GameController) pollPool() {
	if !c.poolQuery.Ready() {
		return
	}

	nodes := c.poolQuery.Nodes()
	mouthCenter := c.tracker.MouthCenter(primaryFace)

	c.objects = make([]*FallingObject, 0, len(nodes))
	for _, node := range nodes {
		node.SetHidden(true)
		c.objects = append(c.objects, &FallingObject{
			Node:            node,
			DistanceToMouth: reactive.Distance(node.PositionValue(), mouthCenter),
		})
	}

	c.state = StateTick
	log.Printf("[GameController] Pool resolved: %d objects, entering Tick", len(c.objects))
}

// tick 主循环周期：
//  1. 消费上个周期以来入队的动画完成事件
//  2. 随机挑选一个物体，未在下落则开始下落
//  3. 扫描第一个在吞吃范围内的下落物，嘴张开时触发吞吃动画
func (c *GameController) tick() {
	c.drainEvents()

	// 空池守卫
	if len(c.objects) == 0 {
		return
	}

	obj := c.objects[c.rng.Intn(len(c.objects))]
	if !obj.Falling {
		c.startFall(obj)
	}

	// 按索引顺序返回第一个满足条件的物体（而非最近的），文档化的平局策略
	if target := c.findCatchTarget(); target != nil && c.mouthOpen() {
		c.startEat(target)
	}
}

// startFall 开始一次下落：
// 标记下落中、取消隐藏、随机水平偏移，并启动 0 → BottomY 的
// 垂直下落 Tween（二次方缓入）
func (c *GameController) startFall(obj *FallingObject) {
	// 任意时刻至多一个未释放的 Tween：替换前必须先释放
	if obj.Tween != nil {
		obj.Tween.Dispose()
	}

	obj.Falling = true
	obj.Node.SetHidden(false)

	offsetX := (c.rng.Float64()*2 - 1) * c.cfg.SpawnXRange
	pos := obj.Node.Position()
	obj.Node.SetPosition(reactive.Vec3{X: offsetX, Y: 0, Z: pos.Z})

	tween := anim.NewTween(c.engine, 0, c.cfg.BottomY, c.cfg.FallDurationSec, 0, false, c.cfg.FallEase, func() {
		c.events = append(c.events, completionEvent{kind: fallCompleted})
	})
	tween.Bind(obj.Node.SetPositionY)
	obj.Tween = tween

	log.Printf("[GameController] %s starts falling at x=%.3f", obj.Node.Name(), offsetX)
}

// findCatchTarget 按索引顺序扫描第一个"下落中且在吞吃范围内"的物体
// 距离在检测瞬间同步采样。收缩动画播放中的物体不参与扫描，
// 否则吞吃时长大于轮询间隔时动画会被中途重启、计数翻倍
func (c *GameController) findCatchTarget() *FallingObject {
	for _, obj := range c.objects {
		if obj.Falling && !obj.Eating && obj.DistanceToMouth.Value() < c.cfg.EatRange {
			return obj
		}
	}
	return nil
}

// mouthOpen 嘴部张开判定
// 面部未被跟踪到时视为闭嘴（缺失面部守卫）
func (c *GameController) mouthOpen() bool {
	if !c.tracker.FaceDetected(primaryFace) {
		return false
	}
	return c.tracker.MouthOpenness(primaryFace).Value() > c.cfg.MouthOpenThreshold
}

// startEat 触发吞吃动画：
// 取消下落 Tween，启动 1.0 → 0.0 的缩放收缩 Tween（二次方缓入），
// 完成后把物体重置回静止态
func (c *GameController) startEat(obj *FallingObject) {
	if obj.Tween != nil {
		obj.Tween.Dispose()
	}

	tween := anim.NewTween(c.engine, 1.0, 0.0, c.cfg.EatDurationSec, 0, false, c.cfg.EatEase, func() {
		c.events = append(c.events, completionEvent{kind: eatCompleted, obj: obj})
	})
	tween.Bind(func(v float64) {
		obj.Node.SetScale(reactive.Uniform(v))
	})
	obj.Tween = tween
	obj.Eating = true

	c.eatenCount++
	log.Printf("[GameController] %s caught! total eaten: %d", obj.Node.Name(), c.eatenCount)
}

// drainEvents 消费所有入队的动画完成事件
func (c *GameController) drainEvents() {
	if len(c.events) == 0 {
		return
	}
	events := c.events
	c.events = nil

	for _, ev := range events {
		switch ev.kind {
		case fallCompleted:
			// 触底重置：重置当前位置最低的下落物，
			// 而非刚完成 Tween 的那一个（决策记录见 DESIGN.md）
			c.resetLowestFalling()
		case eatCompleted:
			c.reset(ev.obj)
		}
	}
}

// resetLowestFalling 重置当前垂直位置最低（最负）的下落物
func (c *GameController) resetLowestFalling() {
	var lowest *FallingObject
	for _, obj := range c.objects {
		if !obj.Falling {
			continue
		}
		if lowest == nil || obj.Node.Position().Y < lowest.Node.Position().Y {
			lowest = obj
		}
	}
	if lowest != nil {
		log.Printf("[GameController] %s hit bottom, resetting", lowest.Node.Name())
		c.reset(lowest)
	}
}

// reset 把物体重置回静止态：
// 隐藏、垂直位置归零（回到顶部）、缩放恢复 1、清除下落标记、释放 Tween
// 吞吃完成和触底两条路径走完全相同的重置逻辑
func (c *GameController) reset(obj *FallingObject) {
	if obj.Tween != nil {
		obj.Tween.Dispose()
		obj.Tween = nil
	}
	obj.Falling = false
	obj.Eating = false
	obj.Node.SetHidden(true)
	obj.Node.SetPositionY(0)
	obj.Node.SetScale(reactive.Uniform(1.0))
}
