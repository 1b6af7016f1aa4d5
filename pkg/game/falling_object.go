package game

import (
	"github.com/decker502/facemunch/pkg/anim"
	"github.com/decker502/facemunch/pkg/reactive"
	"github.com/decker502/facemunch/pkg/scene"
)

// FallingObject 一个可下落的场景物体
//
// 变换由宿主场景图持有，本层只写入。DistanceToMouth 是初始化时
// 预计算的活绑定，每次采样返回物体到嘴部中心的当前距离。
//
// 不变量：
//   - 任意时刻至多持有一个未释放的 Tween
//   - Falling == true 蕴含存在一个正在驱动垂直运动或收缩的 Tween
//   - Eating == true 蕴含 Falling == true 且 Tween 为收缩动画
type FallingObject struct {
	// Node 场景图节点（变换归宿主所有）
	Node *scene.Node

	// Falling 是否处于下落状态
	Falling bool

	// Eating 收缩动画是否正在播放
	// 置位期间物体不参与吞吃扫描，重置时清除
	Eating bool

	// Tween 当前驱动此物体的动画（下落或吞吃收缩），无动画时为 nil
	Tween *anim.Tween

	// DistanceToMouth 到嘴部中心的活距离绑定（只读）
	DistanceToMouth reactive.ScalarValue
}
