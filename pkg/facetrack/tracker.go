// Package facetrack 定义面部跟踪能力契约并提供模拟实现
//
// 真实 AR 宿主由摄像头驱动面部跟踪；本仓库的桌面演示宿主和测试
// 使用 SimulatedTracker，由输入层（鼠标/键盘）写入活源值。
// 游戏逻辑只依赖 Tracker 接口，不关心数据来源。
package facetrack

import (
	"github.com/decker502/facemunch/pkg/reactive"
)

// Tracker 面部跟踪能力
// 按面部索引暴露持续更新的嘴部开合度标量和嘴部中心位置
type Tracker interface {
	// FaceDetected 返回指定索引的面部当前是否被跟踪到
	FaceDetected(faceIndex int) bool
	// MouthCenter 返回嘴部中心位置的活值（面部坐标系，单位米）
	MouthCenter(faceIndex int) reactive.VecValue
	// MouthOpenness 返回嘴部开合度的活标量
	// 面部未被跟踪到时采样值为 0（视为闭嘴）
	MouthOpenness(faceIndex int) reactive.ScalarValue
}

// SimulatedTracker 模拟面部跟踪器
// 桌面演示宿主用输入事件驱动，测试用例直接写入
type SimulatedTracker struct {
	detected bool
	center   *reactive.VecSource
	openness *reactive.ScalarSource
}

// NewSimulatedTracker 创建模拟跟踪器，初始状态为"已跟踪到面部、闭嘴"
func NewSimulatedTracker() *SimulatedTracker {
	return &SimulatedTracker{
		detected: true,
		center:   reactive.NewVecSource(reactive.Vec3{}),
		openness: reactive.NewScalarSource(0),
	}
}

// FaceDetected 返回面部是否被跟踪到
// 模拟跟踪器只有一张面部，忽略索引
func (s *SimulatedTracker) FaceDetected(faceIndex int) bool {
	return s.detected
}

// MouthCenter 返回嘴部中心位置活值
func (s *SimulatedTracker) MouthCenter(faceIndex int) reactive.VecValue {
	return s.center
}

// MouthOpenness 返回嘴部开合度活标量
// 面部丢失时始终采样为 0（缺失面部守卫）
func (s *SimulatedTracker) MouthOpenness(faceIndex int) reactive.ScalarValue {
	return reactive.Derive(func() float64 {
		if !s.detected {
			return 0
		}
		return s.openness.Value()
	})
}

// SetFaceDetected 设置面部跟踪状态
func (s *SimulatedTracker) SetFaceDetected(detected bool) {
	s.detected = detected
}

// SetMouthCenter 写入嘴部中心位置
func (s *SimulatedTracker) SetMouthCenter(v reactive.Vec3) {
	s.center.Set(v)
}

// SetMouthOpenness 写入嘴部开合度
func (s *SimulatedTracker) SetMouthOpenness(openness float64) {
	s.openness.Set(openness)
}
