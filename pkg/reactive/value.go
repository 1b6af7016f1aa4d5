// Package reactive 提供宿主引擎风格的响应式数值
//
// 响应式数值是"活"的：每次 Value() 采样都返回当前时刻的值。
// 可写的源值（ScalarSource / VecSource）由场景图和面部跟踪层持有，
// 派生值（Distance、GreaterThan、Derive）在采样时沿闭包链向源值求值，
// 不做任何缓存。整个游戏运行在单线程协作式调度模型下，
// 源值上的互斥锁仅用于保护跨帧读写的边界情况。
package reactive

import (
	"math"
	"sync"
)

// Vec3 三维向量（位置/缩放）
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Uniform 返回三个分量相同的向量（用于统一缩放）
func Uniform(v float64) Vec3 {
	return Vec3{X: v, Y: v, Z: v}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Length 返回向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ScalarValue 可采样的活标量
type ScalarValue interface {
	// Value 同步采样当前值
	Value() float64
}

// VecValue 可采样的活向量
type VecValue interface {
	// Value 同步采样当前值
	Value() Vec3
}

// BoolValue 可采样的活布尔值（由标量比较派生）
type BoolValue interface {
	// Value 同步采样当前值
	Value() bool
}

// ScalarSource 可写的标量源值
type ScalarSource struct {
	mu sync.RWMutex
	v  float64
}

// NewScalarSource 创建初始值为 v 的标量源值
func NewScalarSource(v float64) *ScalarSource {
	return &ScalarSource{v: v}
}

// Value 采样当前值
func (s *ScalarSource) Value() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Set 写入新值
func (s *ScalarSource) Set(v float64) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

// VecSource 可写的向量源值
type VecSource struct {
	mu sync.RWMutex
	v  Vec3
}

// NewVecSource 创建初始值为 v 的向量源值
func NewVecSource(v Vec3) *VecSource {
	return &VecSource{v: v}
}

// Value 采样当前值
func (s *VecSource) Value() Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Set 写入新值
func (s *VecSource) Set(v Vec3) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

// derivedScalar 由闭包派生的活标量
type derivedScalar struct {
	f func() float64
}

func (d *derivedScalar) Value() float64 {
	return d.f()
}

// derivedBool 由闭包派生的活布尔值
type derivedBool struct {
	f func() bool
}

func (d *derivedBool) Value() bool {
	return d.f()
}

// Derive 从闭包创建派生标量
// 每次采样时重新求值，闭包内可采样任意其他活值
func Derive(f func() float64) ScalarValue {
	return &derivedScalar{f: f}
}

// Distance 创建两个活位置之间的活距离标量
// 每次采样时计算 |a - b|
func Distance(a, b VecValue) ScalarValue {
	return &derivedScalar{f: func() float64 {
		return a.Value().Sub(b.Value()).Length()
	}}
}

// GreaterThan 创建"标量大于阈值"的活布尔值
func GreaterThan(s ScalarValue, threshold float64) BoolValue {
	return &derivedBool{f: func() bool {
		return s.Value() > threshold
	}}
}

// LessThan 创建"标量小于阈值"的活布尔值
func LessThan(s ScalarValue, threshold float64) BoolValue {
	return &derivedBool{f: func() bool {
		return s.Value() < threshold
	}}
}
