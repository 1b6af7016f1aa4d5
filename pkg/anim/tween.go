package anim

import (
	"log"

	"github.com/decker502/facemunch/pkg/utils"
)

// Tween 标量插值动画
//
// 封装一个时间驱动器和一个命名缓动采样器，在 duration 秒内把
// 标量值从 start 插值到 end。对外暴露持续更新的 Value()，
// 调用方通过 Bind 把值写入变换（位置/缩放）。
//
// 生命周期：按需创建（创建即启动），被替换或播放完毕后必须
// 显式 Dispose 释放驱动器，否则泄漏引擎订阅。Dispose 可安全
// 重复调用。同一对象任意时刻至多持有一个未释放的 Tween。
type Tween struct {
	driver   *TimeDriver
	ease     utils.EaseFunc
	start    float64
	end      float64
	value    float64
	apply    func(value float64)
	disposed bool
}

// NewTween 创建并启动一个 Tween
//
// 参数：
//   - engine: 动画引擎
//   - start, end: 插值起点和终点
//   - durationSec: 单次播放时长（秒），内部转换为引擎的毫秒时间基
//   - loopCount: 循环次数，LoopInfinite(-1) 表示无限循环
//   - mirror: 是否乒乓播放
//   - easeName: 缓动函数名称（见 utils.EasingByName）；
//     名称无效时记录警告并回退到线性缓动（对用户不可见的安全策略）
//   - onComplete: 可选的一次性完成通知，nil 表示不需要
func NewTween(engine *Engine, start, end, durationSec float64, loopCount int, mirror bool, easeName string, onComplete func()) *Tween {
	ease, ok := utils.EasingByName(easeName)
	if !ok {
		log.Printf("[Tween] Warning: unknown easing %q, falling back to linear", easeName)
		ease = utils.EaseLinear
	}

	t := &Tween{
		ease:  ease,
		start: start,
		end:   end,
		value: utils.Lerp(start, end, ease(0)),
	}

	t.driver = engine.NewTimeDriver(durationSec*1000.0, loopCount, mirror)
	t.driver.OnTick(func(progress float64) {
		t.value = utils.Lerp(t.start, t.end, t.ease(progress))
		if t.apply != nil {
			t.apply(t.value)
		}
	})
	if onComplete != nil {
		t.driver.OnCompleted(onComplete)
	}
	t.driver.Start()

	return t
}

// Value 返回当前插值结果
func (t *Tween) Value() float64 {
	return t.value
}

// Bind 注册值写入回调，引擎每帧推进后调用
// 注册时立即用当前值调用一次，保证变换从正确的初始值开始
func (t *Tween) Bind(fn func(value float64)) {
	t.apply = fn
	if fn != nil {
		fn(t.value)
	}
}

// Completed 返回底层驱动器是否已完成
func (t *Tween) Completed() bool {
	return t.driver.Completed()
}

// Disposed 返回 Tween 是否已被释放
func (t *Tween) Disposed() bool {
	return t.disposed
}

// Dispose 释放 Tween：停止驱动器、注销完成通知、从引擎分离
// 必须在替换或丢弃 Tween 引用前调用；可安全重复调用
func (t *Tween) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.apply = nil
	t.driver.detach()
}
