// Package anim 提供时间驱动器、间隔定时器和 Tween 动画封装
//
// 所有时间推进由 Engine 统一驱动：宿主循环每帧调用 Engine.Update(dt)，
// Engine 推进其下所有 TimeDriver 和 Timer。游戏全程运行在单线程
// 协作式调度模型下，两次 Update 之间的逻辑不会被抢占，
// 完成回调也在 Update 内同步触发。
package anim

import "log"

// Engine 动画引擎
// 持有所有活动的时间驱动器和间隔定时器，每帧统一推进
type Engine struct {
	drivers []*TimeDriver
	timers  []*Timer
}

// NewEngine 创建动画引擎
func NewEngine() *Engine {
	return &Engine{}
}

// Update 推进引擎：先推进所有时间驱动器，再推进所有间隔定时器
// deltaTime 为距上一帧的时间增量（秒）
func (e *Engine) Update(deltaTime float64) {
	// 推进驱动器；已分离的驱动器在本轮剔除
	// 注意：推进过程中回调可能创建新驱动器（如吞吃动画），
	// 新驱动器从下一帧开始推进，因此这里按快照遍历
	drivers := e.drivers
	for _, d := range drivers {
		if !d.detached {
			d.advance(deltaTime * 1000.0)
		}
	}
	e.compactDrivers()

	timers := e.timers
	for _, t := range timers {
		if !t.cancelled {
			t.advance(deltaTime * 1000.0)
		}
	}
	e.compactTimers()
}

// NewTimer 注册一个固定间隔重复触发的定时器
// intervalMs 为触发间隔（毫秒），fn 在每个间隔到期时调用
// 非正间隔不合法：记录警告并返回一个永不触发的定时器
func (e *Engine) NewTimer(intervalMs float64, fn func()) *Timer {
	t := &Timer{
		intervalMs: intervalMs,
		fn:         fn,
	}
	if intervalMs <= 0 {
		log.Printf("[Engine] Warning: non-positive timer interval %.0fms, timer disabled", intervalMs)
		t.cancelled = true
	}
	e.timers = append(e.timers, t)
	return t
}

// compactDrivers 剔除已分离的驱动器
func (e *Engine) compactDrivers() {
	kept := e.drivers[:0]
	for _, d := range e.drivers {
		if !d.detached {
			kept = append(kept, d)
		}
	}
	e.drivers = kept
}

// compactTimers 剔除已取消的定时器
func (e *Engine) compactTimers() {
	kept := e.timers[:0]
	for _, t := range e.timers {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	e.timers = kept
}

// Timer 固定间隔重复定时器
// 由 Engine 驱动，可通过 Cancel 取消
type Timer struct {
	intervalMs    float64
	accumulatorMs float64
	fn            func()
	cancelled     bool
}

// advance 推进定时器，间隔到期时触发回调
// 一帧跨越多个间隔时会连续触发多次
func (t *Timer) advance(dtMs float64) {
	t.accumulatorMs += dtMs
	for t.accumulatorMs >= t.intervalMs {
		t.accumulatorMs -= t.intervalMs
		if t.cancelled {
			return
		}
		t.fn()
	}
}

// Cancel 取消定时器，之后不再触发
// 可安全重复调用
func (t *Timer) Cancel() {
	t.cancelled = true
}
