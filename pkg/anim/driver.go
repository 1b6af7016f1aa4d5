package anim

// LoopInfinite 表示无限循环播放
const LoopInfinite = -1

// TimeDriver 时间驱动器
// 给定时长（毫秒）、循环次数和镜像标志，产生 [0,1] 区间的进度时钟。
// 由 Engine 每帧推进，支持启动/停止和一次性完成通知。
//
// 循环语义：
//   - loopCount == LoopInfinite(-1)：无限循环，永不完成
//   - loopCount <= 1（含 0）：单次播放
//   - loopCount > 1：精确播放 loopCount 次后完成，完成通知只触发一次
//
// 镜像语义：奇数次循环正向（0→1），偶数次循环反向（1→0），
// 即乒乓播放。
type TimeDriver struct {
	durationMs float64
	loopCount  int
	mirror     bool

	running   bool
	detached  bool
	elapsedMs float64
	progress  float64
	completed bool

	// onTick 每次推进后回调当前进度（Tween 用于计算插值并写入变换）
	onTick func(progress float64)
	// onComplete 一次性完成通知
	onComplete func()
}

// NewTimeDriver 创建时间驱动器并注册到引擎
// 创建后处于停止状态，需调用 Start 启动
func (e *Engine) NewTimeDriver(durationMs float64, loopCount int, mirror bool) *TimeDriver {
	d := &TimeDriver{
		durationMs: durationMs,
		loopCount:  loopCount,
		mirror:     mirror,
	}
	e.drivers = append(e.drivers, d)
	return d
}

// Start 启动驱动器
func (d *TimeDriver) Start() {
	if d.completed || d.detached {
		return
	}
	d.running = true
}

// Stop 停止驱动器，不触发完成通知
func (d *TimeDriver) Stop() {
	d.running = false
}

// Progress 返回当前进度 [0,1]
func (d *TimeDriver) Progress() float64 {
	return d.progress
}

// Completed 返回驱动器是否已完成全部循环
func (d *TimeDriver) Completed() bool {
	return d.completed
}

// OnCompleted 注册一次性完成通知
// 完成时触发一次后即清除；无限循环的驱动器永不触发
func (d *TimeDriver) OnCompleted(fn func()) {
	d.onComplete = fn
}

// OnTick 注册每帧进度回调
func (d *TimeDriver) OnTick(fn func(progress float64)) {
	d.onTick = fn
}

// detach 将驱动器从引擎分离（Tween.Dispose 调用）
// 分离后不再推进，引擎在下一轮 Update 剔除
func (d *TimeDriver) detach() {
	d.running = false
	d.detached = true
	d.onComplete = nil
	d.onTick = nil
}

// advance 推进驱动器时钟
func (d *TimeDriver) advance(dtMs float64) {
	if !d.running || d.durationMs <= 0 {
		return
	}

	d.elapsedMs += dtMs

	if d.loopCount == LoopInfinite {
		d.progress = d.cycleProgress()
		d.fireTick()
		return
	}

	loops := d.loopCount
	if loops < 1 {
		loops = 1
	}
	totalMs := d.durationMs * float64(loops)

	if d.elapsedMs < totalMs {
		d.progress = d.cycleProgress()
		d.fireTick()
		return
	}

	// 全部循环播放完毕：夹取到终点进度，触发一次性完成通知
	d.elapsedMs = totalMs
	d.progress = d.finalProgress(loops)
	d.running = false
	d.completed = true
	d.fireTick()

	if d.onComplete != nil {
		fn := d.onComplete
		d.onComplete = nil
		fn()
	}
}

// cycleProgress 计算当前循环内的进度，镜像模式下按循环奇偶反向
func (d *TimeDriver) cycleProgress() float64 {
	cycle := int(d.elapsedMs / d.durationMs)
	frac := d.elapsedMs/d.durationMs - float64(cycle)
	if d.mirror && cycle%2 == 1 {
		return 1.0 - frac
	}
	return frac
}

// finalProgress 计算播放完毕后的终点进度
// 非镜像模式停在 1；镜像模式偶数次循环停回 0
func (d *TimeDriver) finalProgress(loops int) float64 {
	if d.mirror && loops%2 == 0 {
		return 0.0
	}
	return 1.0
}

// fireTick 触发进度回调
func (d *TimeDriver) fireTick() {
	if d.onTick != nil {
		d.onTick(d.progress)
	}
}
