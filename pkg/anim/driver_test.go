package anim

import (
	"math"
	"testing"
)

// TestTimeDriverProgress 测试驱动器进度推进
func TestTimeDriverProgress(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 0, false)
	driver.Start()

	engine.Update(0.5)
	if math.Abs(driver.Progress()-0.5) > 0.001 {
		t.Errorf("500ms 后进度应该是 0.5, 实际: %v", driver.Progress())
	}

	engine.Update(0.25)
	if math.Abs(driver.Progress()-0.75) > 0.001 {
		t.Errorf("750ms 后进度应该是 0.75, 实际: %v", driver.Progress())
	}
}

// TestTimeDriverNotStarted 测试未启动的驱动器不推进
func TestTimeDriverNotStarted(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 0, false)

	engine.Update(0.5)
	if driver.Progress() != 0 {
		t.Errorf("未启动的驱动器进度应该保持 0, 实际: %v", driver.Progress())
	}
}

// TestTimeDriverCompletion 测试单次播放的完成语义
func TestTimeDriverCompletion(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 0, false)

	completions := 0
	driver.OnCompleted(func() { completions++ })
	driver.Start()

	engine.Update(1.5)
	if !driver.Completed() {
		t.Fatal("1500ms 后单次播放应该已完成")
	}
	if math.Abs(driver.Progress()-1.0) > 0.001 {
		t.Errorf("完成后进度应该夹取到 1.0, 实际: %v", driver.Progress())
	}
	if completions != 1 {
		t.Errorf("完成通知应该触发 1 次, 实际: %d", completions)
	}

	// 继续推进不会重复触发
	engine.Update(1.0)
	if completions != 1 {
		t.Errorf("完成通知不应重复触发, 实际: %d", completions)
	}
}

// TestTimeDriverFiniteLoops 测试有限循环：精确播放 loopCount 次后完成一次
func TestTimeDriverFiniteLoops(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 3, false)

	completions := 0
	driver.OnCompleted(func() { completions++ })
	driver.Start()

	// 第二次循环的中点
	engine.Update(1.5)
	if driver.Completed() {
		t.Fatal("3 次循环在 1500ms 时不应完成")
	}
	if math.Abs(driver.Progress()-0.5) > 0.001 {
		t.Errorf("第二次循环中点进度应该是 0.5, 实际: %v", driver.Progress())
	}
	if completions != 0 {
		t.Errorf("循环中途不应触发完成通知, 实际: %d", completions)
	}

	// 播放完全部 3 次循环
	engine.Update(2.0)
	if !driver.Completed() {
		t.Fatal("3000ms 后 3 次循环应该已完成")
	}
	if completions != 1 {
		t.Errorf("全部循环完毕后完成通知应该恰好触发 1 次, 实际: %d", completions)
	}
}

// TestTimeDriverInfiniteLoop 测试无限循环：永不完成
func TestTimeDriverInfiniteLoop(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, LoopInfinite, false)

	completions := 0
	driver.OnCompleted(func() { completions++ })
	driver.Start()

	for i := 0; i < 10; i++ {
		engine.Update(1.0)
	}
	if driver.Completed() {
		t.Error("无限循环驱动器不应完成")
	}
	if completions != 0 {
		t.Errorf("无限循环不应触发完成通知, 实际: %d", completions)
	}
}

// TestTimeDriverMirror 测试镜像（乒乓）播放
func TestTimeDriverMirror(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, LoopInfinite, true)
	driver.Start()

	// 第一次循环正向：1250ms 处于第二次循环（反向），frac=0.25 → 0.75
	engine.Update(1.25)
	if math.Abs(driver.Progress()-0.75) > 0.001 {
		t.Errorf("镜像反向段进度应该是 0.75, 实际: %v", driver.Progress())
	}

	// 2600ms 处于第三次循环（正向），frac=0.6
	engine.Update(1.35)
	if math.Abs(driver.Progress()-0.6) > 0.001 {
		t.Errorf("镜像正向段进度应该是 0.6, 实际: %v", driver.Progress())
	}
}

// TestTimeDriverMirrorFinalProgress 测试镜像播放的终点进度
// 偶数次循环停回 0，奇数次循环停在 1
func TestTimeDriverMirrorFinalProgress(t *testing.T) {
	tests := []struct {
		name     string
		loops    int
		expected float64
	}{
		{"偶数次循环停回起点", 2, 0.0},
		{"奇数次循环停在终点", 3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			driver := engine.NewTimeDriver(1000, tt.loops, true)
			driver.Start()

			engine.Update(float64(tt.loops) + 1.0)
			if !driver.Completed() {
				t.Fatal("驱动器应该已完成")
			}
			if math.Abs(driver.Progress()-tt.expected) > 0.001 {
				t.Errorf("终点进度应该是 %v, 实际: %v", tt.expected, driver.Progress())
			}
		})
	}
}

// TestTimeDriverStop 测试停止后不推进、不触发完成
func TestTimeDriverStop(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 0, false)

	completions := 0
	driver.OnCompleted(func() { completions++ })
	driver.Start()

	engine.Update(0.5)
	driver.Stop()
	engine.Update(2.0)

	if math.Abs(driver.Progress()-0.5) > 0.001 {
		t.Errorf("停止后进度应该保持 0.5, 实际: %v", driver.Progress())
	}
	if completions != 0 {
		t.Errorf("停止的驱动器不应触发完成通知, 实际: %d", completions)
	}
}

// TestTimeDriverOnTick 测试进度回调每次推进后触发
func TestTimeDriverOnTick(t *testing.T) {
	engine := NewEngine()
	driver := engine.NewTimeDriver(1000, 0, false)

	var ticks []float64
	driver.OnTick(func(progress float64) {
		ticks = append(ticks, progress)
	})
	driver.Start()

	engine.Update(0.25)
	engine.Update(0.25)
	engine.Update(0.25)

	if len(ticks) != 3 {
		t.Fatalf("进度回调应该触发 3 次, 实际: %d", len(ticks))
	}
	expected := []float64{0.25, 0.5, 0.75}
	for i, p := range expected {
		if math.Abs(ticks[i]-p) > 0.001 {
			t.Errorf("第 %d 次回调进度应该是 %v, 实际: %v", i+1, p, ticks[i])
		}
	}
}

// TestTimerInterval 测试固定间隔定时器触发
func TestTimerInterval(t *testing.T) {
	engine := NewEngine()

	fires := 0
	engine.NewTimer(250, func() { fires++ })

	// 4 个 250ms 周期
	for i := 0; i < 4; i++ {
		engine.Update(0.25)
	}
	if fires != 4 {
		t.Errorf("4 个周期后定时器应该触发 4 次, 实际: %d", fires)
	}

	// 一帧跨越多个间隔时连续触发
	engine.Update(1.0)
	if fires != 8 {
		t.Errorf("跨越 4 个间隔的一帧应该连续触发, 期望累计 8 次, 实际: %d", fires)
	}
}

// TestTimerCancel 测试定时器取消
func TestTimerCancel(t *testing.T) {
	engine := NewEngine()

	fires := 0
	timer := engine.NewTimer(250, func() { fires++ })

	engine.Update(0.25)
	timer.Cancel()
	engine.Update(1.0)

	if fires != 1 {
		t.Errorf("取消后定时器不应再触发, 期望 1 次, 实际: %d", fires)
	}

	// 重复取消安全
	timer.Cancel()
}

// TestTimerNonPositiveInterval 测试非正间隔的定时器被禁用
// 不触发回调，也不能让推进循环卡死
func TestTimerNonPositiveInterval(t *testing.T) {
	engine := NewEngine()

	fires := 0
	timer := engine.NewTimer(0, func() { fires++ })
	engine.NewTimer(-250, func() { fires++ })

	engine.Update(1.0)
	engine.Update(1.0)

	if fires != 0 {
		t.Errorf("非正间隔的定时器不应触发, 实际: %d", fires)
	}

	// 取消被禁用的定时器必须安全
	timer.Cancel()
}

// TestTimerCancelInsideCallback 测试在回调中取消自身
func TestTimerCancelInsideCallback(t *testing.T) {
	engine := NewEngine()

	fires := 0
	var timer *Timer
	timer = engine.NewTimer(250, func() {
		fires++
		timer.Cancel()
	})

	// 一帧跨越 4 个间隔，但第一次触发后即取消
	engine.Update(1.0)
	if fires != 1 {
		t.Errorf("回调中取消后不应继续触发, 期望 1 次, 实际: %d", fires)
	}
}
