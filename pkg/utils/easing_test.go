package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseInQuad 测试二次方缓入函数
// 下落和吞吃动画使用的主力缓动
func TestEaseInQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.25}, // 0.5^2 = 0.25
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 验证"开始慢"的特性：前半段缓入函数应该落后于线性
	t.Run("开始慢于线性", func(t *testing.T) {
		for p := 0.1; p < 1.0; p += 0.1 {
			eased := EaseInQuad(p)
			linear := EaseLinear(p)
			if eased >= linear {
				t.Errorf("EaseInQuad(%v) = %v 应该小于线性值 %v（开始慢）", p, eased, linear)
			}
		}
	})
}

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.75}, // 1 - (1-0.5)^2 = 0.75
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseInOutCubic 测试三次方缓入缓出函数
func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.5},
		{"四分之一", 0.25, 0.0625}, // 4 * 0.25^3 = 0.0625
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEasingByName 测试命名缓动目录查询
func TestEasingByName(t *testing.T) {
	tests := []struct {
		name    string
		ease    string
		found   bool
		atHalf  float64 // 找到时 f(0.5) 的期望值
	}{
		{"线性", "linear", true, 0.5},
		{"二次缓入", "easeInQuad", true, 0.25},
		{"二次缓出", "easeOutQuad", true, 0.75},
		{"三次缓出", "easeOutCubic", true, 0.875},
		{"未知名称", "bogus", false, 0},
		{"空名称", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := EasingByName(tt.ease)
			if ok != tt.found {
				t.Fatalf("EasingByName(%q) found = %v, 期望 %v", tt.ease, ok, tt.found)
			}
			if !tt.found {
				return
			}
			if result := f(0.5); math.Abs(result-tt.atHalf) > 0.001 {
				t.Errorf("EasingByName(%q)(0.5) = %v, 期望 %v", tt.ease, result, tt.atHalf)
			}
		})
	}
}

// TestEasingCatalogBoundaries 验证目录中所有缓动函数的边界值
// 所有缓动函数必须满足 f(0)=0、f(1)=1
func TestEasingCatalogBoundaries(t *testing.T) {
	for name, f := range easings {
		t.Run(name, func(t *testing.T) {
			if start := f(0.0); math.Abs(start) > 0.001 {
				t.Errorf("%s(0) = %v, 期望 0", name, start)
			}
			if end := f(1.0); math.Abs(end-1.0) > 0.001 {
				t.Errorf("%s(1) = %v, 期望 1", name, end)
			}
		})
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
		{"下落区间", 0.0, -0.35, 0.5, -0.175},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}
