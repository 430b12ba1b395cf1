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

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.75},
		{"终点", 1.0, 1.0},
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

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"护盾最小缩放", 0.1, 1.0, 0.0, 0.1},
		{"护盾最大缩放", 0.1, 1.0, 1.0, 1.0},
		{"护盾中间缩放", 0.1, 1.0, 0.5, 0.55},
		{"超出范围不限制", 0.0, 10.0, 1.5, 15.0},
		{"反向区间", 1.0, 0.0, 0.25, 0.75},
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

// TestLerpClamped 测试限制区间的插值
func TestLerpClamped(t *testing.T) {
	tests := []struct {
		name     string
		t        float64
		expected float64
	}{
		{"负进度限制为起点", -0.5, 0.1},
		{"超出进度限制为终点", 1.25, 1.0},
		{"区间内与 Lerp 一致", 0.5, 0.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LerpClamped(0.1, 1.0, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("LerpClamped(0.1, 1.0, %v) = %v, 期望 %v", tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试区间限制
func TestClamp01(t *testing.T) {
	if Clamp01(-1) != 0 {
		t.Error("Clamp01(-1) should be 0")
	}
	if Clamp01(2) != 1 {
		t.Error("Clamp01(2) should be 1")
	}
	if Clamp01(0.3) != 0.3 {
		t.Error("Clamp01(0.3) should be 0.3")
	}
	if Clamp01(math.NaN()) != 0 {
		t.Error("Clamp01(NaN) should be 0")
	}
	if got := LerpClamped(0.1, 1.0, math.NaN()); got != 0.1 {
		t.Errorf("LerpClamped(0.1, 1.0, NaN) = %v, want 0.1", got)
	}
}
