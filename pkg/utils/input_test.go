package utils

import "testing"

func TestPointInCenteredRect(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"中心", 100, 100, true},
		{"左上角边界", 76, 76, true},
		{"右下角边界", 124, 124, true},
		{"左侧外部", 75, 100, false},
		{"下方外部", 100, 125, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInCenteredRect(tt.px, tt.py, 100, 100, 48); got != tt.want {
				t.Errorf("PointInCenteredRect(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}
