package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      [3]float32
	}{
		{"zenith", 0, 90, [3]float32{0, 1, 0}},
		{"south horizon", 0, 0, [3]float32{0, 0, 1}},
		{"east horizon", 90, 0, [3]float32{1, 0, 0}},
		{"clamped past zenith", 0, 120, [3]float32{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-5)
			}
			assert.InDelta(t, 1, got.Len(), 1e-5)
		})
	}
}

func TestLightDirectionPointsAway(t *testing.T) {
	sun := SunDirection(215, 55)
	light := LightDirection(215, 55)
	assert.InDelta(t, -1, sun.Dot(light), 1e-5)
	assert.Less(t, light.Y(), float32(0))
}
