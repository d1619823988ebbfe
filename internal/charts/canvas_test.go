package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	chart "github.com/wcharczuk/go-chart/v2"
)

func TestViridisClampsOutOfRange(t *testing.T) {
	tests := map[string]struct {
		v    float64
		want float64
	}{
		"above range":  {v: 137.5, want: 100},
		"below range":  {v: -12, want: 0},
		"inside range": {v: 42, want: 42},
		"upper bound":  {v: 100, want: 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, chart.Viridis(tt.want, 0, 100), viridis(tt.v, 0, 100))
		})
	}
}

func TestNiceCeil(t *testing.T) {
	assert.Equal(t, 1.0, niceCeil(0))
	assert.Equal(t, 100.0, niceCeil(100))
	assert.Equal(t, 200.0, niceCeil(137.5))
	assert.Equal(t, 5.0, niceCeil(3.2))
}
