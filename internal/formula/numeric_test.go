package formula

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", `12.5`, 12.5},
		{"integer", `7`, 7},
		{"quoted number", `"3.25"`, 3.25},
		{"quoted with spaces", `"  42 "`, 42},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"n/a"`, 0},
		{"boolean", `true`, 0},
		{"object", `{"v":1}`, 0},
		{"array", `[1,2]`, 0},
		{"negative", `-5.5`, -5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, float64(f))
		})
	}
}

func TestCountUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"integer", `42`, 42},
		{"fraction truncates", `12.9`, 12},
		{"quoted", `"15"`, 15},
		{"null", `null`, 0},
		{"garbage", `"many"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, int64(c))
		})
	}
}

func TestFloatInsideStruct(t *testing.T) {
	// A partially garbage row must decode without error.
	var row struct {
		Spend  Float `json:"spend"`
		Clicks Count `json:"clicks"`
	}
	err := json.Unmarshal([]byte(`{"spend":"oops","clicks":null}`), &row)
	require.NoError(t, err)
	assert.Zero(t, float64(row.Spend))
	assert.Zero(t, int64(row.Clicks))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(10, 5))
	assert.Equal(t, 0.0, SafeDiv(10, 0))
	assert.Equal(t, 0.0, SafeDiv(0, 0))
	assert.Equal(t, 0.0, SafeDiv(10, -1))
}

func TestPct(t *testing.T) {
	assert.Equal(t, 5.0, Pct(50, 1000))
	assert.Equal(t, 0.0, Pct(50, 0))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 5.6, Round1(5.56))
	assert.Equal(t, 5.5, Round1(5.54))
	assert.Equal(t, 1.23, Round2(1.234))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.5, 0, 10))
	assert.Equal(t, 10.0, Clamp(11.2, 0, 10))
	assert.Equal(t, 7.5, Clamp(7.5, 0, 10))
}
