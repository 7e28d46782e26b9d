package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedFormulaConsistency(t *testing.T) {
	// Reference row: impressions=1000, clicks=50, purchases=5,
	// spend=1000, convValue=2000.
	assert.Equal(t, 5.0, CTR(50, 1000))
	assert.Equal(t, 10.0, CVR(5, 50))
	assert.Equal(t, 200.0, CPA(1000, 5))
	assert.Equal(t, 2.0, ROAS(0, 2000, 1000))
}

func TestROASStoredOverride(t *testing.T) {
	// A positive platform-reported value wins over recomputation.
	assert.Equal(t, 3.3, ROAS(3.3, 2000, 1000))
	// Zero or negative stored values fall back to the derived ratio.
	assert.Equal(t, 2.0, ROAS(0, 2000, 1000))
	assert.Equal(t, 2.0, ROAS(-1, 2000, 1000))
	// No spend, no ratio.
	assert.Equal(t, 0.0, ROAS(0, 2000, 0))
}

func TestMERAndAOV(t *testing.T) {
	assert.Equal(t, 2.0, MER(6000, 3000))
	assert.Equal(t, 0.0, MER(6000, 0))
	assert.Equal(t, 200.0, AOV(6000, 30))
	assert.Equal(t, 0.0, AOV(6000, 0))
}

func TestZeroDenominators(t *testing.T) {
	assert.Equal(t, 0.0, CTR(10, 0))
	assert.Equal(t, 0.0, CVR(10, 0))
	assert.Equal(t, 0.0, CPA(100, 0))
}
