package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.005))
	assert.Equal(t, -10.01, Round2(-10.005))
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 1875.0, Round2(1875.0000000001))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 33.33, Round2(100.0/3))
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, ClampNonNegative(-5))
	assert.Equal(t, 0.0, ClampNonNegative(0))
	assert.Equal(t, 7.5, ClampNonNegative(7.5))
}
