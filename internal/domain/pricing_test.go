package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitBookingAmount(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// 2 часа × 500/час × 3 юнита
	assert.Equal(t, 3000.0, UnitBookingAmount(500, start, start.Add(2*time.Hour), 3))
	// Дробная длительность: 1.5 часа × 500 × 1
	assert.Equal(t, 750.0, UnitBookingAmount(500, start, start.Add(90*time.Minute), 1))
	assert.Equal(t, 0.0, UnitBookingAmount(0, start, start.Add(2*time.Hour), 3))
}

func TestEventBookingAmount(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	facilities := []*Facility{
		{ID: 1, HourlyRate: 500},
		{ID: 2, HourlyRate: 300},
	}

	// (500 + 300) × 3 часа
	assert.Equal(t, 2400.0, EventBookingAmount(facilities, start, start.Add(3*time.Hour)))
	assert.Equal(t, 0.0, EventBookingAmount(nil, start, start.Add(3*time.Hour)))
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, 900.0, ApplyDiscount(1000, 10))
	assert.Equal(t, 1000.0, ApplyDiscount(1000, 0))
	assert.Equal(t, 1000.0, ApplyDiscount(1000, -5))
	assert.Equal(t, 0.0, ApplyDiscount(1000, 150))
	// Округление до копеек
	assert.Equal(t, 833.33, ApplyDiscount(999.99, 16.666))
}
