package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "facilities"

[booking]
full_charge_within_hours = 3
half_charge_within_hours = 48
half_charge_percent = 30.0
reminder_offset_hours = 12
completion_sweep_seconds = 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	// Незаданные поля берутся из дефолтов
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "facility-service", cfg.Metrics.ServiceName)

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=facilities sslmode=disable",
		cfg.Database.DSN())

	assert.Equal(t, 12*time.Hour, cfg.Booking.ReminderOffset())
	assert.Equal(t, time.Minute, cfg.Booking.CompletionSweepInterval())

	policy := cfg.Booking.CancellationPolicy()
	require.Len(t, policy.Tiers, 2)
	assert.Equal(t, 3*time.Hour, policy.Tiers[0].NoticeLessThan)
	assert.Equal(t, 100.0, policy.Tiers[0].ChargePercent)
	assert.Equal(t, 48*time.Hour, policy.Tiers[1].NoticeLessThan)
	assert.Equal(t, 30.0, policy.Tiers[1].ChargePercent)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 2, cfg.Booking.FullChargeWithinHours)
	assert.Equal(t, 24, cfg.Booking.HalfChargeWithinHours)
	assert.Equal(t, 24*time.Hour, cfg.Booking.ReminderOffset())
	assert.Equal(t, 5*time.Minute, cfg.Booking.CompletionSweepInterval())
}

func TestLoad_InvalidTiers(t *testing.T) {
	path := writeConfig(t, `
[booking]
full_charge_within_hours = 48
half_charge_within_hours = 24
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
