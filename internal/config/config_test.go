package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "parking-facility-service", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
	assert.Equal(t, 4, cfg.Floors)
	assert.Equal(t, 10, cfg.SmallPerFloor)
	assert.Equal(t, 8, cfg.MediumPerFloor)
	assert.Equal(t, 4, cfg.LargePerFloor)
	assert.InDelta(t, 0.25, cfg.ChargingRatio, 0.001)
	assert.Equal(t, []string{"ENTRY_01", "ENTRY_02"}, cfg.EntryGates)
	assert.Equal(t, []string{"EXIT_01", "EXIT_02"}, cfg.ExitGates)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FACILITY_FLOORS", "2")
	t.Setenv("SLOTS_CHARGING_RATIO", "0.5")
	t.Setenv("ENTRY_GATES", "NORTH, SOUTH ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 2, cfg.Floors)
	assert.InDelta(t, 0.5, cfg.ChargingRatio, 0.001)
	assert.Equal(t, []string{"NORTH", "SOUTH"}, cfg.EntryGates)
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("FACILITY_FLOORS", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"zero floors", map[string]string{"FACILITY_FLOORS": "0"}},
		{"negative slot count", map[string]string{"SLOTS_SMALL_PER_FLOOR": "-1"}},
		{"no slots at all", map[string]string{
			"SLOTS_SMALL_PER_FLOOR":  "0",
			"SLOTS_MEDIUM_PER_FLOOR": "0",
			"SLOTS_LARGE_PER_FLOOR":  "0",
		}},
		{"charging ratio above one", map[string]string{"SLOTS_CHARGING_RATIO": "1.5"}},
		{"no exit gates", map[string]string{"EXIT_GATES": " , "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
