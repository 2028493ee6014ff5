package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	OTelServiceName string
	OTelEndpoint    string

	Floors         int
	SmallPerFloor  int
	MediumPerFloor int
	LargePerFloor  int
	ChargingRatio  float64

	EntryGates []string
	ExitGates  []string
}

func Load() (*Config, error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "parking-facility-service"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		EntryGates:      getEnvList("ENTRY_GATES", "ENTRY_01,ENTRY_02"),
		ExitGates:       getEnvList("EXIT_GATES", "EXIT_01,EXIT_02"),
	}

	var err error
	if cfg.Floors, err = getEnvInt("FACILITY_FLOORS", 4); err != nil {
		return nil, err
	}
	if cfg.SmallPerFloor, err = getEnvInt("SLOTS_SMALL_PER_FLOOR", 10); err != nil {
		return nil, err
	}
	if cfg.MediumPerFloor, err = getEnvInt("SLOTS_MEDIUM_PER_FLOOR", 8); err != nil {
		return nil, err
	}
	if cfg.LargePerFloor, err = getEnvInt("SLOTS_LARGE_PER_FLOOR", 4); err != nil {
		return nil, err
	}
	if cfg.ChargingRatio, err = getEnvFloat("SLOTS_CHARGING_RATIO", 0.25); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Floors <= 0 {
		return fmt.Errorf("FACILITY_FLOORS must be positive")
	}
	if c.SmallPerFloor < 0 || c.MediumPerFloor < 0 || c.LargePerFloor < 0 {
		return fmt.Errorf("per-floor slot counts cannot be negative")
	}
	if c.SmallPerFloor+c.MediumPerFloor+c.LargePerFloor == 0 {
		return fmt.Errorf("facility needs at least one slot per floor")
	}
	if c.ChargingRatio < 0 || c.ChargingRatio > 1 {
		return fmt.Errorf("SLOTS_CHARGING_RATIO must be in [0,1]")
	}
	if len(c.EntryGates) == 0 || len(c.ExitGates) == 0 {
		return fmt.Errorf("at least one entry gate and one exit gate are required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvList(key, fallback string) []string {
	value := getEnv(key, fallback)
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
