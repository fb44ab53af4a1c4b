package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the runtime knobs of the simulator binary.
type Config struct {
	LogLevel string
	Sim      SimConfig
}

// SimConfig shapes the random flow the simulator drives through the book.
type SimConfig struct {
	Seed        int64
	Orders      int
	PriceLevels int
	MaxQuantity int64
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Sim: SimConfig{
			Seed:        42,
			Orders:      200,
			PriceLevels: 5,
			MaxQuantity: 50,
		},
	}
}

// Load starts from Default, reads a .env file when one is present and then
// applies environment overrides. Unset or malformed variables keep their
// defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v, err := strconv.ParseInt(os.Getenv("SIM_SEED"), 10, 64); err == nil {
		cfg.Sim.Seed = v
	}
	if v, err := strconv.Atoi(os.Getenv("SIM_ORDERS")); err == nil && v > 0 {
		cfg.Sim.Orders = v
	}
	if v, err := strconv.Atoi(os.Getenv("SIM_PRICE_LEVELS")); err == nil && v > 0 {
		cfg.Sim.PriceLevels = v
	}
	if v, err := strconv.ParseInt(os.Getenv("SIM_MAX_QTY"), 10, 64); err == nil && v > 0 {
		cfg.Sim.MaxQuantity = v
	}
	return cfg
}
