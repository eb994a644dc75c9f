package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultCostPerAccount    = 150
	defaultConversionRatePct = 10
)

// Config es la configuración completa de gtcalc.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// APIConfig apunta a la API REST del back-office.
type APIConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RatePerSec     float64 `yaml:"rate_per_sec"`
}

// CalculatorConfig contiene los valores por defecto de la calculadora de ciclo.
type CalculatorConfig struct {
	AccountCount      int     `yaml:"account_count"`
	CostPerAccount    float64 `yaml:"cost_per_account"`
	ConversionRatePct float64 `yaml:"conversion_rate_pct"`
	// ProfitTarget es el profit esperado por cuenta en real. También se usa como
	// promedio histórico de profit mientras la API no lo derive de datos reales.
	ProfitTarget   float64 `yaml:"profit_target"`
	HistoryWorkers int     `yaml:"history_workers"` // dashboards en paralelo en el fallback local
}

// StorageConfig controla el journal local de estimaciones.
type StorageConfig struct {
	DSN           string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
	RetentionDays int    `yaml:"retention_days"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Si path está vacío o el archivo no existe se usan solo env + defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	// 0 es un valor válido para coste y conversión: el default se siembra antes
	// del YAML y solo una clave ausente lo conserva.
	cfg := Config{Calculator: CalculatorConfig{
		CostPerAccount:    defaultCostPerAccount,
		ConversionRatePct: defaultConversionRatePct,
	}}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		case os.IsNotExist(err):
			// sin archivo: defaults
		default:
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Timeout devuelve el timeout HTTP como time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Retention devuelve cuánto tiempo se conservan las estimaciones en el journal.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Storage.RetentionDays) * 24 * time.Hour
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GTFUNDS_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("GTFUNDS_DB"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://127.0.0.1:8000/api/v1"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.API.RatePerSec <= 0 {
		cfg.API.RatePerSec = 20
	}
	if cfg.Calculator.AccountCount <= 0 {
		cfg.Calculator.AccountCount = 10
	}
	if cfg.Calculator.CostPerAccount < 0 {
		cfg.Calculator.CostPerAccount = defaultCostPerAccount
	}
	if cfg.Calculator.ConversionRatePct < 0 {
		cfg.Calculator.ConversionRatePct = defaultConversionRatePct
	}
	if cfg.Calculator.ProfitTarget <= 0 {
		cfg.Calculator.ProfitTarget = 5000
	}
	if cfg.Calculator.HistoryWorkers <= 0 {
		cfg.Calculator.HistoryWorkers = 4
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "gtcalc.db"
	}
	if cfg.Storage.RetentionDays <= 0 {
		cfg.Storage.RetentionDays = 90
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
