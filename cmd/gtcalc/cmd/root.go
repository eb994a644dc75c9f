package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gtfunds/calculos/config"
	"github.com/gtfunds/calculos/internal/adapters/gtapi"
	"github.com/gtfunds/calculos/internal/adapters/notify"
	"github.com/gtfunds/calculos/internal/adapters/storage"
	"github.com/gtfunds/calculos/internal/application/calculos"
	"github.com/gtfunds/calculos/internal/application/state"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logFormat  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gtcalc",
	Short: "Calculadora de rendimiento de ciclos de GT Funds",
	Long: `gtcalc proyecta el coste, el profit y el ROI de un ciclo de cuentas de prop firms
contra la API del back-office de GT Funds.

Comandos:
  estimate  - Estimar un ciclo (opcionalmente con promedios históricos)
  analyze   - Analizar el rendimiento de un ciclo existente
  stats     - Mostrar los promedios de los ciclos completados
  history   - Listar las estimaciones guardadas
  overview  - Cifras globales del back-office`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		setupLogger(cfg.Log)
		return nil
	},
}

// Execute ejecuta el comando raíz con un contexto que se cancela con SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "set log level to debug")
	rootCmd.PersistentFlags().StringVar(&logFormat, "format", "", "log format: text|json (overrides config)")
}

// newService arma el servicio contra la API configurada. Si withJournal es true
// abre el journal SQLite; el cleanup devuelto lo cierra.
func newService(withJournal bool) (*calculos.Service, func(), error) {
	client := gtapi.NewClient(cfg.API.BaseURL,
		gtapi.WithTimeout(cfg.Timeout()),
		gtapi.WithRate(cfg.API.RatePerSec),
	)

	cleanup := func() {}
	var journal *storage.SQLiteJournal
	if withJournal {
		var err error
		journal, err = storage.NewSQLiteJournal(cfg.Storage.DSN, cfg.Retention())
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		cleanup = func() {
			if err := journal.Close(); err != nil {
				slog.Warn("journal close failed", "err", err)
			}
		}
	}

	svcCfg := calculos.Config{
		ProfitTarget:   cfg.Calculator.ProfitTarget,
		HistoryWorkers: cfg.Calculator.HistoryWorkers,
	}
	if journal == nil {
		return calculos.New(svcCfg, client, client, client, nil, state.New()), cleanup, nil
	}
	return calculos.New(svcCfg, client, client, client, journal, state.New()), cleanup, nil
}

func presenter() *notify.Console {
	return notify.NewConsole()
}

// setupLogger escribe a stderr para no mezclar logs con las tablas de stdout.
func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
