package cmd

import (
	"errors"
	"fmt"

	"github.com/gtfunds/calculos/internal/adapters/gtapi"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <cycle-id>",
	Short: "Analizar el rendimiento de un ciclo existente",
	Long: `Descarga el dashboard de un ciclo y muestra la distribución de cuentas por fase,
el coste real, el profit proyectado con las cuentas en real y el ROI.

Examples:
  gtcalc analyze 6651f0c2a9e4b1d2c3f4e5a6`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(false)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := svc.AnalyzeCycle(cmd.Context(), args[0])
	if errors.Is(err, gtapi.ErrNotFound) {
		return fmt.Errorf("cycle %s not found", args[0])
	}
	if err != nil {
		return err
	}

	presenter().ShowCycleAnalysis(a)
	return nil
}
