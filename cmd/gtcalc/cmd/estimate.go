package cmd

import (
	"fmt"

	"github.com/gtfunds/calculos/internal/domain"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimar coste, profit y ROI de un ciclo",
	Long: `Calcula la proyección de un ciclo a partir del número de cuentas, el coste por
cuenta, la tasa de conversión a real y el profit objetivo por cuenta.

Con --historical los promedios de los ciclos completados reemplazan coste,
conversión y profit. Los flags no indicados toman el valor de la config.

Examples:
  gtcalc estimate
  gtcalc estimate --accounts 20 --cost 99 --conversion 12.5
  gtcalc estimate --historical --accounts 30`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

var (
	estAccounts   int
	estCost       float64
	estConversion float64
	estProfit     float64
	estHistorical bool
	estNoSave     bool
)

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().IntVarP(&estAccounts, "accounts", "n", 0, "number of accounts (default from config)")
	estimateCmd.Flags().Float64VarP(&estCost, "cost", "c", 0, "cost per account in USD (default from config)")
	estimateCmd.Flags().Float64Var(&estConversion, "conversion", 0, "conversion rate to real, 0-100 (default from config)")
	estimateCmd.Flags().Float64Var(&estProfit, "profit", 0, "profit target per funded account in USD (default from config)")
	estimateCmd.Flags().BoolVar(&estHistorical, "historical", false, "fill cost, conversion and profit from completed cycles")
	estimateCmd.Flags().BoolVar(&estNoSave, "no-save", false, "do not store the estimation in the journal")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	in := estimationInput(cmd)

	svc, cleanup, err := newService(!estNoSave)
	if err != nil {
		return err
	}
	defer cleanup()

	r, err := svc.Estimate(cmd.Context(), in, estHistorical)
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}

	var historical *domain.HistoricalAverages
	if estHistorical {
		historical = svc.Historical()
	}
	presenter().ShowEstimate(r, historical)
	return nil
}

// estimationInput combina los flags indicados con los defaults de la config.
func estimationInput(cmd *cobra.Command) domain.EstimationInput {
	in := domain.EstimationInput{
		AccountCount:           cfg.Calculator.AccountCount,
		CostPerAccount:         cfg.Calculator.CostPerAccount,
		ConversionRatePct:      cfg.Calculator.ConversionRatePct,
		ProfitTargetPerAccount: cfg.Calculator.ProfitTarget,
	}
	flags := cmd.Flags()
	if flags.Changed("accounts") {
		in.AccountCount = estAccounts
	}
	if flags.Changed("cost") {
		in.CostPerAccount = estCost
	}
	if flags.Changed("conversion") {
		in.ConversionRatePct = estConversion
	}
	if flags.Changed("profit") {
		in.ProfitTargetPerAccount = estProfit
	}
	return in
}
