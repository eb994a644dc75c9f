package cmd

import (
	"github.com/gtfunds/calculos/internal/domain"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Mostrar los promedios de los ciclos completados",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(false)
	if err != nil {
		return err
	}
	defer cleanup()

	h, err := svc.RefreshHistorical(cmd.Context())
	if err != nil {
		return err
	}
	if h == nil {
		h = &domain.HistoricalAverages{}
	}
	presenter().ShowHistorical(*h)
	return nil
}
