package cmd

import "github.com/spf13/cobra"

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Cifras globales del back-office: AUM, cuentas, ciclos, payouts e inversores",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(false)
	if err != nil {
		return err
	}
	defer cleanup()

	o, err := svc.Overview(cmd.Context())
	if err != nil {
		return err
	}
	presenter().ShowOverview(o)
	return nil
}
