package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Listar las estimaciones guardadas",
	Long: `Lista las estimaciones guardadas en el journal local, las más recientes primero.

Examples:
  gtcalc history
  gtcalc history --days 7
  gtcalc history --from 2025-01-01 --to 2025-01-31`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyDays int
	historyFrom string
	historyTo   string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyDays, "days", 30, "look back this many days when --from is not set")
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "first day, YYYY-MM-DD")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "last day (inclusive), YYYY-MM-DD")
}

func runHistory(cmd *cobra.Command, args []string) error {
	from, to, err := historyRange(time.Now(), time.Local, historyFrom, historyTo, historyDays)
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(true)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := svc.History(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	presenter().ShowHistory(records)
	return nil
}

// historyRange resuelve el rango de consulta. Sin --to el rango termina en now;
// con --to incluye el día entero.
func historyRange(now time.Time, loc *time.Location, fromDay, toDay string, days int) (time.Time, time.Time, error) {
	to := now
	if toDay != "" {
		t, err := time.ParseInLocation("2006-01-02", toDay, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
		to = t.Add(24*time.Hour - time.Millisecond)
	}

	var from time.Time
	if fromDay != "" {
		t, err := time.ParseInLocation("2006-01-02", fromDay, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
		from = t
	} else {
		if days <= 0 {
			days = 30
		}
		from = to.Add(-time.Duration(days) * 24 * time.Hour)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to", from.Format("2006-01-02"))
	}
	return from, to, nil
}
