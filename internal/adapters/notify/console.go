package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/gtfunds/calculos/internal/domain"
	"github.com/gtfunds/calculos/internal/ports"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// Console implementa ports.Presenter escribiendo tablas en texto plano.
type Console struct {
	out io.Writer
}

var _ ports.Presenter = (*Console)(nil)

// NewConsole crea un presenter que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un presenter para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// ShowEstimate imprime las tarjetas de la calculadora, el detalle del cálculo y,
// si hay datos, la comparación con los promedios históricos.
func (c *Console) ShowEstimate(r domain.EstimationResult, historical *domain.HistoricalAverages) {
	fmt.Fprintf(c.out, "\n=== ESTIMACIÓN DE CICLO ===\n")

	cards := tablewriter.NewWriter(c.out)
	cards.Header("Costo Total", "Profit Potencial", "ROI Estimado", "Cuentas en Real")
	cards.Append(
		money(r.TotalCost),
		money(r.ProjectedProfit),
		roi(r.ROIPct, r.ROIDefined),
		oneDecimal(r.ConvertedAccounts),
	)
	cards.Render()

	in := r.Input
	detail := tablewriter.NewWriter(c.out)
	detail.Header("Detalle", "Valor")
	detail.Append("Cuentas", fmt.Sprintf("%d", in.AccountCount))
	detail.Append("Costo por cuenta", money(in.CostPerAccount))
	detail.Append("Tasa de conversión", percent(in.ConversionRatePct))
	detail.Append("Profit objetivo por cuenta", money(in.ProfitTargetPerAccount))
	detail.Append("Profit neto", money(r.NetProfit))
	detail.Render()

	if historical == nil || historical.CompletedCycles == 0 {
		fmt.Fprintln(c.out, "  Sin datos históricos: valores por defecto")
		fmt.Fprintln(c.out)
		return
	}

	cmp := tablewriter.NewWriter(c.out)
	cmp.Header("Métrica", "Estimación", "Promedio histórico")
	cmp.Append("Tasa de conversión", percent(in.ConversionRatePct), percent(historical.AvgConversionRate))
	cmp.Append("Costo por cuenta", money(in.CostPerAccount), money(historical.AvgCostPerAccount))
	cmp.Append("Profit por cuenta", money(in.ProfitTargetPerAccount), money(historical.AvgProfitPerAccount))
	cmp.Render()

	fmt.Fprintf(c.out, "  Basado en %d ciclos completados (%d cuentas)\n\n",
		historical.CompletedCycles, historical.AccountsAnalyzed)
}

// ShowCycleAnalysis imprime el rendimiento real de un ciclo y su proyección.
func (c *Console) ShowCycleAnalysis(a domain.CycleAnalysis) {
	name := a.Cycle.Name
	if name == "" {
		name = a.Cycle.ID
	}
	fmt.Fprintf(c.out, "\n=== ANÁLISIS DE CICLO: %s [%s] ===\n", name, a.Cycle.Status)
	if !a.Cycle.StartDate.IsZero() {
		fmt.Fprintf(c.out, "  Inicio: %s\n", a.Cycle.StartDate.Format("2006-01-02"))
	}

	s := a.Summary
	phases := tablewriter.NewWriter(c.out)
	phases.Header("Fase 1", "Fase 2", "Real", "Quemada", "Total")
	phases.Append(
		fmt.Sprintf("%d", s.AccountsByPhase.Fase1),
		fmt.Sprintf("%d", s.AccountsByPhase.Fase2),
		fmt.Sprintf("%d", s.AccountsByPhase.Real),
		fmt.Sprintf("%d", s.AccountsByPhase.Quemada),
		fmt.Sprintf("%d", s.TotalAccounts),
	)
	phases.Render()

	metrics := tablewriter.NewWriter(c.out)
	metrics.Header("Métrica", "Valor")
	metrics.Append("Cuentas en real", fmt.Sprintf("%d", s.RealAccounts))
	metrics.Append("Tasa de conversión", percent(s.ConversionRatePct))
	metrics.Append("Costo total", money(a.TotalCost))
	metrics.Append("Costo promedio por cuenta", money(a.AvgCostPerAccount))
	metrics.Append("Profit objetivo por cuenta", money(a.ProfitTarget))
	metrics.Append("Profit proyectado", money(a.ProjectedProfit))
	metrics.Append("Profit neto", money(a.NetProfit))
	metrics.Append("ROI", roi(a.ROIPct, a.ROIDefined))
	metrics.Append("Tiros abiertos / cerrados", fmt.Sprintf("%d / %d", s.OpenTiros, s.ClosedTiros))
	metrics.Append("Resultado tiros", money(s.TirosResult))
	metrics.Render()

	if len(a.Tiros) > 0 {
		tiros := tablewriter.NewWriter(c.out)
		tiros.Header("Símbolo", "Estado", "Resultado", "")
		for _, t := range a.Tiros {
			mark := ""
			if !t.Valid {
				mark = "inválido"
			}
			tiros.Append(t.Symbol, string(t.Status), money(t.Result), mark)
		}
		tiros.Render()
	}
	fmt.Fprintln(c.out)
}

// ShowHistorical imprime los promedios de los ciclos completados.
func (c *Console) ShowHistorical(h domain.HistoricalAverages) {
	fmt.Fprintf(c.out, "\n=== ESTADÍSTICAS HISTÓRICAS ===\n")
	if h.CompletedCycles == 0 {
		fmt.Fprintln(c.out, "  No hay ciclos completados con cuentas")
		fmt.Fprintln(c.out)
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Métrica", "Valor")
	table.Append("Ciclos completados", fmt.Sprintf("%d", h.CompletedCycles))
	table.Append("Cuentas analizadas", fmt.Sprintf("%d", h.AccountsAnalyzed))
	table.Append("Tasa de conversión promedio", percent(h.AvgConversionRate))
	table.Append("Costo promedio por cuenta", money(h.AvgCostPerAccount))
	table.Append("Profit por cuenta", money(h.AvgProfitPerAccount))
	table.Render()
	fmt.Fprintln(c.out)
}

// ShowHistory imprime las estimaciones guardadas en el journal.
func (c *Console) ShowHistory(records []ports.EstimationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No hay estimaciones guardadas en el rango")
		return
	}

	fmt.Fprintf(c.out, "\n=== HISTORIAL DE ESTIMACIONES (%d) ===\n", len(records))
	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Fecha", "Cuentas", "Costo Total", "Profit", "ROI", "Histórico")
	for _, rec := range records {
		r := rec.Result
		hist := "no"
		if rec.UsedHistorical {
			hist = "sí"
		}
		table.Append(
			shortID(rec.ID),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Input.AccountCount),
			money(r.TotalCost),
			money(r.ProjectedProfit),
			roi(r.ROIPct, r.ROIDefined),
			hist,
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// ShowOverview imprime las cifras globales del back-office.
func (c *Console) ShowOverview(o domain.Overview) {
	fmt.Fprintf(c.out, "\n=== RESUMEN GENERAL ===\n")
	table := tablewriter.NewWriter(c.out)
	table.Header("Métrica", "Valor")
	table.Append("AUM total", money(o.TotalAUM))
	table.Append("Cuentas", fmt.Sprintf("%d", o.TotalAccounts))
	table.Append("Cuentas fondeadas", fmt.Sprintf("%d", o.FundedCount))
	table.Append("KYCs", fmt.Sprintf("%d", o.TotalKYCs))
	table.Append("Ciclos (activos)", fmt.Sprintf("%d (%d)", o.TotalCycles, o.ActiveCycles))
	table.Append("Payouts", money(o.TotalPayouts))
	table.Append("Inversores", fmt.Sprintf("%d", o.Investors))
	table.Append("Capital invertido", money(o.TotalInvested))
	table.Append("Capital en ciclos activos", money(o.ActiveInvested))
	table.Render()
	fmt.Fprintln(c.out)
}

// --- formato ---

// money formatea USD con 2 decimales: $1500.00, -$250.50.
func money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// signedPercent formatea con signo explícito: +233.33%, -100.00%.
func signedPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return d.StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func oneDecimal(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

// roi devuelve "N/A" cuando el coste total es 0.
func roi(pct float64, defined bool) string {
	if !defined {
		return "N/A"
	}
	return signedPercent(pct)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
