package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
)

// BuildPDF renders a ReportSummary as a one-page management report. The
// completion chart is drawn with go-chart and embedded as a PNG; if the
// chart fails to render the report ships without it.
func BuildPDF(summary ReportSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Management Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Management Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Business area: %s", summary.BusinessArea), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", summary.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall health: %.1f%%", summary.OverallHealth), "", 1, "L", false, 0, "")
	if summary.ObjectiveTrend != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Objective progress %s vs %s: %+.1f pts",
			summary.ObjectiveTrend.LatestMonth, summary.ObjectiveTrend.PreviousMonth,
			summary.ObjectiveTrend.Delta), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Module table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 7, "Module", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Records", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Completion", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range summary.Modules {
		pdf.CellFormat(90, 7, moduleTitle(m.Module), "1", 0, "L", false, 0, "")
		if m.Error != "" {
			pdf.CellFormat(70, 7, "unavailable", "1", 1, "C", false, 0, "")
			continue
		}
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", m.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.1f%%", m.CompletionRate), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Risk and severity distributions
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Residual risk distribution", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, bucket := range []string{"low", "medium", "high", "unscored"} {
		pdf.CellFormat(0, 6, fmt.Sprintf("  %s: %d", bucket, summary.RiskBuckets[bucket]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	if len(summary.SeverityBuckets) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Non-conformity severity", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, sev := range []string{"minor", "major", "critical"} {
			if n, ok := summary.SeverityBuckets[sev]; ok {
				pdf.CellFormat(0, 6, fmt.Sprintf("  %s: %d", sev, n), "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(2)
	}

	if png, err := completionChart(summary); err == nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("completion-chart", opts, bytes.NewReader(png))
		pdf.ImageOptions("completion-chart", 15, pdf.GetY(), 180, 0, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func completionChart(summary ReportSummary) ([]byte, error) {
	var bars []chart.Value
	for _, m := range summary.Modules {
		if m.Error != "" {
			continue
		}
		bars = append(bars, chart.Value{Value: m.CompletionRate, Label: shortTitle(m.Module)})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no modules to chart")
	}

	graph := chart.BarChart{
		Title:    "Completion rate by module",
		Width:    900,
		Height:   360,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func moduleTitle(table string) string {
	words := strings.Split(table, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}

func shortTitle(table string) string {
	words := strings.Split(table, "_")
	abbr := make([]byte, 0, len(words))
	for _, w := range words {
		if len(w) > 0 {
			abbr = append(abbr, w[0])
		}
	}
	return strings.ToUpper(string(abbr))
}
