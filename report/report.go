package report

import (
	"time"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/models"
)

// ModuleMetrics is one module's block of the management report. Error is
// set when that module's queries failed; the rest of the report still
// renders and the module is left out of the health score.
type ModuleMetrics struct {
	Module             string           `json:"module"`
	Count              int64            `json:"count"`
	CompletionRate     float64          `json:"completion_rate"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
	Error              string           `json:"error,omitempty"`
}

// TrendDelta is the month-over-month movement of the average objective
// progress percentage.
type TrendDelta struct {
	LatestMonth   string  `json:"latest_month"`
	PreviousMonth string  `json:"previous_month"`
	Delta         float64 `json:"delta"`
}

type ReportSummary struct {
	BusinessArea    string           `json:"business_area"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Modules         []ModuleMetrics  `json:"modules"`
	RiskBuckets     map[string]int64 `json:"risk_buckets"`
	SeverityBuckets map[string]int64 `json:"severity_buckets"`
	ObjectiveTrend  *TrendDelta      `json:"objective_trend,omitempty"`
	OverallHealth   float64          `json:"overall_health"`
}

// reportModules lists every table the reader scans. Soft-deleted rows never
// reach the report: GORM's deleted_at filter applies to each query.
var reportModules = []struct {
	Name  string
	Model func() interface{}
}{
	{"risk_controls", func() interface{} { return &models.RiskControl{} }},
	{"business_documents", func() interface{} { return &models.BusinessDocument{} }},
	{"business_improvements", func() interface{} { return &models.BusinessImprovement{} }},
	{"quality_objectives", func() interface{} { return &models.QualityObjective{} }},
	{"non_conformities", func() interface{} { return &models.NonConformity{} }},
	{"record_keeping_systems", func() interface{} { return &models.RecordKeepingSystem{} }},
	{"third_party_evaluations", func() interface{} { return &models.ThirdPartyEvaluation{} }},
	{"performance_metrics", func() interface{} { return &models.PerformanceMetric{} }},
	{"customer_feedbacks", func() interface{} { return &models.CustomerFeedback{} }},
}

// Summarize reads the active rows of every module for one business area and
// derives the management-report numbers. Read-only; a failing module
// degrades to an error marker instead of failing the report.
func Summarize(db *gorm.DB, area string, weights Weights) ReportSummary {
	summary := ReportSummary{
		BusinessArea: area,
		GeneratedAt:  time.Now(),
	}

	for _, rm := range reportModules {
		summary.Modules = append(summary.Modules, moduleMetrics(db, area, rm.Name, rm.Model()))
	}

	summary.RiskBuckets = riskBuckets(db, area)
	summary.SeverityBuckets = severityBuckets(db, area)
	summary.ObjectiveTrend = objectiveTrend(db, area)
	summary.OverallHealth = overallHealth(summary.Modules, weights)

	return summary
}

func moduleMetrics(db *gorm.DB, area, name string, model interface{}) ModuleMetrics {
	m := ModuleMetrics{Module: name, StatusDistribution: map[string]int64{}}

	scoped := func() *gorm.DB {
		return db.Model(model).Where("business_area = ?", area)
	}

	if err := scoped().Count(&m.Count).Error; err != nil {
		m.Error = err.Error()
		return m
	}

	if m.Count > 0 {
		if err := scoped().
			Select("COALESCE(AVG(status_percentage), 0)").
			Scan(&m.CompletionRate).Error; err != nil {
			m.Error = err.Error()
			return m
		}
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := scoped().
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		m.Error = err.Error()
		return m
	}
	for _, r := range rows {
		m.StatusDistribution[r.Status] = r.Total
	}

	return m
}

// riskBuckets distributes active risk controls over the fixed residual-risk
// bands of the 1-25 matrix. Unscored controls get their own bucket.
func riskBuckets(db *gorm.DB, area string) map[string]int64 {
	buckets := map[string]int64{"low": 0, "medium": 0, "high": 0, "unscored": 0}

	var controls []models.RiskControl
	if err := db.Where("business_area = ?", area).Find(&controls).Error; err != nil {
		return buckets
	}

	for _, rc := range controls {
		switch {
		case rc.ResidualRisk <= 0:
			buckets["unscored"]++
		case rc.ResidualRisk < 8:
			buckets["low"]++
		case rc.ResidualRisk < 15:
			buckets["medium"]++
		default:
			buckets["high"]++
		}
	}
	return buckets
}

func severityBuckets(db *gorm.DB, area string) map[string]int64 {
	buckets := map[string]int64{}

	var rows []struct {
		Severity string
		Total    int64
	}
	if err := db.Model(&models.NonConformity{}).
		Where("business_area = ?", area).
		Select("severity, COUNT(*) AS total").
		Group("severity").
		Scan(&rows).Error; err != nil {
		return buckets
	}
	for _, r := range rows {
		buckets[r.Severity] = r.Total
	}
	return buckets
}

// objectiveTrend compares the average progress percentage of the two most
// recent months across the area's active objectives. Needs at least two
// months of entries, otherwise nil.
func objectiveTrend(db *gorm.DB, area string) *TrendDelta {
	var rows []struct {
		Month string
		Pct   float64
	}
	err := db.Table("objective_progresses").
		Select("objective_progresses.month AS month, AVG(objective_progresses.percentage) AS pct").
		Joins("JOIN quality_objectives ON quality_objectives.id = objective_progresses.objective_id").
		Where("quality_objectives.business_area = ? AND quality_objectives.deleted_at IS NULL", area).
		Group("objective_progresses.month").
		Order("month DESC").
		Limit(2).
		Scan(&rows).Error
	if err != nil || len(rows) < 2 {
		return nil
	}

	return &TrendDelta{
		LatestMonth:   rows[0].Month,
		PreviousMonth: rows[1].Month,
		Delta:         rows[0].Pct - rows[1].Pct,
	}
}

func overallHealth(modules []ModuleMetrics, weights Weights) float64 {
	var sum, weightSum float64
	for _, m := range modules {
		if m.Error != "" || m.Count == 0 {
			continue
		}
		w := weights.For(m.Module)
		sum += m.CompletionRate * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}
