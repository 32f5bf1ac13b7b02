package controllers

import (
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/store"
)

// Resource is one module's entry in the CRUD table: URL segment, label for
// response messages, and constructors for a single record and a list
// destination. Adding a module means adding a row here and a model; the
// controller and store are shared.
type Resource struct {
	Path     string
	Label    string
	New      func() store.Record
	NewSlice func() interface{}
}

var Resources = []Resource{
	{
		Path:     "risk-controls",
		Label:    "Risk control",
		New:      func() store.Record { return &models.RiskControl{} },
		NewSlice: func() interface{} { return &[]models.RiskControl{} },
	},
	{
		Path:     "business-documents",
		Label:    "Business document",
		New:      func() store.Record { return &models.BusinessDocument{} },
		NewSlice: func() interface{} { return &[]models.BusinessDocument{} },
	},
	{
		Path:     "business-improvements",
		Label:    "Business improvement",
		New:      func() store.Record { return &models.BusinessImprovement{} },
		NewSlice: func() interface{} { return &[]models.BusinessImprovement{} },
	},
	{
		Path:     "quality-objectives",
		Label:    "Quality objective",
		New:      func() store.Record { return &models.QualityObjective{} },
		NewSlice: func() interface{} { return &[]models.QualityObjective{} },
	},
	{
		Path:     "non-conformities",
		Label:    "Non-conformity",
		New:      func() store.Record { return &models.NonConformity{} },
		NewSlice: func() interface{} { return &[]models.NonConformity{} },
	},
	{
		Path:     "record-keeping-systems",
		Label:    "Record keeping system",
		New:      func() store.Record { return &models.RecordKeepingSystem{} },
		NewSlice: func() interface{} { return &[]models.RecordKeepingSystem{} },
	},
	{
		Path:     "third-party-evaluations",
		Label:    "Third party evaluation",
		New:      func() store.Record { return &models.ThirdPartyEvaluation{} },
		NewSlice: func() interface{} { return &[]models.ThirdPartyEvaluation{} },
	},
	{
		Path:     "performance-metrics",
		Label:    "Performance metric",
		New:      func() store.Record { return &models.PerformanceMetric{} },
		NewSlice: func() interface{} { return &[]models.PerformanceMetric{} },
	},
	{
		Path:     "customer-feedbacks",
		Label:    "Customer feedback",
		New:      func() store.Record { return &models.CustomerFeedback{} },
		NewSlice: func() interface{} { return &[]models.CustomerFeedback{} },
	},
}
