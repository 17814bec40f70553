package domain

// Status is the lifecycle state of a purchase request.
// New requests always start PENDING; APPROVED and REJECTED are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether the status permits no further approval action.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ValidStatuses is the canonical set of accepted status strings.
var ValidStatuses = map[string]bool{
	"PENDING": true, "APPROVED": true, "REJECTED": true,
}

// DepartmentOptions is the fixed set of departments a request can belong to.
var DepartmentOptions = []string{
	"IT & Business Support",
	"Finance",
	"Quality Assurance",
}

// PurchaseTypeOptions is the fixed set of purchase types offered on the
// create form. The list filter instead derives its options from the loaded
// collection, so types the server introduces later still show up there.
var PurchaseTypeOptions = []string{
	"Raw Material",
	"Spare parts",
	"Consumables",
	"Indirect Goods",
	"Services",
	"CAPEX/ Small Projects",
}

// MetricsPeriod selects the aggregation window for dashboard metrics.
type MetricsPeriod string

const (
	PeriodWeekly  MetricsPeriod = "Weekly"
	PeriodMonthly MetricsPeriod = "Monthly"
	PeriodYearly  MetricsPeriod = "Yearly"
)
