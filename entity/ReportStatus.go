package entity

// ReportStatus is the administrative triage state of a report.
// Citizens never set it; every report starts as pending.
type ReportStatus string

const (
	StatusPending       ReportStatus = "pending"
	StatusInvestigating ReportStatus = "investigating"
	StatusResolved      ReportStatus = "resolved"
	StatusClosed        ReportStatus = "closed"
)

var AllStatuses = []ReportStatus{
	StatusPending,
	StatusInvestigating,
	StatusResolved,
	StatusClosed,
}

func (s ReportStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
