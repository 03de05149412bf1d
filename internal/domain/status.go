package domain

// LeadStatus is the follow-up state staff assign to a lead.
type LeadStatus string

const (
	StatusPending    LeadStatus = "pending"
	StatusContacted  LeadStatus = "contacted"
	StatusConsulting LeadStatus = "consulting"
	StatusCompleted  LeadStatus = "completed"
	StatusCancelled  LeadStatus = "cancelled"
)

var statusLabels = map[LeadStatus]string{
	StatusPending:    "대기중",
	StatusContacted:  "연락완료",
	StatusConsulting: "상담중",
	StatusCompleted:  "상담완료",
	StatusCancelled:  "취소",
}

// Valid reports whether s is one of the known statuses.
func (s LeadStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the Korean display label. Unknown or empty statuses read as pending.
func (s LeadStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusPending]
}
