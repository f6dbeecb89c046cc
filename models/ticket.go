package models

// TicketReply is one reply appended to a support ticket's replies list.
type TicketReply struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	RepliedBy string `json:"repliedBy"`
	Time      string `json:"time"`
}

// AuditEntry records one status change applied through the dashboard, kept
// in the local database for review.
type AuditEntry struct {
	ID         int64  `json:"id"`
	Entity     string `json:"entity"`
	RecordID   string `json:"recordId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	Manual     bool   `json:"manual"`
	AdminEmail string `json:"adminEmail"`
	ChangedAt  string `json:"changedAt"`
}
