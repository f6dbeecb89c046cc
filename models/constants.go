package models

// Store collection paths
const (
	PathHandyman = "Handyman"
	PathUser     = "User"
	PathJob      = "Job"
	PathTickets  = "support_requests"
	PathAdmin    = "admin"
)

// Handyman verification statuses (lowercase in stored records)
const (
	HandymanPending  = "pending"
	HandymanApproved = "approved"
	HandymanDeclined = "declined"
)

// User account statuses
const (
	UserPending   = "Pending"
	UserVerified  = "Verified"
	UserFailed    = "Failed"
	UserSuspected = "Suspected"
)

// Job statuses. "Done" is the canonical completed value; legacy records may
// still carry "Completed", which NormalizeJobStatus folds in.
const (
	JobOpen       = "Open"
	JobInProgress = "In Progress"
	JobDone       = "Done"
	JobCancelled  = "Cancelled"
)

// Support ticket statuses
const (
	TicketOpen       = "Open"
	TicketInProgress = "In Progress"
	TicketResolved   = "Resolved"
	TicketClosed     = "Closed"
)

// Admin roles
const (
	RoleMasterAdmin = "Master Admin"
	RoleStaffMember = "Staff Member"
)

// StatusAll is the filter sentinel that matches every status or category.
const StatusAll = "All"

// NormalizeJobStatus maps legacy job status spellings onto the canonical
// vocabulary. Unknown values pass through unchanged.
func NormalizeJobStatus(status string) string {
	switch status {
	case "Completed", "done":
		return JobDone
	case "Canceled":
		return JobCancelled
	case "InProgress", "in progress":
		return JobInProgress
	case "open":
		return JobOpen
	default:
		return status
	}
}
