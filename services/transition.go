package services

import (
	"errors"
	"fmt"
	"time"

	"handyhub/backend/models"
)

// StatusChangeRequest asks for one record's status to change. Manual
// requests come from an explicit admin action and pin the result against
// future automatic derivation; automatic requests come from document
// approval actions and defer to any existing pin.
type StatusChangeRequest struct {
	RecordID   string `json:"recordId"`
	Status     string `json:"status"`
	Manual     bool   `json:"manual"`
	ChangeType string `json:"changeType"`
}

// ErrUnknownStatus rejects a request whose status is outside the entity's
// vocabulary.
var ErrUnknownStatus = errors.New("unknown status value")

// TransitionRules extends a derivation table with the entity's status
// vocabulary.
type TransitionRules struct {
	StatusRules
	// Vocabulary is the closed set of statuses an admin may request.
	Vocabulary []string
}

// Apply validates a status change against the current record and produces
// the minimal field-level patch to persist, stamped with the acting admin.
//
// Returned patches never overwrite whole records, so concurrent writers to
// other fields are preserved. A nil patch with a nil error means the request
// was a no-op (already at the requested status, or an automatic change
// suppressed by a manual pin).
func Apply(record models.Record, req StatusChangeRequest, rules TransitionRules, actor models.Actor) (map[string]interface{}, error) {
	if !rules.allows(req.Status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, req.Status)
	}

	current := Derive(record, rules.StatusRules)
	if current == req.Status {
		// Idempotent: setting the derived status again succeeds with no
		// field changes signaled.
		return nil, nil
	}

	if !req.Manual && record.Bool(rules.ManualFlagField) {
		// Automatic derivation never clobbers a manual decision.
		return nil, nil
	}

	fields := map[string]interface{}{
		rules.ManualValueField: req.Status,
		"lastUpdatedBy":        Stamp(actor, req.ChangeType),
	}
	if req.Manual {
		fields[rules.ManualFlagField] = true
	}
	return fields, nil
}

// Stamp builds the lastUpdatedBy value written alongside every mutation.
func Stamp(actor models.Actor, changeType string) models.LastUpdatedBy {
	if changeType == "" {
		changeType = "status"
	}
	return models.LastUpdatedBy{
		AdminEmail: actor.Email,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		ChangeType: changeType,
	}
}

func (r TransitionRules) allows(status string) bool {
	for _, s := range r.Vocabulary {
		if s == status {
			return true
		}
	}
	return false
}

// HandymanTransitions is the verification-status state machine for handymen.
var HandymanTransitions = TransitionRules{
	StatusRules: HandymanRules,
	Vocabulary:  []string{models.HandymanPending, models.HandymanApproved, models.HandymanDeclined},
}

// UserTransitions covers user account status including the Suspected overlay,
// which is reversible from any state.
var UserTransitions = TransitionRules{
	StatusRules: UserRules,
	Vocabulary:  []string{models.UserPending, models.UserVerified, models.UserFailed, models.UserSuspected},
}

// JobTransitions covers the job lifecycle with the canonical vocabulary.
var JobTransitions = TransitionRules{
	StatusRules: JobRules,
	Vocabulary:  []string{models.JobOpen, models.JobInProgress, models.JobDone, models.JobCancelled},
}
