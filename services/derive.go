package services

import "handyhub/backend/models"

// FieldMatch pairs a record field with the value that triggers a rule.
// Values compare loosely: booleans match JSON booleans, everything else
// matches the field's text rendering.
type FieldMatch struct {
	Field string
	Value interface{}
}

// NegativeRule maps one fatal sub-status to the overall status it forces.
type NegativeRule struct {
	Match  FieldMatch
	Status string
}

// StatusRules is the per-entity derivation table. The same Derive function
// serves handyman document approval, user phone/suspicion, and job lifecycle
// with different tables; each entity contributes field names and a status
// vocabulary, not code.
type StatusRules struct {
	// ManualFlagField marks that a human pinned the status; when it is true
	// and ManualValueField is non-empty, derivation returns that value as-is.
	ManualFlagField  string
	ManualValueField string

	// Negative rules are checked in order; first match wins.
	Negative []NegativeRule

	// Positive lists the sub-checks that must all match for PositiveStatus.
	Positive       []FieldMatch
	PositiveStatus string

	// DefaultStatus is returned when nothing else applies.
	DefaultStatus string

	// Normalize, when set, canonicalizes a raw status value before it is
	// returned (used to fold legacy job vocabulary).
	Normalize func(string) string
}

// Derive computes a record's display status from the rule table. It is total:
// missing or unknown fields fall through to the default status.
func Derive(record models.Record, rules StatusRules) string {
	if rules.ManualFlagField != "" && record.Bool(rules.ManualFlagField) {
		if pinned := record.String(rules.ManualValueField); pinned != "" {
			return rules.normalize(pinned)
		}
	}
	for _, neg := range rules.Negative {
		if matches(record, neg.Match) {
			return neg.Status
		}
	}
	if len(rules.Positive) > 0 {
		all := true
		for _, pos := range rules.Positive {
			if !matches(record, pos) {
				all = false
				break
			}
		}
		if all {
			return rules.PositiveStatus
		}
	}
	return rules.DefaultStatus
}

func (r StatusRules) normalize(status string) string {
	if r.Normalize != nil {
		return r.Normalize(status)
	}
	return status
}

func matches(record models.Record, m FieldMatch) bool {
	want, ok := m.Value.(bool)
	if ok {
		v, present := record[m.Field]
		if !present {
			return false
		}
		got, isBool := v.(bool)
		return isBool && got == want
	}
	s, _ := m.Value.(string)
	return record.String(m.Field) == s
}

// HandymanRules derives verification status from the two document approvals.
// A declined document fails the whole verification; both approved means
// approved overall; a manual decision pins the status either way.
var HandymanRules = StatusRules{
	ManualFlagField:  "verificationStatusManual",
	ManualValueField: "verificationStatus",
	Negative: []NegativeRule{
		{Match: FieldMatch{Field: "idApprovedStatus", Value: "declined"}, Status: models.HandymanDeclined},
		{Match: FieldMatch{Field: "certificateApprovedStatus", Value: "declined"}, Status: models.HandymanDeclined},
	},
	Positive: []FieldMatch{
		{Field: "idApprovedStatus", Value: "approved"},
		{Field: "certificateApprovedStatus", Value: "approved"},
	},
	PositiveStatus: models.HandymanApproved,
	DefaultStatus:  models.HandymanPending,
}

// UserRules derives account status from suspicion and phone verification.
// Suspicion overlays everything except a manual pin.
var UserRules = StatusRules{
	ManualFlagField:  "statusManual",
	ManualValueField: "status",
	Negative: []NegativeRule{
		{Match: FieldMatch{Field: "status", Value: models.UserSuspected}, Status: models.UserSuspected},
		{Match: FieldMatch{Field: "isPhoneVerified", Value: "fail"}, Status: models.UserFailed},
	},
	Positive: []FieldMatch{
		{Field: "isPhoneVerified", Value: true},
	},
	PositiveStatus: models.UserVerified,
	DefaultStatus:  models.UserPending,
}

// JobRules derives lifecycle status from the two party-side statuses.
var JobRules = StatusRules{
	ManualFlagField:  "jobStatusManual",
	ManualValueField: "jobStatus",
	Negative: []NegativeRule{
		{Match: FieldMatch{Field: "jobStatusCustomer", Value: models.JobCancelled}, Status: models.JobCancelled},
		{Match: FieldMatch{Field: "jobStatusHandyman", Value: models.JobCancelled}, Status: models.JobCancelled},
	},
	Positive: []FieldMatch{
		{Field: "jobStatusCustomer", Value: models.JobDone},
		{Field: "jobStatusHandyman", Value: models.JobDone},
	},
	PositiveStatus: models.JobDone,
	DefaultStatus:  models.JobOpen,
	Normalize:      models.NormalizeJobStatus,
}
