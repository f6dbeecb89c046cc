package services

import (
	"fmt"
	"strings"

	"handyhub/backend/models"
)

// Entity bundles everything one record-list screen needs: the store path,
// the filter configuration, the transition rules, and the export columns.
// Screens differ by configuration data, not by code.
type Entity struct {
	Name        string
	Path        string
	Filter      FilterConfig
	Transitions TransitionRules
	Columns     []models.Column
}

// Entities registers the dashboard's record-list screens by URL name.
var Entities = map[string]Entity{
	"handymen": {
		Name: "handymen",
		Path: models.PathHandyman,
		Filter: FilterConfig{
			SearchFields: []string{"firstName", "lastName", "email", "phoneNumber"},
			DateField:    "createdAt",
			Rules:        HandymanRules,
		},
		Transitions: HandymanTransitions,
		Columns: []models.Column{
			{Header: "#", Func: rowNumber},
			{Header: "Name", Func: fullName},
			{Header: "Phone", Field: "phoneNumber"},
			{Header: "Address", Func: handymanAddress},
			{Header: "ID Card", Field: "photoIdCard"},
			{Header: "Certificates", Field: "certificates"},
			{Header: "Status", Func: statusColumn(HandymanRules)},
			{Header: "Submission Date", Field: "createdAt"},
		},
	},
	"users": {
		Name: "users",
		Path: models.PathUser,
		Filter: FilterConfig{
			SearchFields: []string{"firstName", "lastName", "email"},
			DateField:    "createdAt",
			Rules:        UserRules,
		},
		Transitions: UserTransitions,
		Columns: []models.Column{
			{Header: "#", Func: rowNumber},
			{Header: "Name", Func: fullName},
			{Header: "Email", Field: "email"},
			{Header: "Phone", Field: "phoneNumber"},
			{Header: "Status", Func: statusColumn(UserRules)},
			{Header: "Joined", Field: "createdAt"},
		},
	},
	"jobs": {
		Name: "jobs",
		Path: models.PathJob,
		Filter: FilterConfig{
			SearchFields:  []string{"jobTitle", "customerName", "handymanName"},
			CategoryField: "jobCategory",
			DateField:     "createdAt",
			Rules:         JobRules,
		},
		Transitions: JobTransitions,
		Columns: []models.Column{
			{Header: "#", Func: rowNumber},
			{Header: "Title", Field: "jobTitle"},
			{Header: "Category", Field: "jobCategory"},
			{Header: "Customer", Field: "customerName"},
			{Header: "Handyman", Field: "handymanName"},
			{Header: "Status", Func: statusColumn(JobRules)},
			{Header: "Created", Field: "createdAt"},
		},
	},
	"tickets": {
		Name: "tickets",
		Path: models.PathTickets,
		Filter: FilterConfig{
			SearchFields: []string{"name", "email", "subject", "message"},
			DateField:    "createdAt",
			Rules:        TicketRules,
		},
		Transitions: TicketTransitions,
		Columns: []models.Column{
			{Header: "#", Func: rowNumber},
			{Header: "Name", Field: "name"},
			{Header: "Email", Field: "email"},
			{Header: "Subject", Field: "subject"},
			{Header: "Message", Field: "message"},
			{Header: "Status", Func: statusColumn(TicketRules)},
			{Header: "Created", Field: "createdAt"},
		},
	},
}

// LookupEntity resolves a screen name from the URL.
func LookupEntity(name string) (Entity, error) {
	e, ok := Entities[name]
	if !ok {
		return Entity{}, fmt.Errorf("unknown entity %q", name)
	}
	return e, nil
}

func rowNumber(_ models.Record, i int) string {
	return fmt.Sprintf("%d", i+1)
}

func fullName(rec models.Record, _ int) string {
	return strings.TrimSpace(rec.String("firstName") + " " + rec.String("lastName"))
}

func handymanAddress(rec models.Record, _ int) string {
	parts := []string{}
	for _, f := range []string{"houseNumber", "street", "area", "thana", "district", "division", "postcode"} {
		if v := rec.String(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func statusColumn(rules StatusRules) func(models.Record, int) string {
	return func(rec models.Record, _ int) string {
		return Derive(rec, rules)
	}
}

// TicketRules treats the stored ticket status as authoritative; tickets have
// no sub-checks to derive from, only a default for never-touched records.
var TicketRules = StatusRules{
	ManualFlagField:  "statusManual",
	ManualValueField: "status",
	Negative: []NegativeRule{
		{Match: FieldMatch{Field: "status", Value: models.TicketInProgress}, Status: models.TicketInProgress},
		{Match: FieldMatch{Field: "status", Value: models.TicketResolved}, Status: models.TicketResolved},
		{Match: FieldMatch{Field: "status", Value: models.TicketClosed}, Status: models.TicketClosed},
	},
	DefaultStatus: models.TicketOpen,
}

// TicketTransitions lets staff move tickets through the support flow.
var TicketTransitions = TransitionRules{
	StatusRules: TicketRules,
	Vocabulary:  []string{models.TicketOpen, models.TicketInProgress, models.TicketResolved, models.TicketClosed},
}
