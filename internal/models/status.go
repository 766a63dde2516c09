package models

import "fmt"

// ItemStatus is the closed set of checklist-item states. Items move between
// PENDING and COMPLETED; no other value is ever persisted.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "PENDING"
	ItemStatusCompleted ItemStatus = "COMPLETED"
)

// Valid reports whether s is one of the defined item statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusCompleted:
		return true
	}
	return false
}

// ParseItemStatus converts raw handler input into an ItemStatus.
// Returns an error for anything outside the closed set so a typo can never
// reach the database.
func ParseItemStatus(raw string) (ItemStatus, error) {
	s := ItemStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid item status %q (want %q or %q)",
			raw, ItemStatusPending, ItemStatusCompleted)
	}
	return s, nil
}

// SurveyStatus is the closed set of survey lifecycle states.
type SurveyStatus string

const (
	SurveyStatusPending    SurveyStatus = "PENDING"
	SurveyStatusInProgress SurveyStatus = "IN_PROGRESS"
	SurveyStatusCompleted  SurveyStatus = "COMPLETED"
	SurveyStatusApproved   SurveyStatus = "APPROVED"
	SurveyStatusRejected   SurveyStatus = "REJECTED"
	SurveyStatusCancelled  SurveyStatus = "CANCELLED"
)

// Valid reports whether s is one of the defined survey statuses.
func (s SurveyStatus) Valid() bool {
	switch s {
	case SurveyStatusPending, SurveyStatusInProgress, SurveyStatusCompleted,
		SurveyStatusApproved, SurveyStatusRejected, SurveyStatusCancelled:
		return true
	}
	return false
}
