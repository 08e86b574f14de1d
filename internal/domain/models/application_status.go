package models

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ApplicationStatus is the lifecycle state of a single application.
//
//	PENDING ──► UNDER_REVIEW ──► INTERVIEW_SCHEDULED ──► ACCEPTED
//	   │             │                   │
//	   └─────────────┴───────────────────┴──► REJECTED
//
// ACCEPTED and REJECTED are terminal.
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "PENDING"
	StatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusRejected           ApplicationStatus = "REJECTED"
)

var AllApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusAccepted,
	StatusRejected,
}

var validStatusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:            {StatusUnderReview, StatusRejected},
	StatusUnderReview:        {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusAccepted, StatusRejected},
}

var withdrawableStatuses = []ApplicationStatus{StatusPending, StatusUnderReview}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if lo.Contains(AllApplicationStatuses, status) {
		return status, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether to is a legal successor of from.
func CanTransition(from, to ApplicationStatus) bool {
	return lo.Contains(validStatusTransitions[from], to)
}

func (s ApplicationStatus) NextStatuses() []ApplicationStatus {
	return append([]ApplicationStatus(nil), validStatusTransitions[s]...)
}

func (s ApplicationStatus) IsTerminal() bool {
	return len(validStatusTransitions[s]) == 0
}

func (s ApplicationStatus) IsWithdrawable() bool {
	return lo.Contains(withdrawableStatuses, s)
}
