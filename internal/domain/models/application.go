package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Application belongs to exactly one job. (JobID, ApplicantID) is unique.
type Application struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	JobID       string            `gorm:"not null;uniqueIndex:idx_application_job_applicant" json:"jobId"`
	Job         *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID string            `gorm:"not null;uniqueIndex:idx_application_job_applicant;index" json:"applicantId"`
	Applicant   *User             `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Status      ApplicationStatus `gorm:"not null;index" json:"status"`
	Notes       string            `json:"notes,omitempty"`
	ResumeID    *string           `json:"resumeId,omitempty"`
	AppliedAt   time.Time         `json:"appliedAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewApplication(jobID, applicantID, notes string, resumeID *string) *Application {
	now := time.Now().UTC()
	return &Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      StatusPending,
		Notes:       strings.TrimSpace(notes),
		ResumeID:    resumeID,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
}

func (a *Application) ApplicantRef() UserRef {
	return UserRef{ID: a.ApplicantID, User: a.Applicant}
}
