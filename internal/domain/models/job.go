package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type JobStatus string

const (
	JobActive JobStatus = "ACTIVE"
	JobClosed JobStatus = "CLOSED"
	JobDraft  JobStatus = "DRAFT"
)

func ToJobStatus(s string) (JobStatus, error) {
	switch JobStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case JobActive:
		return JobActive, nil
	case JobClosed:
		return JobClosed, nil
	case JobDraft:
		return JobDraft, nil
	default:
		return "", errors.New("invalid job status")
	}
}

type JobType string

const (
	FullTime   JobType = "full-time"
	PartTime   JobType = "part-time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
	Freelance  JobType = "freelance"
)

func ToJobType(s string) (JobType, error) {
	switch JobType(strings.ToLower(strings.TrimSpace(s))) {
	case FullTime:
		return FullTime, nil
	case PartTime:
		return PartTime, nil
	case Contract:
		return Contract, nil
	case Internship:
		return Internship, nil
	case Freelance:
		return Freelance, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type Job struct {
	ID           string        `gorm:"primaryKey" json:"id"`
	EmployerID   string        `gorm:"not null;index" json:"employerId"`
	Employer     *User         `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Title        string        `gorm:"not null" json:"title"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements,omitempty"`
	CompanyName  string        `json:"companyName"`
	Location     string        `gorm:"index" json:"location"`
	SalaryMin    int           `json:"salaryMin"`
	SalaryMax    int           `json:"salaryMax"`
	Type         JobType       `gorm:"index" json:"type"`
	Category     string        `gorm:"index" json:"category,omitempty"`
	Tags         []string      `gorm:"serializer:json;type:text" json:"tags"`
	Status       JobStatus     `gorm:"not null;index" json:"status"`
	ExpiresAt    *time.Time    `json:"expiresAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func NewJob(employerID string) *Job {
	return &Job{ID: uuid.NewString(), EmployerID: employerID, Status: JobActive}
}

func (j *Job) EmployerRef() UserRef {
	return UserRef{ID: j.EmployerID, User: j.Employer}
}

func (j *Job) AcceptsApplications() bool {
	return j.Status == JobActive
}

func NormalizeTags(tags []string) []string {
	normalized := lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		return tag, tag != ""
	})
	return lo.Uniq(normalized)
}
