package events

import "github.com/clique77/job-portal-sub001/internal/domain/models"

var (
	ApplicationSubmittedTopic     = "application.submitted"
	ApplicationStatusChangedTopic = "application.status_changed"
	ApplicationWithdrawnTopic     = "application.withdrawn"
	CompanyCreatedTopic           = "company.created"
)

type ApplicationSubmitted struct {
	JobID       string
	JobTitle    string
	EmployerID  string
	ApplicantID string
}

type ApplicationStatusChanged struct {
	JobID       string
	JobTitle    string
	ApplicantID string
	From        models.ApplicationStatus
	To          models.ApplicationStatus
	ChangedBy   string
}

type ApplicationWithdrawn struct {
	JobID       string
	ApplicantID string
	Status      models.ApplicationStatus
}

type CompanyCreated struct {
	CompanyID string
	Name      string
	OwnerID   string
}
