package models

import (
	"time"

	"github.com/google/uuid"
)

type SavedJob struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_saved_user_job" json:"userId"`
	JobID     string    `gorm:"not null;uniqueIndex:idx_saved_user_job;index" json:"jobId"`
	Job       *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSavedJob(userID, jobID string) *SavedJob {
	return &SavedJob{ID: uuid.NewString(), UserID: userID, JobID: jobID}
}

type Resume struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	FileName  string    `gorm:"not null" json:"fileName"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewResume(userID, fileName, url string) *Resume {
	return &Resume{ID: uuid.NewString(), UserID: userID, FileName: fileName, URL: url}
}

func (r *Resume) OwnerRef() UserRef {
	return UserRef{ID: r.UserID}
}
