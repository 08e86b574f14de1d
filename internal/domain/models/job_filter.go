package models

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type JobFilter struct {
	Query     string
	Location  string
	Type      JobType
	Category  string
	Tag       string
	Status    JobStatus
	SalaryMin int
	Page      int
	Limit     int
}

// Normalize clamps paging and defaults the status to ACTIVE.
func (f JobFilter) Normalize() JobFilter {
	f.Query = strings.TrimSpace(f.Query)
	f.Location = strings.TrimSpace(f.Location)
	f.Category = strings.TrimSpace(f.Category)
	f.Tag = strings.ToLower(strings.TrimSpace(f.Tag))
	if f.Status == "" {
		f.Status = JobActive
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
