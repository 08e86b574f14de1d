package models

import "strings"

// NormalizeID is the only place user ids are made comparable. Every ownership
// check goes through it.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// UserRef points at a user either by raw id or by a loaded record. When both
// are present the loaded record wins.
type UserRef struct {
	ID   string
	User *User
}

func (r UserRef) Key() string {
	if r.User != nil && r.User.ID != "" {
		return NormalizeID(r.User.ID)
	}
	return NormalizeID(r.ID)
}

func (r UserRef) Is(userID string) bool {
	key := r.Key()
	return key != "" && key == NormalizeID(userID)
}
