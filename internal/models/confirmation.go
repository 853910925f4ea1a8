// internal/models/confirmation.go
package models

import "time"

// CompletionConfirmation is one emailed confirmation code for closing the
// project. Only the bcrypt hash of the code is stored.
type CompletionConfirmation struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"-"`
	Attempts  int       `json:"attempts"`
	Confirmed bool      `json:"confirmed"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
