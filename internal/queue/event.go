// Package queue carries authentication audit events over RabbitMQ.
package queue

import "time"

// Event types published for each operation.
const (
	EventSignup           = "signup"
	EventLogin            = "login"
	EventPatternEnrolled  = "pattern_enrolled"
	EventPatternValidated = "pattern_validated"
	EventFaceEnrolled     = "face_enrolled"
	EventFaceVerified     = "face_verified"
)

// AuthEvent records the outcome of one credential operation.  It never
// carries secrets: no password, pattern or image data.
type AuthEvent struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Success    bool      `json:"success"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
