package domain

import "time"

// RequestLog is a persisted record of one mutating API request, kept for
// after-the-fact review of who changed what.
type RequestLog struct {
	ID        string
	Method    string
	Path      string
	UserID    string
	Status    int
	Body      map[string]any
	CreatedAt time.Time
}
