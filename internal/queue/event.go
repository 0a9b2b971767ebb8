// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewCreatedEvent is published when a review is stored. The background
// consumer reacts by recomputing the reviewed user's aggregate rating, so
// the User.rating invariant holds without the HTTP path blocking on it.
type ReviewCreatedEvent struct {
	ReviewID   uint    `json:"review_id"`
	ProjectID  uint    `json:"project_id"`
	ReviewerID uint    `json:"reviewer_id"`
	ReviewedID uint    `json:"reviewed_id"`
	Rating     float64 `json:"rating"`
	CreatedAt  string  `json:"created_at"`
}
