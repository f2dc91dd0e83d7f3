// Package ratingclient declares the external rating-service contract
// the match runner calls after a match ends. The service itself is an
// external collaborator; this package carries only types and the
// interface the core depends on.
package ratingclient

import "context"

// Format identifies the match shape a rating update applies to.
type Format string

const (
	Format1v1 Format = "1v1"
	FormatFFA Format = "ffa"
	Format2v2 Format = "2v2"
)

// Participant is one bot version's result in a finished match.
type Participant struct {
	BotVersionID string
	Score        int
	Placement    *int
	PriorRating  float64
}

// Request is one match's full outcome, submitted for rating.
type Request struct {
	Format       Format
	Participants []Participant
}

// RatingDelta is the rating change computed for one participant.
type RatingDelta struct {
	BotVersionID string
	Delta        float64
}

// RatingService applies a finished match's outcome to each
// participant's rating. The core only calls it; it never implements
// it.
type RatingService interface {
	ApplyOutcome(ctx context.Context, req Request) ([]RatingDelta, error)
}
