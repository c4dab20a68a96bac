package models

// Participant is a member of a trip.
// Participants are never edited or removed once they joined.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// TripID is the trip this participant belongs to.
	TripID string

	// Name is the display name. It is never used for equality.
	Name string

	// JoinedAt is the Unix timestamp when the participant joined the trip.
	JoinedAt int64
}
