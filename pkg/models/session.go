package models

import "time"

// GameKind identifies an interactive game
type GameKind string

const (
	GameTrivia      GameKind = "trivia"
	GameGuessNumber GameKind = "gtn"
)

// SessionState is the lifecycle state of a GameSession.
// Transitions are one-way: Pending -> Resolved or Pending -> TimedOut.
// Cancelled only happens when the bot shuts down with the session pending.
type SessionState int

const (
	SessionPending SessionState = iota
	SessionResolved
	SessionTimedOut
	SessionCancelled
)

// String returns the string representation of the session state
func (s SessionState) String() string {
	switch s {
	case SessionPending:
		return "pending"
	case SessionResolved:
		return "resolved"
	case SessionTimedOut:
		return "timed_out"
	case SessionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// GameSession is a short-lived interactive game scoped to a channel
type GameSession struct {
	Kind        GameKind     `json:"kind"`
	ChannelID   string       `json:"channelId"`
	AuthorID    string       `json:"authorId"`
	Target      string       `json:"-"`
	Attempts    int          `json:"attempts"`
	MaxAttempts int          `json:"maxAttempts"`
	Deadline    time.Time    `json:"deadline"`
	State       SessionState `json:"state"`
	StartedAt   time.Time    `json:"startedAt"`
}
