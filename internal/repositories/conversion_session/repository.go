// Package conversionsession stores per-user conversion sessions: the uploaded
// source, optional images, and the settings chosen so far.
package conversionsession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=conversionsessionmock github.com/KirkDiggler/lss-foundry/internal/repositories/conversion_session Repository

// DefaultTTL is how long a session lives when no TTL is given.
const DefaultTTL = time.Hour

// Session is one user's conversion in progress. Nothing outside a session is
// shared between users.
type Session struct {
	ID string

	// Source is the uploaded export exactly as received
	Source []byte

	// Optional images embedded into the converted actor
	Portrait []byte
	Token    []byte

	// DefaultRace is the race found in the source, offered as the default
	DefaultRace string

	Settings Settings

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Settings are the user's conversion choices.
type Settings struct {
	// Name overrides the source name when set
	Name string

	// Race overrides the source race when set
	Race string

	BlindFighting bool
	DevilsSight   bool
	NightVision   bool

	// ManualMode, when set, replaces the computed vision. ManualRange nil
	// means the mode's default range.
	ManualMode  string
	ManualRange *int
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Source = cloneBytes(s.Source)
	clone.Portrait = cloneBytes(s.Portrait)
	clone.Token = cloneBytes(s.Token)
	if s.Settings.ManualRange != nil {
		r := *s.Settings.ManualRange
		clone.Settings.ManualRange = &r
	}
	return &clone
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Session *Session
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the stored session with timestamps set
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// UpdateInput replaces a session's stored state, keeping its expiry
type UpdateInput struct {
	Session *Session
}

// UpdateOutput contains the stored session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty; a missing session is reported as not found
type DeleteOutput struct{}

// Repository defines the interface for session storage operations
type Repository interface {
	// Create stores a new session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a live session; expired sessions are not found
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing live session
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errSessionExpired = "session has expired"
	errNotFound       = "session not found"
	errAlreadyExists  = "session already exists"
)
