package session

import (
	"time"

	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	conversionsession "github.com/KirkDiggler/lss-foundry/internal/repositories/conversion_session"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// CreateSessionInput uploads a source export and optional images
type CreateSessionInput struct {
	Source   []byte
	Portrait []byte
	Token    []byte
}

// CreateSessionOutput identifies the new session and previews its source
type CreateSessionOutput struct {
	SessionID   string
	Preview     *extraction.Preview
	DefaultRace string
	ExpiresAt   time.Time
	Degraded    bool
}

// UpdateSessionInput changes settings; nil fields are left as they are
type UpdateSessionInput struct {
	SessionID string

	Name *string
	Race *string

	BlindFighting *bool
	DevilsSight   *bool
	NightVision   *bool

	ManualMode  *string
	ManualRange *int

	// ClearManual drops any manual override before other fields apply
	ClearManual bool
}

// UpdateSessionOutput returns the stored settings and the vision they yield
type UpdateSessionOutput struct {
	SessionID string
	Settings  conversionsession.Settings
	Vision    *vision.Profile
}

// ConvertSessionInput converts a session with its current settings
type ConvertSessionInput struct {
	SessionID string
}

// ConvertSessionOutput carries the converted actor
type ConvertSessionOutput struct {
	SessionID string
	Result    *conversion.ConvertOutput
}

// DeleteSessionInput removes a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput is empty
type DeleteSessionOutput struct{}
