// Package session implements the session orchestrator. A session holds one
// user's uploaded source and conversion settings; every operation names its
// session explicitly, so concurrent users never share state.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/lss-foundry/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/idgen"
	conversionsession "github.com/KirkDiggler/lss-foundry/internal/repositories/conversion_session"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// Service defines the interface for session operations
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error)
	ConvertSession(ctx context.Context, input *ConvertSessionInput) (*ConvertSessionOutput, error)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	Repository  conversionsession.Repository
	Converter   conversion.Service
	Resolver    vision.Resolver
	IDGenerator idgen.Generator

	// TTL defaults to conversionsession.DefaultTTL
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo      conversionsession.Repository
	converter conversion.Service
	resolver  vision.Resolver
	idGen     idgen.Generator
	ttl       time.Duration
}

// NewOrchestrator creates a new session orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = conversionsession.DefaultTTL
	}

	return &orchestrator{
		repo:      cfg.Repository,
		converter: cfg.Converter,
		resolver:  cfg.Resolver,
		idGen:     cfg.IDGenerator,
		ttl:       ttl,
	}, nil
}

// CreateSession checks the source decodes and stores it with its images
func (o *orchestrator) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if len(input.Source) == 0 {
		vb.RequiredField("source")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	inspected, err := o.converter.Inspect(ctx, &conversion.InspectInput{Source: input.Source})
	if err != nil {
		return nil, err
	}

	created, err := o.repo.Create(ctx, conversionsession.CreateInput{
		Session: &conversionsession.Session{
			ID:          o.idGen.Generate(),
			Source:      input.Source,
			Portrait:    input.Portrait,
			Token:       input.Token,
			DefaultRace: inspected.DefaultRace,
		},
		TTL: o.ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	slog.InfoContext(ctx, "conversion session created",
		"session_id", created.Session.ID,
		"degraded", inspected.Degraded)

	return &CreateSessionOutput{
		SessionID:   created.Session.ID,
		Preview:     inspected.Preview,
		DefaultRace: inspected.DefaultRace,
		ExpiresAt:   created.Session.ExpiresAt,
		Degraded:    inspected.Degraded,
	}, nil
}

// UpdateSession applies the given settings and returns the resulting vision
func (o *orchestrator) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*UpdateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	got, err := o.repo.Get(ctx, conversionsession.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}
	session := got.Session

	if err := applySettings(&session.Settings, input); err != nil {
		return nil, err
	}

	profile, err := o.resolve(session)
	if err != nil {
		return nil, err
	}

	updated, err := o.repo.Update(ctx, conversionsession.UpdateInput{Session: session})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update session")
	}

	slog.DebugContext(ctx, "conversion session updated",
		"session_id", session.ID,
		"vision", profile.Mode,
		"range", profile.Range)

	return &UpdateSessionOutput{
		SessionID: updated.Session.ID,
		Settings:  updated.Session.Settings,
		Vision:    profile,
	}, nil
}

// ConvertSession converts the session's source with its current settings
func (o *orchestrator) ConvertSession(ctx context.Context, input *ConvertSessionInput) (*ConvertSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	got, err := o.repo.Get(ctx, conversionsession.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}

	convertInput, err := ConvertInputFor(got.Session)
	if err != nil {
		return nil, err
	}

	result, err := o.converter.Convert(ctx, convertInput)
	if err != nil {
		return nil, err
	}

	return &ConvertSessionOutput{
		SessionID: got.Session.ID,
		Result:    result,
	}, nil
}

// DeleteSession removes a session
func (o *orchestrator) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	if _, err := o.repo.Delete(ctx, conversionsession.DeleteInput{ID: input.SessionID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}

	return &DeleteSessionOutput{}, nil
}

func (o *orchestrator) resolve(session *conversionsession.Session) (*vision.Profile, error) {
	convertInput, err := ConvertInputFor(session)
	if err != nil {
		return nil, err
	}

	race := convertInput.Race
	if race == "" {
		race = session.DefaultRace
	}

	out, err := o.resolver.Resolve(&vision.ResolveInput{
		Race:     race,
		Features: convertInput.Features,
		Manual:   convertInput.Manual,
	})
	if err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// ConvertInputFor builds the conversion request a session's settings describe.
func ConvertInputFor(session *conversionsession.Session) (*conversion.ConvertInput, error) {
	settings := session.Settings

	input := &conversion.ConvertInput{
		Source: session.Source,
		Name:   settings.Name,
		Race:   settings.Race,
		Features: vision.Features{
			BlindFighting: settings.BlindFighting,
			DevilsSight:   settings.DevilsSight,
			NightVision:   settings.NightVision,
		},
		Portrait: session.Portrait,
		Token:    session.Token,
	}

	if settings.ManualMode != "" {
		mode, ok := dnd5e.ParseVisionMode(settings.ManualMode)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown vision mode %q", settings.ManualMode)
		}
		input.Manual = &vision.ManualOverride{Mode: mode, Range: settings.ManualRange}
	}

	return input, nil
}

func applySettings(settings *conversionsession.Settings, input *UpdateSessionInput) error {
	if input.ClearManual {
		settings.ManualMode = ""
		settings.ManualRange = nil
	}

	if input.Name != nil {
		settings.Name = strings.TrimSpace(*input.Name)
	}
	if input.Race != nil {
		settings.Race = strings.TrimSpace(*input.Race)
	}
	if input.BlindFighting != nil {
		settings.BlindFighting = *input.BlindFighting
	}
	if input.DevilsSight != nil {
		settings.DevilsSight = *input.DevilsSight
	}
	if input.NightVision != nil {
		settings.NightVision = *input.NightVision
	}

	vb := errors.NewValidationBuilder()
	if input.ManualMode != nil {
		mode, ok := dnd5e.ParseVisionMode(*input.ManualMode)
		switch {
		case !ok:
			vb.Fieldf("manual_mode", "unknown vision mode %q", *input.ManualMode)
		case string(mode) != settings.ManualMode:
			// a new mode starts from its own default range
			settings.ManualMode = string(mode)
			settings.ManualRange = nil
		}
	}
	if input.ManualRange != nil {
		if settings.ManualMode == "" && input.ManualMode == nil {
			vb.Field("manual_range", "requires manual_mode")
		}
		if *input.ManualRange < 0 {
			vb.Field("manual_range", "must not be negative")
		}
		r := *input.ManualRange
		settings.ManualRange = &r
	}

	return vb.Build()
}

func validateSessionID(id string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", id, vb)
	return vb.Build()
}
