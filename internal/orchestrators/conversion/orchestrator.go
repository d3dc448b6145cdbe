// Package conversion implements the conversion orchestrator: decode the
// source, resolve vision, extract every section, embed images and encode the
// actor document.
package conversion

//go:generate mockgen -destination=mock/mock_service.go -package=conversionmock github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion Service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/lss-foundry/internal/entities/foundry"
	"github.com/KirkDiggler/lss-foundry/internal/entities/lss"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/imageuri"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/metrics"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

const (
	fileNameSuffix   = "_foundry.json"
	fallbackFileStem = "character"
)

// Service defines the interface for conversion operations
type Service interface {
	// Convert produces the actor document for one request
	Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error)

	// Inspect previews a source without converting it
	Inspect(ctx context.Context, input *InspectInput) (*InspectOutput, error)
}

// Config holds the dependencies for the conversion orchestrator
type Config struct {
	Extractor extraction.Extractor
	Resolver  vision.Resolver

	// Metrics defaults to metrics.Discard
	Metrics metrics.Recorder
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Extractor == nil {
		vb.RequiredField("Extractor")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}

	return vb.Build()
}

type orchestrator struct {
	extractor extraction.Extractor
	resolver  vision.Resolver
	metrics   metrics.Recorder
}

// NewOrchestrator creates a new conversion orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Discard
	}

	return &orchestrator{
		extractor: cfg.Extractor,
		resolver:  cfg.Resolver,
		metrics:   recorder,
	}, nil
}

// Convert decodes, resolves, extracts and encodes. Nothing is written
// anywhere; the caller owns the returned bytes.
func (o *orchestrator) Convert(ctx context.Context, input *ConvertInput) (output *ConvertOutput, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "conversion panicked", "panic", r)
			output = nil
			err = errors.Internal("conversion failed").WithMeta("panic", fmt.Sprint(r))
		}
		o.metrics.ConversionFinished(outcomeOf(err), time.Since(start))
	}()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	doc, err := lss.Parse(input.Source)
	if err != nil {
		return nil, err
	}
	if doc.Degraded {
		slog.WarnContext(ctx, "source envelope inner record unreadable, using defaults")
		o.metrics.SourceDegraded()
	}

	name := o.extractor.Name(doc, input.Name)

	race := strings.TrimSpace(input.Race)
	if race == "" {
		race = o.extractor.SourceRace(doc)
	}

	resolved, err := o.resolver.Resolve(&vision.ResolveInput{
		Race:     race,
		Features: input.Features,
		Manual:   input.Manual,
	})
	if err != nil {
		return nil, err
	}
	profile := resolved.Profile
	o.metrics.VisionResolved(string(profile.Mode), string(profile.Source))

	actor := foundry.NewActor(name)
	actor.System = o.extractor.System(doc, input.Race)
	actor.PrototypeToken.Sight = profile.Sight()

	if err := embedImages(actor, input.Portrait, input.Token); err != nil {
		return nil, err
	}

	data, err := Encode(actor)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "character converted",
		"name", name,
		"race", actor.System.Details.Race,
		"vision", profile.Mode,
		"range", profile.Range,
		"degraded", doc.Degraded)

	return &ConvertOutput{
		Actor:    actor,
		JSON:     data,
		FileName: FileName(name),
		Vision:   profile,
		Summary:  newSummary(actor, profile),
		Degraded: doc.Degraded,
	}, nil
}

// Inspect previews a source without converting it
func (o *orchestrator) Inspect(ctx context.Context, input *InspectInput) (*InspectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	doc, err := lss.Parse(input.Source)
	if err != nil {
		return nil, err
	}
	if doc.Degraded {
		slog.WarnContext(ctx, "source envelope inner record unreadable, preview uses defaults")
	}

	return &InspectOutput{
		Preview:     o.extractor.Preview(doc),
		DefaultRace: o.extractor.SourceRace(doc),
		Degraded:    doc.Degraded,
	}, nil
}

// embedImages replaces the placeholder portrait and token texture. Without a
// token image the token reuses the portrait.
func embedImages(actor *foundry.Actor, portrait, token []byte) error {
	if len(portrait) > 0 {
		uri, err := imageuri.Encode(portrait)
		if err != nil {
			return errors.Wrap(err, "failed to embed portrait")
		}
		actor.Img = uri
		actor.PrototypeToken.Texture.Src = uri
	}

	if len(token) > 0 {
		uri, err := imageuri.Encode(token)
		if err != nil {
			return errors.Wrap(err, "failed to embed token")
		}
		actor.PrototypeToken.Texture.Src = uri
	}

	return nil
}

// Encode renders the actor as indented JSON with non-ASCII text kept as is.
func Encode(actor *foundry.Actor) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(actor); err != nil {
		return nil, errors.Wrap(err, "failed to encode actor")
	}
	return buf.Bytes(), nil
}

// FileName returns "<name>_foundry.json" with characters that are unsafe in
// file names replaced.
func FileName(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		default:
			return r
		}
	}, name)

	stem = strings.Trim(stem, " .")
	if stem == "" {
		stem = fallbackFileStem
	}
	return stem + fileNameSuffix
}

func outcomeOf(err error) string {
	switch errors.KindOf(err) {
	case errors.KindNone:
		return metrics.OutcomeSuccess
	case errors.KindDecode, errors.KindInvalidInput:
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeError
	}
}
