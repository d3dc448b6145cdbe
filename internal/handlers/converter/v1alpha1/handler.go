// Package v1alpha1 handles the converter grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/session"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ConversionService conversion.Service
	SessionService    session.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.ConversionService == nil {
		return errors.InvalidArgument("conversion service is required")
	}
	if c.SessionService == nil {
		return errors.InvalidArgument("session service is required")
	}
	return nil
}

// Handler implements the converter gRPC service
type Handler struct {
	UnimplementedConverterServiceServer
	conversionService conversion.Service
	sessionService    session.Service
}

var _ ConverterServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		conversionService: cfg.ConversionService,
		sessionService:    cfg.SessionService,
	}, nil
}

// Convert performs a one-shot conversion.
//
// Request: source (JSON text), name, race, blind_fighting, devils_sight,
// night_vision, manual_mode, manual_range, portrait and token (base64).
// Response: actor_json, file_name, summary, vision, degraded.
func (h *Handler) Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)

	input := &conversion.ConvertInput{
		Source: []byte(r.require(FieldSource)),
		Name:   r.str(FieldName),
		Race:   r.str(FieldRace),
		Features: vision.Features{
			BlindFighting: r.boolean(FieldBlindFighting),
			DevilsSight:   r.boolean(FieldDevilsSight),
			NightVision:   r.boolean(FieldNightVision),
		},
		Portrait: r.bytes(FieldPortrait),
		Token:    r.bytes(FieldToken),
	}

	manualRange := r.optInt(FieldManualRange)
	if mode := r.str(FieldManualMode); mode != "" {
		parsed, ok := dnd5e.ParseVisionMode(mode)
		if !ok {
			r.vb.Fieldf(FieldManualMode, "unknown vision mode %q", mode)
		}
		input.Manual = &vision.ManualOverride{Mode: parsed, Range: manualRange}
	} else if manualRange != nil {
		r.vb.Field(FieldManualRange, "requires manual_mode")
	}

	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.conversionService.Convert(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := newResponse(conversionFields(out))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// CreateSession stores an uploaded source.
//
// Request: source, portrait, token.
// Response: session_id, preview, default_race, expires_at, degraded.
func (h *Handler) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)

	input := &session.CreateSessionInput{
		Source:   []byte(r.require(FieldSource)),
		Portrait: r.bytes(FieldPortrait),
		Token:    r.bytes(FieldToken),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessionService.CreateSession(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := newResponse(map[string]any{
		FieldSessionID:   out.SessionID,
		FieldPreview:     previewFields(out.Preview),
		FieldDefaultRace: out.DefaultRace,
		FieldExpiresAt:   timestamp(out.ExpiresAt),
		FieldDegraded:    out.Degraded,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// UpdateSession changes a session's settings. Absent fields are left alone.
//
// Request: session_id, name, race, blind_fighting, devils_sight,
// night_vision, manual_mode, manual_range, clear_manual.
// Response: session_id, settings, vision.
func (h *Handler) UpdateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)

	input := &session.UpdateSessionInput{
		SessionID:     r.require(FieldSessionID),
		Name:          r.optString(FieldName),
		Race:          r.optString(FieldRace),
		BlindFighting: r.optBool(FieldBlindFighting),
		DevilsSight:   r.optBool(FieldDevilsSight),
		NightVision:   r.optBool(FieldNightVision),
		ManualMode:    r.optString(FieldManualMode),
		ManualRange:   r.optInt(FieldManualRange),
		ClearManual:   r.boolean(FieldClearManual),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessionService.UpdateSession(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := newResponse(map[string]any{
		FieldSessionID: out.SessionID,
		FieldSettings:  settingsFields(out.Settings),
		FieldVision:    visionFields(out.Vision),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ConvertSession converts a stored session.
//
// Request: session_id.
// Response: session_id plus the Convert response fields.
func (h *Handler) ConvertSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &session.ConvertSessionInput{SessionID: r.require(FieldSessionID)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.sessionService.ConvertSession(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	fields := conversionFields(out.Result)
	fields[FieldSessionID] = out.SessionID

	resp, err := newResponse(fields)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// DeleteSession removes a stored session.
func (h *Handler) DeleteSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &session.DeleteSessionInput{SessionID: r.require(FieldSessionID)}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.sessionService.DeleteSession(ctx, input); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{}, nil
}
