package v1alpha1

import (
	"encoding/base64"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	conversionsession "github.com/KirkDiggler/lss-foundry/internal/repositories/conversion_session"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// Request and response field names
const (
	FieldSource        = "source"
	FieldName          = "name"
	FieldRace          = "race"
	FieldBlindFighting = "blind_fighting"
	FieldDevilsSight   = "devils_sight"
	FieldNightVision   = "night_vision"
	FieldManualMode    = "manual_mode"
	FieldManualRange   = "manual_range"
	FieldClearManual   = "clear_manual"
	FieldPortrait      = "portrait"
	FieldToken         = "token"
	FieldSessionID     = "session_id"

	FieldActorJSON   = "actor_json"
	FieldFileName    = "file_name"
	FieldSummary     = "summary"
	FieldVision      = "vision"
	FieldDegraded    = "degraded"
	FieldPreview     = "preview"
	FieldDefaultRace = "default_race"
	FieldExpiresAt   = "expires_at"
	FieldSettings    = "settings"
)

// request wraps an incoming struct and collects field errors as it reads
type request struct {
	fields map[string]*structpb.Value
	vb     *errors.ValidationBuilder
}

func newRequest(s *structpb.Struct) *request {
	return &request{
		fields: s.GetFields(),
		vb:     errors.NewValidationBuilder(),
	}
}

func (r *request) has(key string) bool {
	v, ok := r.fields[key]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (r *request) optString(key string) *string {
	if !r.has(key) {
		return nil
	}
	sv, ok := r.fields[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.vb.Field(key, "must be a string")
		return nil
	}
	return &sv.StringValue
}

func (r *request) str(key string) string {
	if s := r.optString(key); s != nil {
		return *s
	}
	return ""
}

func (r *request) optBool(key string) *bool {
	if !r.has(key) {
		return nil
	}
	bv, ok := r.fields[key].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		r.vb.Field(key, "must be a boolean")
		return nil
	}
	return &bv.BoolValue
}

func (r *request) boolean(key string) bool {
	if b := r.optBool(key); b != nil {
		return *b
	}
	return false
}

func (r *request) optInt(key string) *int {
	if !r.has(key) {
		return nil
	}
	nv, ok := r.fields[key].GetKind().(*structpb.Value_NumberValue)
	if !ok || nv.NumberValue != math.Trunc(nv.NumberValue) || math.Abs(nv.NumberValue) > math.MaxInt32 {
		r.vb.Field(key, "must be a whole number")
		return nil
	}
	n := int(nv.NumberValue)
	return &n
}

// bytes reads a base64 (standard encoding) string field
func (r *request) bytes(key string) []byte {
	s := r.str(key)
	if s == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		r.vb.Field(key, "must be base64 encoded")
		return nil
	}
	return data
}

func (r *request) require(key string) string {
	s := r.str(key)
	if s == "" {
		r.vb.RequiredField(key)
	}
	return s
}

func (r *request) err() error {
	return r.vb.Build()
}

func newResponse(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

func visionFields(p *vision.Profile) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"mode":             string(p.Mode),
		"range":            p.Range,
		"magical_darkness": p.MagicalDarkness,
		"source":           string(p.Source),
		"note":             p.Note,
		"label":            p.String(),
	}
}

func previewFields(p *extraction.Preview) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"name":      p.Name,
		"class":     p.Class,
		"race":      p.Race,
		"level":     p.Level,
		"alignment": p.Alignment,
	}
}

func settingsFields(s conversionsession.Settings) map[string]any {
	fields := map[string]any{
		FieldName:          s.Name,
		FieldRace:          s.Race,
		FieldBlindFighting: s.BlindFighting,
		FieldDevilsSight:   s.DevilsSight,
		FieldNightVision:   s.NightVision,
		FieldManualMode:    s.ManualMode,
	}
	if s.ManualRange != nil {
		fields[FieldManualRange] = *s.ManualRange
	}
	return fields
}

func conversionFields(out *conversion.ConvertOutput) map[string]any {
	lines := []any{}
	if out.Summary != nil {
		for _, line := range out.Summary.Lines() {
			lines = append(lines, line)
		}
	}
	return map[string]any{
		FieldActorJSON: string(out.JSON),
		FieldFileName:  out.FileName,
		FieldSummary:   lines,
		FieldVision:    visionFields(out.Vision),
		FieldDegraded:  out.Degraded,
	}
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
