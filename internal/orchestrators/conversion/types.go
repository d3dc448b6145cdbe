package conversion

import (
	"github.com/KirkDiggler/lss-foundry/internal/entities/foundry"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// ConvertInput is one complete conversion request. Everything the result
// depends on is carried here.
type ConvertInput struct {
	// Source is the raw export, a direct record or a "data" envelope
	Source []byte

	// Name and Race override the source values when non-empty
	Name string
	Race string

	Features vision.Features
	Manual   *vision.ManualOverride

	// Optional images embedded as data URIs
	Portrait []byte
	Token    []byte
}

// ConvertOutput is the assembled actor and its encoded form
type ConvertOutput struct {
	Actor    *foundry.Actor
	JSON     []byte
	FileName string
	Vision   *vision.Profile
	Summary  *Summary

	// Degraded is set when the envelope's inner record was unreadable and
	// defaults were used throughout
	Degraded bool
}

// InspectInput asks for a preview of a source export
type InspectInput struct {
	Source []byte
}

// InspectOutput describes the source before any settings are chosen
type InspectOutput struct {
	Preview     *extraction.Preview
	DefaultRace string
	Degraded    bool
}
