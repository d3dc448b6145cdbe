// Package vision resolves a character's token sight from race, sight-granting
// features, and an optional manual choice.
//
// Resolution runs in fixed layers:
//
//  1. Base: the racial default from dnd5e.RaceVisionTable.
//  2. Feature overlay: the first granted feature in dnd5e.AbilityOverlays
//     replaces the base.
//  3. Manual override: replaces everything computed so far.
//
// Normal sight always has range 0.
package vision

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/entities/foundry"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

//go:generate mockgen -destination=mock/mock_resolver.go -package=visionmock github.com/KirkDiggler/lss-foundry/internal/services/vision Resolver

// Resolver computes vision profiles.
type Resolver interface {
	Resolve(input *ResolveInput) (*ResolveOutput, error)
}

// Features lists the sight-granting features a character has.
type Features struct {
	BlindFighting bool
	DevilsSight   bool
	NightVision   bool
}

// Has reports whether the feature is granted.
func (f Features) Has(ability dnd5e.VisionAbility) bool {
	switch ability {
	case dnd5e.AbilityBlindFighting:
		return f.BlindFighting
	case dnd5e.AbilityDevilsSight:
		return f.DevilsSight
	case dnd5e.AbilityNightVision:
		return f.NightVision
	default:
		return false
	}
}

// ManualOverride is a sight picked by hand. A nil Range uses the mode's
// default manual range.
type ManualOverride struct {
	Mode  dnd5e.VisionMode
	Range *int
}

// Source records which layer produced a profile.
type Source string

const (
	SourceRace    Source = "race"
	SourceFeature Source = "feature"
	SourceManual  Source = "manual"
)

// Profile is a resolved sight.
type Profile struct {
	Mode            dnd5e.VisionMode
	Range           int
	MagicalDarkness bool
	Source          Source
	Note            string
}

// Enabled reports whether the token needs sight turned on.
func (p *Profile) Enabled() bool {
	return p.Mode != dnd5e.VisionNormal
}

// Sight renders the profile as a token sight block.
func (p *Profile) Sight() foundry.Sight {
	return foundry.Sight{
		Enabled:     p.Enabled(),
		Range:       p.Range,
		Angle:       360,
		VisionMode:  p.Mode.FoundryMode(),
		Attenuation: 0.1,
	}
}

// String describes the profile, e.g. "darkvision (60 ft)".
func (p *Profile) String() string {
	if !p.Enabled() {
		return "normal"
	}
	return fmt.Sprintf("%s (%d ft)", p.Mode, p.Range)
}

// ResolveInput carries everything a resolution depends on; no state is kept
// between calls.
type ResolveInput struct {
	Race     string
	Features Features
	Manual   *ManualOverride
}

// ResolveOutput holds the resolved profile
type ResolveOutput struct {
	Profile *Profile
}

type resolver struct{}

// NewResolver returns the table-driven resolver.
func NewResolver() Resolver {
	return &resolver{}
}

// Ensure resolver implements Resolver
var _ Resolver = (*resolver)(nil)

// Resolve applies base, feature and manual layers in order.
func (r *resolver) Resolve(input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateManual(input.Manual); err != nil {
		return nil, err
	}

	profile := racialProfile(input.Race)

	for _, overlay := range dnd5e.AbilityOverlays() {
		if input.Features.Has(overlay.Ability) {
			profile = applyOverlay(profile, overlay)
			break
		}
	}

	if input.Manual != nil {
		profile = manualProfile(input.Manual)
	}

	if profile.Mode == dnd5e.VisionNormal {
		profile.Range = 0
	}

	slog.Debug("resolved vision",
		"race", input.Race,
		"mode", profile.Mode,
		"range", profile.Range,
		"source", profile.Source)

	return &ResolveOutput{Profile: profile}, nil
}

func validateManual(manual *ManualOverride) error {
	if manual == nil {
		return nil
	}

	vb := errors.NewValidationBuilder()
	if !manual.Mode.Valid() {
		vb.Fieldf("manual_mode", "unknown vision mode %q", manual.Mode)
	}
	if manual.Range != nil && *manual.Range < 0 {
		vb.Field("manual_range", "must not be negative")
	}
	return vb.Build()
}

// LookupRace finds the racial default: exact match on the normalized name,
// then the first table entry that contains or is contained in it.
func LookupRace(race string) (dnd5e.RaceVision, bool) {
	name := dnd5e.NormalizeRaceName(race)
	if name == "" {
		return dnd5e.RaceVision{}, false
	}

	table := dnd5e.RaceVisionTable()
	for _, entry := range table {
		if entry.Race == name {
			return entry, true
		}
	}
	for _, entry := range table {
		if strings.Contains(name, entry.Race) || strings.Contains(entry.Race, name) {
			return entry, true
		}
	}
	return dnd5e.RaceVision{}, false
}

func racialProfile(race string) *Profile {
	entry, ok := LookupRace(race)
	if !ok {
		label := strings.TrimSpace(race)
		if label == "" {
			label = "unknown race"
		}
		return &Profile{
			Mode:   dnd5e.VisionNormal,
			Source: SourceRace,
			Note:   fmt.Sprintf("No racial sight for %s: normal vision", label),
		}
	}

	profile := &Profile{
		Mode:   entry.Mode,
		Range:  entry.Range,
		Source: SourceRace,
	}
	profile.Note = fmt.Sprintf("Racial default for %s: %s", strings.TrimSpace(race), profile)
	return profile
}

func applyOverlay(base *Profile, overlay dnd5e.AbilityOverlay) *Profile {
	rng := overlay.Range
	if overlay.RaiseOnly && base.Mode == overlay.Mode && base.Range > rng {
		rng = base.Range
	}

	profile := &Profile{
		Mode:            overlay.Mode,
		Range:           rng,
		MagicalDarkness: overlay.MagicalDarkness,
		Source:          SourceFeature,
	}
	profile.Note = fmt.Sprintf("%s: %s", overlay.Label, profile)
	if profile.MagicalDarkness {
		profile.Note += ", sees in magical darkness"
	}
	return profile
}

func manualProfile(manual *ManualOverride) *Profile {
	rng := manual.Mode.DefaultManualRange()
	if manual.Range != nil {
		rng = *manual.Range
	}

	profile := &Profile{
		Mode:            manual.Mode,
		Range:           rng,
		MagicalDarkness: manual.Mode.SeesInMagicalDarkness(),
		Source:          SourceManual,
	}
	if profile.Mode == dnd5e.VisionNormal {
		profile.Range = 0
	}
	profile.Note = fmt.Sprintf("Manual override: %s", profile)
	return profile
}
