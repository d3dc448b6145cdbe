package dnd5e

import "strings"

// VisionMode is one of the five sight categories a character can have.
type VisionMode string

// Vision modes in prompt order
const (
	VisionNormal      VisionMode = "normal"
	VisionDarkvision  VisionMode = "darkvision"
	VisionBlindsight  VisionMode = "blindsight"
	VisionTruesight   VisionMode = "truesight"
	VisionTremorsense VisionMode = "tremorsense"
)

var visionModes = []VisionMode{
	VisionNormal,
	VisionDarkvision,
	VisionBlindsight,
	VisionTruesight,
	VisionTremorsense,
}

// foundryVisionModes maps internal mode names to token visionMode identifiers.
// The two naming spaces are kept apart even where they agree.
var foundryVisionModes = map[VisionMode]string{
	VisionNormal:      "basic",
	VisionDarkvision:  "darkvision",
	VisionBlindsight:  "blindsight",
	VisionTruesight:   "truesight",
	VisionTremorsense: "tremorsense",
}

// manualDefaultRanges are offered when a mode is picked by hand without a range.
var manualDefaultRanges = map[VisionMode]int{
	VisionNormal:      0,
	VisionDarkvision:  60,
	VisionBlindsight:  60,
	VisionTruesight:   120,
	VisionTremorsense: 60,
}

// Senses that do not rely on light work in magical darkness.
var magicalDarknessModes = map[VisionMode]bool{
	VisionBlindsight:  true,
	VisionTruesight:   true,
	VisionTremorsense: true,
}

// VisionModes returns the five modes in prompt order (1-5).
func VisionModes() []VisionMode {
	return append([]VisionMode(nil), visionModes...)
}

// ParseVisionMode accepts a mode name in any case.
func ParseVisionMode(s string) (VisionMode, bool) {
	mode := VisionMode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := foundryVisionModes[mode]; !ok {
		return "", false
	}
	return mode, true
}

// VisionModeByNumber returns the mode for a 1-based prompt choice.
func VisionModeByNumber(n int) (VisionMode, bool) {
	if n < 1 || n > len(visionModes) {
		return "", false
	}
	return visionModes[n-1], true
}

// String returns the internal mode name
func (m VisionMode) String() string {
	return string(m)
}

// Valid reports whether m is one of the five modes.
func (m VisionMode) Valid() bool {
	_, ok := foundryVisionModes[m]
	return ok
}

// FoundryMode returns the token visionMode identifier. Unknown modes map to
// the basic mode.
func (m VisionMode) FoundryMode() string {
	if id, ok := foundryVisionModes[m]; ok {
		return id
	}
	return foundryVisionModes[VisionNormal]
}

// DefaultManualRange returns the range used when a mode is picked by hand.
func (m VisionMode) DefaultManualRange() int {
	return manualDefaultRanges[m]
}

// SeesInMagicalDarkness reports whether the sense works in magical darkness.
func (m VisionMode) SeesInMagicalDarkness() bool {
	return magicalDarknessModes[m]
}

// RaceVision is a racial default sight.
type RaceVision struct {
	Race  string
	Mode  VisionMode
	Range int
}

// raceVisionTable is ordered: subraces and compound names precede the names
// they contain, so substring lookups find the most specific entry first.
// Keys are stored normalized (see NormalizeRaceName).
var raceVisionTable = []RaceVision{
	{Race: "drow", Mode: VisionDarkvision, Range: 120},
	{Race: "dark elf", Mode: VisionDarkvision, Range: 120},
	{Race: "дроу", Mode: VisionDarkvision, Range: 120},
	{Race: "duergar", Mode: VisionDarkvision, Range: 120},
	{Race: "deep gnome", Mode: VisionDarkvision, Range: 120},
	{Race: "svirfneblin", Mode: VisionDarkvision, Range: 120},
	{Race: "глубинный гном", Mode: VisionDarkvision, Range: 120},
	{Race: "half-elf", Mode: VisionDarkvision, Range: 60},
	{Race: "полуэльф", Mode: VisionDarkvision, Range: 60},
	{Race: "half-orc", Mode: VisionDarkvision, Range: 60},
	{Race: "полуорк", Mode: VisionDarkvision, Range: 60},
	{Race: "high elf", Mode: VisionDarkvision, Range: 60},
	{Race: "wood elf", Mode: VisionDarkvision, Range: 60},
	{Race: "высший эльф", Mode: VisionDarkvision, Range: 60},
	{Race: "лесной эльф", Mode: VisionDarkvision, Range: 60},
	{Race: "elf", Mode: VisionDarkvision, Range: 60},
	{Race: "эльф", Mode: VisionDarkvision, Range: 60},
	{Race: "rock gnome", Mode: VisionDarkvision, Range: 60},
	{Race: "forest gnome", Mode: VisionDarkvision, Range: 60},
	{Race: "скальный гном", Mode: VisionDarkvision, Range: 60},
	{Race: "лесной гном", Mode: VisionDarkvision, Range: 60},
	{Race: "gnome", Mode: VisionDarkvision, Range: 60},
	{Race: "гном", Mode: VisionDarkvision, Range: 60},
	{Race: "dwarf", Mode: VisionDarkvision, Range: 60},
	{Race: "дварф", Mode: VisionDarkvision, Range: 60},
	{Race: "карлик", Mode: VisionDarkvision, Range: 60},
	{Race: "halfling", Mode: VisionNormal, Range: 0},
	{Race: "полулинг", Mode: VisionNormal, Range: 0},
	{Race: "human", Mode: VisionNormal, Range: 0},
	{Race: "человек", Mode: VisionNormal, Range: 0},
	{Race: "tiefling", Mode: VisionDarkvision, Range: 60},
	{Race: "тифлинг", Mode: VisionDarkvision, Range: 60},
	{Race: "tabaxi", Mode: VisionDarkvision, Range: 60},
	{Race: "табакси", Mode: VisionDarkvision, Range: 60},
	{Race: "dragonborn", Mode: VisionNormal, Range: 0},
	{Race: "драконорожденный", Mode: VisionNormal, Range: 0},
	{Race: "kenku", Mode: VisionNormal, Range: 0},
	{Race: "кенку", Mode: VisionNormal, Range: 0},
	{Race: "hobgoblin", Mode: VisionDarkvision, Range: 60},
	{Race: "хобгоблин", Mode: VisionDarkvision, Range: 60},
	{Race: "goblin", Mode: VisionDarkvision, Range: 60},
	{Race: "гоблин", Mode: VisionDarkvision, Range: 60},
	{Race: "kobold", Mode: VisionDarkvision, Range: 60},
	{Race: "кобольд", Mode: VisionDarkvision, Range: 60},
	{Race: "yuan-ti", Mode: VisionDarkvision, Range: 60},
	{Race: "юань-ти", Mode: VisionDarkvision, Range: 60},
	{Race: "aasimar", Mode: VisionDarkvision, Range: 60},
	{Race: "аасимар", Mode: VisionDarkvision, Range: 60},
}

// RaceVisionTable returns the racial defaults in lookup order.
func RaceVisionTable() []RaceVision {
	return append([]RaceVision(nil), raceVisionTable...)
}

// NormalizeRaceName lowercases, trims, collapses inner whitespace and folds ё
// to е so that user input and table keys compare equal.
func NormalizeRaceName(race string) string {
	race = strings.Join(strings.Fields(strings.ToLower(race)), " ")
	return strings.ReplaceAll(race, "ё", "е")
}

var popularRaces = []string{
	"Tabaxi",
	"Human",
	"Elf",
	"Half-Elf",
	"Half-Orc",
	"Gnome",
	"Halfling",
	"Dwarf",
	"Dragonborn",
	"Kenku",
}

// PopularRaces returns the numbered race pick list.
func PopularRaces() []string {
	return append([]string(nil), popularRaces...)
}

// VisionAbility names a class or feat feature that changes sight.
type VisionAbility string

// Sight-granting features
const (
	AbilityBlindFighting VisionAbility = "blind_fighting"
	AbilityDevilsSight   VisionAbility = "devils_sight"
	AbilityNightVision   VisionAbility = "night_vision"
)

// AbilityOverlay is the sight a feature grants.
type AbilityOverlay struct {
	Ability VisionAbility
	Label   string
	Mode    VisionMode
	Range   int
	// RaiseOnly keeps a larger range already granted in the same mode.
	RaiseOnly       bool
	MagicalDarkness bool
}

// abilityOverlays is in priority order; the first granted feature wins.
var abilityOverlays = []AbilityOverlay{
	{
		Ability:         AbilityBlindFighting,
		Label:           "Blind Fighting",
		Mode:            VisionBlindsight,
		Range:           10,
		MagicalDarkness: true,
	},
	{
		Ability:         AbilityDevilsSight,
		Label:           "Devil's Sight",
		Mode:            VisionDarkvision,
		Range:           120,
		RaiseOnly:       true,
		MagicalDarkness: true,
	},
	{
		Ability:   AbilityNightVision,
		Label:     "Night Vision",
		Mode:      VisionDarkvision,
		Range:     60,
		RaiseOnly: true,
	},
}

// AbilityOverlays returns the sight-granting features in priority order.
func AbilityOverlays() []AbilityOverlay {
	return append([]AbilityOverlay(nil), abilityOverlays...)
}
