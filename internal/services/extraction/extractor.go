// Package extraction maps a source character record onto the target actor's
// system data. Every operation is total: missing or malformed members fall
// back to defaults instead of failing.
package extraction

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/entities/foundry"
	"github.com/KirkDiggler/lss-foundry/internal/entities/lss"
)

//go:generate mockgen -destination=mock/mock_extractor.go -package=extractionmock github.com/KirkDiggler/lss-foundry/internal/services/extraction Extractor

// Extractor reads sections of the target actor out of a source record.
type Extractor interface {
	// Name resolves the character name: explicit, then source, then the
	// default placeholder.
	Name(doc *lss.Document, explicit string) string

	// SourceRace returns the race stored in the source record.
	SourceRace(doc *lss.Document) string

	// Preview summarizes the identity fields of the source record.
	Preview(doc *lss.Document) *Preview

	Abilities(doc *lss.Document) map[string]foundry.Ability
	Attributes(doc *lss.Document) foundry.Attributes

	// Details builds the details block; raceOverride wins over the source
	// race when non-empty.
	Details(doc *lss.Document, raceOverride string) foundry.Details

	Traits(doc *lss.Document) foundry.Traits
	Currency(doc *lss.Document) foundry.Currency
	Skills(doc *lss.Document) map[string]foundry.Skill

	// System assembles every section into the system block.
	System(doc *lss.Document, raceOverride string) foundry.System
}

// Preview is what a user sees before choosing conversion settings.
type Preview struct {
	Name      string
	Class     string
	Race      string
	Level     int
	Alignment string
}

type extractor struct{}

// New returns the default extractor.
func New() Extractor {
	return &extractor{}
}

// Ensure extractor implements Extractor
var _ Extractor = (*extractor)(nil)

func (e *extractor) Name(doc *lss.Document, explicit string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return name
	}
	if name := strings.TrimSpace(Text(UnwrapScalar(doc.Field("name"), ""))); name != "" {
		return name
	}
	return dnd5e.DefaultName
}

func (e *extractor) SourceRace(doc *lss.Document) string {
	return strings.TrimSpace(Text(UnwrapScalar(doc.Field("info", "race"), "")))
}

func (e *extractor) Preview(doc *lss.Document) *Preview {
	return &Preview{
		Name:      e.Name(doc, ""),
		Class:     e.className(doc),
		Race:      e.SourceRace(doc),
		Level:     e.level(doc),
		Alignment: e.alignment(doc),
	}
}

func (e *extractor) Abilities(doc *lss.Document) map[string]foundry.Ability {
	abilities := make(map[string]foundry.Ability, 6)
	for _, key := range dnd5e.AbilityKeys() {
		abilities[key] = foundry.Ability{
			Value: e.abilityScore(doc, key),
		}
	}
	return abilities
}

func (e *extractor) abilityScore(doc *lss.Document, key string) int {
	f := doc.Field("stats", key, "score")
	if f.Kind == lss.FieldAbsent {
		return dnd5e.DefaultAbilityScore
	}

	// a present score is taken as written, so 0 and "0" agree
	score, ok := parseInteger(f.Interface())
	if !ok {
		return dnd5e.DefaultAbilityScore
	}
	return score
}

func (e *extractor) Attributes(doc *lss.Document) foundry.Attributes {
	currentHP := CoerceInteger(UnwrapScalar(doc.Field("vitality", "hp-current"), 0))
	maxHP := CoerceInteger(UnwrapScalar(doc.Field("vitality", "hp-max"), currentHP))
	armorClass := CoerceInteger(UnwrapScalar(doc.Field("vitality", "ac"), dnd5e.DefaultArmorClass))
	walk := CoerceInteger(UnwrapScalar(doc.Field("vitality", "speed"), dnd5e.DefaultWalkSpeed))

	return foundry.Attributes{
		AC: foundry.ArmorClass{
			Flat: armorClass,
			Calc: "default",
		},
		HP: foundry.HitPoints{
			Value: currentHP,
			Max:   maxHP,
		},
		Movement: foundry.Movement{
			Walk: walk,
		},
		Speed: foundry.Speed{
			Value: fmt.Sprintf("%d ft", walk),
		},
		Prof: ProficiencyBonus(e.level(doc)),
	}
}

// ProficiencyBonus returns the 5e proficiency bonus for a character level:
// +2 at level 1, rising by one every four levels. Levels below 1 count as 1.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return (level + 7) / 4
}

func (e *extractor) Details(doc *lss.Document, raceOverride string) foundry.Details {
	race := strings.TrimSpace(raceOverride)
	if race == "" {
		race = e.SourceRace(doc)
	}

	background := Text(UnwrapScalar(doc.Field("info", "background"), ""))

	return foundry.Details{
		Biography: foundry.Biography{
			Value: e.biography(doc, background),
		},
		Alignment:  e.alignment(doc),
		Race:       race,
		Background: background,
		Level:      e.level(doc),
		XP: foundry.Experience{
			Value: CoerceInteger(UnwrapScalar(doc.Field("info", "experience"), 0)),
			Max:   dnd5e.MaxExperience,
		},
	}
}

func (e *extractor) biography(doc *lss.Document, background string) string {
	lines := []struct {
		label string
		value string
	}{
		{label: "Class", value: e.className(doc)},
		{label: "Background", value: background},
		{label: "Age", value: Text(UnwrapScalar(doc.Field("subInfo", "age"), ""))},
		{label: "Height", value: Text(UnwrapScalar(doc.Field("subInfo", "height"), ""))},
		{label: "Weight", value: Text(UnwrapScalar(doc.Field("subInfo", "weight"), ""))},
	}

	var b strings.Builder
	for _, line := range lines {
		if line.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", line.label, line.value)
	}
	return b.String()
}

func (e *extractor) className(doc *lss.Document) string {
	return Text(UnwrapScalar(doc.Field("info", "charClass"), ""))
}

func (e *extractor) level(doc *lss.Document) int {
	return CoerceInteger(UnwrapScalar(doc.Field("info", "level"), dnd5e.DefaultLevel))
}

func (e *extractor) alignment(doc *lss.Document) string {
	alignment := strings.TrimSpace(Text(UnwrapScalar(doc.Field("info", "alignment"), dnd5e.DefaultAlignment)))
	if alignment == "" {
		return dnd5e.DefaultAlignment
	}
	return alignment
}

func (e *extractor) Traits(_ *lss.Document) foundry.Traits {
	return foundry.Traits{
		Size:         "med",
		Languages:    foundry.Languages{Value: []string{}},
		CreatureType: "humanoid",
	}
}

func (e *extractor) Currency(doc *lss.Document) foundry.Currency {
	coin := func(denomination string) int {
		return CoerceInteger(UnwrapScalar(doc.Field("coins", denomination), 0))
	}

	return foundry.Currency{
		PP: coin(dnd5e.CurrencyPlatinum),
		GP: coin(dnd5e.CurrencyGold),
		EP: coin(dnd5e.CurrencyElectrum),
		SP: coin(dnd5e.CurrencySilver),
		CP: coin(dnd5e.CurrencyCopper),
	}
}

func (e *extractor) Skills(doc *lss.Document) map[string]foundry.Skill {
	skills := make(map[string]foundry.Skill, 18)
	for _, code := range dnd5e.SkillCodes() {
		skills[code] = foundry.Skill{Ability: dnd5e.SkillAbility(code)}
	}

	source := doc.Lookup("skills")
	if !source.IsObject() {
		return skills
	}

	for name, entry := range source.Map() {
		if !entry.IsObject() {
			continue
		}
		code, ok := dnd5e.SkillCodeForName(name)
		if !ok {
			continue
		}

		skill := skills[code]
		if Truthy(lss.Member(entry, "isProf").Value()) {
			skill.Value = 1
		}
		skills[code] = skill
	}

	return skills
}

func (e *extractor) System(doc *lss.Document, raceOverride string) foundry.System {
	return foundry.System{
		Abilities:  e.Abilities(doc),
		Attributes: e.Attributes(doc),
		Details:    e.Details(doc, raceOverride),
		Traits:     e.Traits(doc),
		Currency:   e.Currency(doc),
		Skills:     e.Skills(doc),
	}
}
