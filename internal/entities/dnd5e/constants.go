// Package dnd5e holds the fixed D&D 5e lookup tables shared by the
// extractor and the vision resolver. Tables are plain data; resolution
// logic lives in the services that read them.
package dnd5e

// Ability keys, shared by the source sheet and the target actor
const (
	AbilityStrength     = "str"
	AbilityDexterity    = "dex"
	AbilityConstitution = "con"
	AbilityIntelligence = "int"
	AbilityWisdom       = "wis"
	AbilityCharisma     = "cha"
)

// Skill codes used by the target actor
const (
	SkillAcrobatics     = "acr"
	SkillAnimalHandling = "ani"
	SkillArcana         = "arc"
	SkillAthletics      = "ath"
	SkillDeception      = "dec"
	SkillHistory        = "his"
	SkillInsight        = "ins"
	SkillIntimidation   = "itm"
	SkillInvestigation  = "inv"
	SkillMedicine       = "med"
	SkillNature         = "nat"
	SkillPerception     = "prc"
	SkillPerformance    = "prf"
	SkillPersuasion     = "per"
	SkillReligion       = "rel"
	SkillSleightOfHand  = "slt"
	SkillStealth        = "ste"
	SkillSurvival       = "sur"
)

// Currency denominations
const (
	CurrencyPlatinum = "pp"
	CurrencyGold     = "gp"
	CurrencyElectrum = "ep"
	CurrencySilver   = "sp"
	CurrencyCopper   = "cp"
)

// Character defaults applied when the source sheet is silent
const (
	DefaultAbilityScore = 10
	DefaultArmorClass   = 10
	DefaultWalkSpeed    = 30
	DefaultLevel        = 1
	DefaultAlignment    = "Unaligned"
	DefaultName         = "New Character"
	MaxExperience       = 355000
)

var abilityKeys = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

var currencyDenominations = []string{
	CurrencyPlatinum,
	CurrencyGold,
	CurrencyElectrum,
	CurrencySilver,
	CurrencyCopper,
}

// skillNameToCode maps the exporter's skill keys to target skill codes.
var skillNameToCode = map[string]string{
	"acrobatics":     SkillAcrobatics,
	"animalHandling": SkillAnimalHandling,
	"arcana":         SkillArcana,
	"athletics":      SkillAthletics,
	"deception":      SkillDeception,
	"history":        SkillHistory,
	"insight":        SkillInsight,
	"intimidation":   SkillIntimidation,
	"investigation":  SkillInvestigation,
	"medicine":       SkillMedicine,
	"nature":         SkillNature,
	"perception":     SkillPerception,
	"performance":    SkillPerformance,
	"persuasion":     SkillPersuasion,
	"religion":       SkillReligion,
	"sleightOfHand":  SkillSleightOfHand,
	"stealth":        SkillStealth,
	"survival":       SkillSurvival,
}

// skillAbility maps each skill code to its governing ability.
var skillAbility = map[string]string{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// AbilityKeys returns the six ability keys in sheet order.
func AbilityKeys() []string {
	return append([]string(nil), abilityKeys...)
}

// CurrencyDenominations returns the five coin denominations, highest first.
func CurrencyDenominations() []string {
	return append([]string(nil), currencyDenominations...)
}

// SkillCodes returns all eighteen skill codes.
func SkillCodes() []string {
	codes := make([]string, 0, len(skillAbility))
	for code := range skillAbility {
		codes = append(codes, code)
	}
	return codes
}

// SkillCodeForName returns the skill code for an exporter skill key.
func SkillCodeForName(name string) (string, bool) {
	code, ok := skillNameToCode[name]
	return code, ok
}

// SkillAbility returns the governing ability for a skill code. Unknown codes
// fall back to strength.
func SkillAbility(code string) string {
	if ability, ok := skillAbility[code]; ok {
		return ability
	}
	return AbilityStrength
}
