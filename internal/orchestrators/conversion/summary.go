package conversion

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/entities/foundry"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

// Summary is the human-facing digest of a converted actor.
type Summary struct {
	Name      string
	Race      string
	Level     int
	HP        int
	MaxHP     int
	AC        int
	Speed     string
	Abilities []AbilityScore
	Vision    string
	Note      string
}

// AbilityScore pairs an ability key with its score
type AbilityScore struct {
	Key   string
	Value int
}

func newSummary(actor *foundry.Actor, profile *vision.Profile) *Summary {
	system := actor.System

	abilities := make([]AbilityScore, 0, 6)
	for _, key := range dnd5e.AbilityKeys() {
		abilities = append(abilities, AbilityScore{Key: key, Value: system.Abilities[key].Value})
	}

	sight := "normal"
	if profile.Enabled() {
		sight = fmt.Sprintf("%s (%d ft, mode: %s)", profile.Mode, profile.Range, profile.Mode.FoundryMode())
	}

	return &Summary{
		Name:      actor.Name,
		Race:      system.Details.Race,
		Level:     system.Details.Level,
		HP:        system.Attributes.HP.Value,
		MaxHP:     system.Attributes.HP.Max,
		AC:        system.Attributes.AC.Flat,
		Speed:     system.Attributes.Speed.Value,
		Abilities: abilities,
		Vision:    sight,
		Note:      profile.Note,
	}
}

// Lines renders the summary one fact per line.
func (s *Summary) Lines() []string {
	scores := make([]string, 0, len(s.Abilities))
	for _, a := range s.Abilities {
		scores = append(scores, fmt.Sprintf("%s %d", strings.ToUpper(a.Key), a.Value))
	}

	race := s.Race
	if race == "" {
		race = "-"
	}

	return []string{
		"Character: " + s.Name,
		"Race: " + race,
		fmt.Sprintf("Level: %d", s.Level),
		fmt.Sprintf("HP: %d/%d", s.HP, s.MaxHP),
		fmt.Sprintf("AC: %d", s.AC),
		"Speed: " + s.Speed,
		strings.Join(scores, ", "),
		"Vision: " + s.Vision,
	}
}

// String joins Lines with newlines.
func (s *Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}
