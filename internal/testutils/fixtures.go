package testutils

import "github.com/KirkDiggler/lss-foundry/internal/testutils/builders"

const (
	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Thorin Oakenshield"
)

// CreateTestSheet returns a level 5 dwarf fighter export as a direct record.
func CreateTestSheet() []byte {
	return NewTestSheetBuilder().JSON()
}

// CreateTestEnvelope returns the same character wrapped in a "data" envelope.
func CreateTestEnvelope() []byte {
	return NewTestSheetBuilder().Envelope()
}

// NewTestSheetBuilder returns a builder preloaded with the default fixture.
func NewTestSheetBuilder() *builders.SheetBuilder {
	return builders.NewSheetBuilder().
		WithName(TestCharacterName).
		WithClass("Fighter").
		WithLevel(5).
		WithRace("Dwarf").
		WithBackground("Soldier").
		WithAlignment("Lawful Good").
		WithScore("str", 16).
		WithScore("dex", 12).
		WithScore("con", 15).
		WithScore("int", 10).
		WithScore("wis", 13).
		WithScore("cha", 8).
		WithHitPoints(44, 44).
		WithArmorClass(18).
		WithSpeed("25 ft").
		WithSkill("athletics", true).
		WithSkill("perception", true).
		WithCoin("gp", 150)
}
