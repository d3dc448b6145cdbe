package prompts_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/prompts"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

type PromptsTestSuite struct {
	suite.Suite
	out *bytes.Buffer
}

func TestPromptsSuite(t *testing.T) {
	suite.Run(t, new(PromptsTestSuite))
}

func (s *PromptsTestSuite) SetupTest() {
	s.out = &bytes.Buffer{}
}

func (s *PromptsTestSuite) prompter(input string) *prompts.Prompter {
	return prompts.New(strings.NewReader(input), s.out)
}

func (s *PromptsTestSuite) TestName() {
	name, err := s.prompter("  Bruenor \n").Name("Thorin")
	s.Require().NoError(err)
	s.Equal("Bruenor", name)
	s.Contains(s.out.String(), "[Thorin]")

	name, err = s.prompter("\n").Name("Thorin")
	s.Require().NoError(err)
	s.Empty(name)
}

func (s *PromptsTestSuite) TestRace() {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "enter keeps file race", input: "\n", expected: "Dwarf"},
		{name: "end of input keeps file race", input: "", expected: "Dwarf"},
		{name: "number picks popular race", input: "1\n", expected: "Tabaxi"},
		{name: "last popular race", input: "10\n", expected: "Kenku"},
		{name: "out of range number is free text", input: "11\n", expected: "11"},
		{name: "free text", input: "Табакси\n", expected: "Табакси"},
		{name: "no trailing newline", input: "Tiefling", expected: "Tiefling"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			race, err := s.prompter(tc.input).Race("Dwarf")
			s.Require().NoError(err)
			s.Equal(tc.expected, race)
		})
	}
}

func (s *PromptsTestSuite) TestRaceListsPopularRaces() {
	_, err := s.prompter("\n").Race("")
	s.Require().NoError(err)
	s.Contains(s.out.String(), "1. Tabaxi")
	s.Contains(s.out.String(), "10. Kenku")
	s.NotContains(s.out.String(), "Race from file")
}

func (s *PromptsTestSuite) TestVisionKeepsAutomatic() {
	auto := &vision.Profile{Mode: dnd5e.VisionDarkvision, Range: 60, Note: "racial default for dwarf"}

	override, err := s.prompter("\n").Vision(auto)
	s.Require().NoError(err)
	s.Nil(override)
	s.Contains(s.out.String(), "Automatic vision: darkvision (60 ft)")
	s.Contains(s.out.String(), "racial default for dwarf")
}

func (s *PromptsTestSuite) TestVisionManual() {
	s.Run("mode with default range", func() {
		override, err := s.prompter("4\n\n").Vision(nil)
		s.Require().NoError(err)
		s.Require().NotNil(override)
		s.Equal(dnd5e.VisionTruesight, override.Mode)
		s.Require().NotNil(override.Range)
		s.Equal(120, *override.Range)
	})

	s.Run("mode with typed range", func() {
		override, err := s.prompter("2\n90\n").Vision(nil)
		s.Require().NoError(err)
		s.Equal(dnd5e.VisionDarkvision, override.Mode)
		s.Equal(90, *override.Range)
	})

	s.Run("unreadable range falls back", func() {
		override, err := s.prompter("5\nfar\n").Vision(nil)
		s.Require().NoError(err)
		s.Equal(dnd5e.VisionTremorsense, override.Mode)
		s.Equal(60, *override.Range)
		s.Contains(s.out.String(), `Could not read "far"`)
	})

	s.Run("normal skips the range question", func() {
		override, err := s.prompter("1\n").Vision(nil)
		s.Require().NoError(err)
		s.Equal(dnd5e.VisionNormal, override.Mode)
		s.Nil(override.Range)
	})

	s.Run("invalid choice asks again", func() {
		s.out.Reset()
		override, err := s.prompter("9\nx\n3\n15\n").Vision(nil)
		s.Require().NoError(err)
		s.Equal(dnd5e.VisionBlindsight, override.Mode)
		s.Equal(15, *override.Range)
		s.Equal(2, strings.Count(s.out.String(), "Please pick a number from 1 to 5"))
	})

	s.Run("end of input after invalid choice keeps automatic", func() {
		override, err := s.prompter("9\n").Vision(nil)
		s.Require().NoError(err)
		s.Nil(override)
	})
}

func (s *PromptsTestSuite) TestParseRange() {
	n, ok := prompts.ParseRange("", 60)
	s.True(ok)
	s.Equal(60, n)

	n, ok = prompts.ParseRange(" 30 ", 60)
	s.True(ok)
	s.Equal(30, n)

	n, ok = prompts.ParseRange("-5", 60)
	s.False(ok)
	s.Equal(60, n)
}

func (s *PromptsTestSuite) TestPickRace() {
	s.Equal("Dwarf", prompts.PickRace("", true, "Dwarf"))
	s.Equal("Dwarf", prompts.PickRace("Elf", false, "Dwarf"))
	s.Equal("Human", prompts.PickRace("2", true, "Dwarf"))
	s.Equal("0", prompts.PickRace("0", true, "Dwarf"))
}
