package vision_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

type ResolverTestSuite struct {
	suite.Suite
	resolver vision.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.resolver = vision.NewResolver()
}

func (s *ResolverTestSuite) resolve(input *vision.ResolveInput) *vision.Profile {
	out, err := s.resolver.Resolve(input)
	s.Require().NoError(err)
	s.Require().NotNil(out.Profile)
	return out.Profile
}

func intPtr(v int) *int {
	return &v
}

func (s *ResolverTestSuite) TestRacialDefaults() {
	testCases := []struct {
		race string
		mode dnd5e.VisionMode
		rng  int
	}{
		{race: "Elf", mode: dnd5e.VisionDarkvision, rng: 60},
		{race: "Human", mode: dnd5e.VisionNormal, rng: 0},
		{race: "Drow", mode: dnd5e.VisionDarkvision, rng: 120},
		{race: "  HIGH   elf ", mode: dnd5e.VisionDarkvision, rng: 60},
		{race: "Drow Elf", mode: dnd5e.VisionDarkvision, rng: 120},
		{race: "Deep Gnome", mode: dnd5e.VisionDarkvision, rng: 120},
		{race: "Forest Gnome (Tinker)", mode: dnd5e.VisionDarkvision, rng: 60},
		{race: "Mountain Dwarf", mode: dnd5e.VisionDarkvision, rng: 60},
		{race: "Табакси", mode: dnd5e.VisionDarkvision, rng: 60},
		{race: "Драконорождённый", mode: dnd5e.VisionNormal, rng: 0},
		{race: "Глубинный гном", mode: dnd5e.VisionDarkvision, rng: 120},
		{race: "Warforged", mode: dnd5e.VisionNormal, rng: 0},
		{race: "", mode: dnd5e.VisionNormal, rng: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.race, func() {
			profile := s.resolve(&vision.ResolveInput{Race: tc.race})
			s.Equal(tc.mode, profile.Mode)
			s.Equal(tc.rng, profile.Range)
			s.Equal(vision.SourceRace, profile.Source)
			s.False(profile.MagicalDarkness)
			s.NotEmpty(profile.Note)
		})
	}
}

func (s *ResolverTestSuite) TestLookupRaceReverseContainment() {
	entry, ok := vision.LookupRace("tabax")
	s.True(ok)
	s.Equal("tabaxi", entry.Race)

	_, ok = vision.LookupRace("   ")
	s.False(ok)
}

func (s *ResolverTestSuite) TestBlindFightingTakesPrecedence() {
	profile := s.resolve(&vision.ResolveInput{
		Race: "Elf",
		Features: vision.Features{
			BlindFighting: true,
			DevilsSight:   true,
			NightVision:   true,
		},
	})

	s.Equal(dnd5e.VisionBlindsight, profile.Mode)
	s.Equal(10, profile.Range)
	s.True(profile.MagicalDarkness)
	s.Equal(vision.SourceFeature, profile.Source)
	s.Contains(profile.Note, "Blind Fighting")
}

func (s *ResolverTestSuite) TestDevilsSight() {
	testCases := []struct {
		name string
		race string
		rng  int
	}{
		{name: "raises normal sight", race: "Human", rng: 120},
		{name: "raises shorter darkvision", race: "Elf", rng: 120},
		{name: "keeps equal darkvision", race: "Drow", rng: 120},
		{name: "unknown race", race: "Warforged", rng: 120},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			profile := s.resolve(&vision.ResolveInput{
				Race:     tc.race,
				Features: vision.Features{DevilsSight: true},
			})
			s.Equal(dnd5e.VisionDarkvision, profile.Mode)
			s.Equal(tc.rng, profile.Range)
			s.True(profile.MagicalDarkness)
		})
	}
}

func (s *ResolverTestSuite) TestNightVisionNeverLowersRange() {
	s.Run("grants darkvision to human", func() {
		profile := s.resolve(&vision.ResolveInput{
			Race:     "Human",
			Features: vision.Features{NightVision: true},
		})
		s.Equal(dnd5e.VisionDarkvision, profile.Mode)
		s.Equal(60, profile.Range)
		s.False(profile.MagicalDarkness)
	})

	s.Run("keeps drow range", func() {
		profile := s.resolve(&vision.ResolveInput{
			Race:     "Drow",
			Features: vision.Features{NightVision: true},
		})
		s.Equal(120, profile.Range)
	})

	s.Run("devil's sight outranks night vision", func() {
		profile := s.resolve(&vision.ResolveInput{
			Race:     "Human",
			Features: vision.Features{NightVision: true, DevilsSight: true},
		})
		s.Equal(120, profile.Range)
		s.True(profile.MagicalDarkness)
	})
}

func (s *ResolverTestSuite) TestManualOverride() {
	s.Run("replaces everything", func() {
		profile := s.resolve(&vision.ResolveInput{
			Race:     "Drow",
			Features: vision.Features{BlindFighting: true, DevilsSight: true},
			Manual:   &vision.ManualOverride{Mode: dnd5e.VisionTruesight, Range: intPtr(30)},
		})
		s.Equal(dnd5e.VisionTruesight, profile.Mode)
		s.Equal(30, profile.Range)
		s.True(profile.Enabled())
		s.Equal(vision.SourceManual, profile.Source)
	})

	s.Run("missing range uses mode default", func() {
		profile := s.resolve(&vision.ResolveInput{
			Manual: &vision.ManualOverride{Mode: dnd5e.VisionTruesight},
		})
		s.Equal(120, profile.Range)
		s.True(profile.MagicalDarkness)
	})

	s.Run("normal forces zero range", func() {
		profile := s.resolve(&vision.ResolveInput{
			Race:   "Elf",
			Manual: &vision.ManualOverride{Mode: dnd5e.VisionNormal, Range: intPtr(90)},
		})
		s.Equal(dnd5e.VisionNormal, profile.Mode)
		s.Equal(0, profile.Range)
		s.False(profile.Enabled())
	})

	s.Run("zero range is honoured", func() {
		profile := s.resolve(&vision.ResolveInput{
			Manual: &vision.ManualOverride{Mode: dnd5e.VisionDarkvision, Range: intPtr(0)},
		})
		s.Equal(0, profile.Range)
	})
}

func (s *ResolverTestSuite) TestInvalidInput() {
	testCases := []struct {
		name   string
		input  *vision.ResolveInput
		expect string
	}{
		{name: "nil input", input: nil, expect: "input is required"},
		{
			name:   "unknown mode",
			input:  &vision.ResolveInput{Manual: &vision.ManualOverride{Mode: "xray"}},
			expect: "manual_mode",
		},
		{
			name:   "negative range",
			input:  &vision.ResolveInput{Manual: &vision.ManualOverride{Mode: dnd5e.VisionDarkvision, Range: intPtr(-5)}},
			expect: "manual_range",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.resolver.Resolve(tc.input)
			s.Nil(out)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.expect)
		})
	}
}

func (s *ResolverTestSuite) TestSight() {
	profile := s.resolve(&vision.ResolveInput{Race: "Elf"})
	sight := profile.Sight()

	s.True(sight.Enabled)
	s.Equal(60, sight.Range)
	s.Equal("darkvision", sight.VisionMode)
	s.Equal(360, sight.Angle)
	s.Equal(0.1, sight.Attenuation)
	s.Nil(sight.Color)

	normal := s.resolve(&vision.ResolveInput{Race: "Human"}).Sight()
	s.False(normal.Enabled)
	s.Equal("basic", normal.VisionMode)
	s.Equal(0, normal.Range)
}
