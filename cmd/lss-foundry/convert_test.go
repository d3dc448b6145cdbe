package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/prompts"
	"github.com/KirkDiggler/lss-foundry/internal/testutils"
)

type ConvertCommandTestSuite struct {
	suite.Suite
	ctx   context.Context
	dir   string
	input string
	out   *bytes.Buffer
}

func TestConvertCommandSuite(t *testing.T) {
	suite.Run(t, new(ConvertCommandTestSuite))
}

func (s *ConvertCommandTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	s.input = filepath.Join(s.dir, "export.json")
	s.Require().NoError(os.WriteFile(s.input, testutils.CreateTestEnvelope(), 0o600))
	s.out = &bytes.Buffer{}
}

func (s *ConvertCommandTestSuite) readActor(name string) map[string]any {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	s.Require().NoError(err)
	var actor map[string]any
	s.Require().NoError(json.Unmarshal(data, &actor))
	return actor
}

func (s *ConvertCommandTestSuite) TestNonInteractive() {
	err := runConvert(s.ctx, s.input, convertOptions{DevilsSight: true}, nil, s.out)
	s.Require().NoError(err)

	actor := s.readActor("Thorin Oakenshield_foundry.json")
	sight := actor["prototypeToken"].(map[string]any)["sight"].(map[string]any)
	s.Equal(float64(120), sight["range"])

	s.Contains(s.out.String(), "Class:     Fighter")
	s.Contains(s.out.String(), "Character: Thorin Oakenshield")
	s.Contains(s.out.String(), "File: ")
}

func (s *ConvertCommandTestSuite) TestInteractiveAnswers() {
	p := prompts.New(strings.NewReader("Gimli\n2\n5\n30\n"), s.out)

	err := runConvert(s.ctx, s.input, convertOptions{}, p, s.out)
	s.Require().NoError(err)

	actor := s.readActor("Gimli_foundry.json")
	s.Equal("Gimli", actor["name"])
	details := actor["system"].(map[string]any)["details"].(map[string]any)
	s.Equal("Human", details["race"])
	sight := actor["prototypeToken"].(map[string]any)["sight"].(map[string]any)
	s.Equal("tremorsense", sight["visionMode"])
	s.Equal(float64(30), sight["range"])
}

func (s *ConvertCommandTestSuite) TestFlagsSkipPrompts() {
	p := prompts.New(strings.NewReader(""), s.out)
	opts := convertOptions{
		Name:           "Nyx",
		Race:           "Tiefling",
		Vision:         "truesight",
		OutputDir:      s.dir,
		VisionRange:    30,
		HasVisionRange: true,
	}

	err := runConvert(s.ctx, s.input, opts, p, s.out)
	s.Require().NoError(err)
	s.NotContains(s.out.String(), "CHARACTER RACE")

	actor := s.readActor("Nyx_foundry.json")
	sight := actor["prototypeToken"].(map[string]any)["sight"].(map[string]any)
	s.Equal("truesight", sight["visionMode"])
	s.Equal(float64(30), sight["range"])
}

func (s *ConvertCommandTestSuite) TestPromptsForMissingPath() {
	p := prompts.New(strings.NewReader(s.input+"\n\n\n\n"), s.out)

	err := runConvert(s.ctx, "", convertOptions{}, p, s.out)
	s.Require().NoError(err)
	s.FileExists(filepath.Join(s.dir, "Thorin Oakenshield_foundry.json"))
}

func (s *ConvertCommandTestSuite) TestErrorsLeaveNoArtifact() {
	testCases := []struct {
		name  string
		setup func() string
		check func(error) bool
	}{
		{
			name:  "missing input",
			setup: func() string { return filepath.Join(s.dir, "nope.json") },
			check: errors.IsNotFound,
		},
		{
			name: "invalid json",
			setup: func() string {
				path := filepath.Join(s.dir, "broken.json")
				s.Require().NoError(os.WriteFile(path, []byte("{broken"), 0o600))
				return path
			},
			check: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := runConvert(s.ctx, tc.setup(), convertOptions{}, nil, s.out)
			s.Require().Error(err)
			s.True(tc.check(err))

			matches, globErr := filepath.Glob(filepath.Join(s.dir, "*_foundry.json"))
			s.Require().NoError(globErr)
			s.Empty(matches)
		})
	}
}

func (s *ConvertCommandTestSuite) TestVisionFlagValidation() {
	err := runConvert(s.ctx, s.input, convertOptions{HasVisionRange: true, VisionRange: 10}, nil, s.out)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	err = runConvert(s.ctx, s.input, convertOptions{Vision: "xray"}, nil, s.out)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConvertCommandTestSuite) TestPrintRaces() {
	var out bytes.Buffer
	s.Require().NoError(printRaces(&out))
	s.Contains(out.String(), "RACE")
	s.Contains(out.String(), "1. Tabaxi")
}
