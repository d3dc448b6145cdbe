package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

type KindsTestSuite struct {
	suite.Suite
}

func TestKindsSuite(t *testing.T) {
	suite.Run(t, new(KindsTestSuite))
}

func (s *KindsTestSuite) TestKindOf() {
	decode := errors.Decode(errors.LayerOuter, "source is not valid JSON", fmt.Errorf("unexpected end of input"))

	testCases := []struct {
		name     string
		err      error
		expected errors.Kind
	}{
		{name: "nil", err: nil, expected: errors.KindNone},
		{name: "missing file", err: errors.NotFound("input file x.json not found"), expected: errors.KindInputNotFound},
		{name: "decode", err: decode, expected: errors.KindDecode},
		{name: "wrapped decode", err: errors.Wrap(decode, "failed to inspect"), expected: errors.KindDecode},
		{name: "bad flag", err: errors.InvalidArgument("unknown vision mode"), expected: errors.KindInvalidInput},
		{name: "canceled", err: errors.New(errors.CodeCanceled, "input canceled"), expected: errors.KindCanceled},
		{name: "internal", err: errors.Internal("conversion failed"), expected: errors.KindConversion},
		{name: "plain", err: fmt.Errorf("disk full"), expected: errors.KindConversion},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, errors.KindOf(tc.err))
		})
	}
}

func (s *KindsTestSuite) TestDecodeCarriesLayer() {
	err := errors.Decode(errors.LayerOuter, "source must be a JSON object", nil)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(errors.LayerOuter, errors.GetMeta(err)[errors.MetaLayer])
}

func (s *KindsTestSuite) TestDescribe() {
	s.Empty(errors.Describe(nil))
	s.Equal("not found: input file x.json not found", errors.Describe(errors.NotFound("input file x.json not found")))
	s.Contains(errors.Describe(errors.Decode(errors.LayerOuter, "source is not valid JSON", nil)), "could not read the character file")
	s.Equal("invalid input: bad", errors.Describe(errors.InvalidArgument("bad")))
	s.Equal("conversion failed: INTERNAL: boom", errors.Describe(errors.Internal("boom")))
}
