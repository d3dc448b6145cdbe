package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorMessageIsSorted() {
	err := errors.NewValidationBuilder().
		RequiredField("session_id").
		Fieldf("manual_range", "must be between %d and %d", 0, 1000).
		Build()
	s.Require().Error(err)

	s.Equal("INVALID_ARGUMENT: validation failed: manual_range: must be between 0 and 1000; session_id: is required", err.Error())
	s.True(errors.IsInvalidArgument(err))
	s.NotNil(errors.GetMeta(err)["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilder() {
	err := errors.NewValidationBuilder().
		RequiredField("source").
		InvalidField("manual_mode", "unknown vision mode").
		Build()

	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "source: is required")
	s.Contains(err.Error(), "manual_mode: is invalid: unknown vision mode")
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "sess_1", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("session_id", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("manual_range", 60, 0, 1000, vb)
	s.NoError(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateRange("manual_range", -5, 0, 1000, vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "manual_range: must be between 0 and 1000")
}
