package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "input file not found",
			expected: "NOT_FOUND: input file not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "source is not valid JSON",
			expected: "INVALID_ARGUMENT: source is not valid JSON",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("session not found").
		WithMeta("session_id", "sess_1").
		WithMeta("attempt", 2)

	s.Equal("sess_1", err.Meta["session_id"])
	s.Equal(2, err.Meta["attempt"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk full")
	wrapped := errors.Wrap(baseErr, "failed to write output")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to write output", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Equal("INTERNAL: failed to write output: disk full", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	original := errors.NotFound("input file not found").WithMeta("path", "/tmp/x.json")
	wrapped := errors.Wrap(original, "failed to load source")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("/tmp/x.json", wrapped.Meta["path"])
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	original := errors.Internal("boom").WithMeta("layer", "outer")
	wrapped := errors.WrapWithCode(original, errors.CodeInvalidArgument, "bad source")

	s.Equal(errors.CodeInvalidArgument, wrapped.Code)
	s.Equal("outer", wrapped.Meta["layer"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "message"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeInternal, "message"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err := errors.Wrap(errors.NotFound("a"), "session lookup")
	s.True(stderrors.Is(err, errors.NotFound("b")))
	s.False(stderrors.Is(err, errors.Internal("a")))
}

func (s *ErrorsTestSuite) TestHelpers() {
	s.Equal(errors.KindNone, errors.KindOf(nil))
	s.Equal(errors.KindConversion, errors.KindOf(fmt.Errorf("plain")))
	s.Equal("conversion failed: plain", errors.Describe(fmt.Errorf("plain")))
	s.Equal("not found: nice message", errors.Describe(errors.Wrap(errors.NotFound("raw"), "nice message")))
	s.Nil(errors.GetMeta(fmt.Errorf("plain")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgumentf("bad %s", "mode")))
	s.True(errors.IsFailedPrecondition(errors.FailedPrecondition("no source")))
	s.True(errors.IsInternal(errors.Internal("failed")))
	s.True(errors.IsNotFound(errors.NotFoundf("session %q", "sess_1")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("session not found").WithMeta("session_id", "sess_1")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("session not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsNotFound(back))
	s.Equal("sess_1", errors.GetMeta(back)["session_id"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPlainError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("unexpected")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
	s.Nil(errors.ToGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.Code("SOMETHING_ELSE"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
