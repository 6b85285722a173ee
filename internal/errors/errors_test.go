package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-dice/internal/errors"
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
			name:     "out of range error",
			code:     errors.CodeOutOfRange,
			message:  "die size must be between 1 and 100",
			expected: "OUT_OF_RANGE: die size must be between 1 and 100",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.InvalidArgument("bad roll").
		WithMeta("notation", "2d").
		WithMeta("mode", "standard")

	s.Assert().Equal("2d", err.Meta["notation"])
	s.Assert().Equal("standard", err.Meta["mode"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("entropy pool empty")
	wrapped := errors.Wrap(baseErr, "failed to roll")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to roll", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Equal("INTERNAL: failed to roll: entropy pool empty", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.OutOfRange("too many dice")
	wrapped := errors.Wrap(baseErr, "failed to parse")

	s.Assert().Equal(errors.CodeOutOfRange, wrapped.Code)
	s.Assert().Equal("failed to parse", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "service unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("service unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		check       func(error) bool
		code        errors.Code
	}{
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.IsInvalidArgument, errors.CodeInvalidArgument},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.IsFailedPrecondition, errors.CodeFailedPrecondition},
		{"OutOfRange", func() *errors.Error { return errors.OutOfRange("test") }, errors.IsOutOfRange, errors.CodeOutOfRange},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.IsInternal, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
			s.Assert().True(tc.check(err))
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.OutOfRangef("dice count must be between %d and %d", 1, 99)
	s.Assert().Equal(errors.CodeOutOfRange, err.Code)
	s.Assert().Equal("dice count must be between 1 and 99", err.Message)

	err2 := errors.InvalidArgumentf("invalid modifier: %q", "+x")
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal(`invalid modifier: "+x"`, err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.OutOfRange("test")
	err2 := errors.OutOfRange("other")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().ErrorIs(errors.Wrap(err1, "wrapped"), err2)
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.OutOfRange("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeOutOfRange, errors.GetCode(err))
	s.Assert().Equal(errors.CodeOutOfRange, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.InvalidArgument("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.InvalidArgument("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
	s.Assert().Equal("", errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeOutOfRange, 400},
		{errors.CodeFailedPrecondition, 412},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.OutOfRange("die size must be between 1 and 100").
		WithReason("range").
		WithMeta("notation", "1d0")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.OutOfRange, st.Code())
	s.Assert().Equal("die size must be between 1 and 100", st.Message())

	s.Require().Len(st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Assert().Equal("range", info.GetReason())
	s.Assert().Equal(errors.ErrorDomain, info.GetDomain())
	s.Assert().Equal("1d0", info.GetMetadata()["notation"])

	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeOutOfRange, errors.GetCode(back))
	s.Assert().Equal(errors.Reason("range"), errors.GetReason(back))
	s.Assert().Equal("1d0", errors.GetMeta(back)["notation"])

	grpcErr2 := status.Error(codes.InvalidArgument, "invalid input")
	err2 := errors.FromGRPCError(grpcErr2)
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(err2))
	s.Assert().Equal("invalid input", errors.GetMessage(err2))
}

func (s *ErrorsTestSuite) TestToGRPCErrorPassthrough() {
	s.Assert().NoError(errors.ToGRPCError(nil))

	grpcErr := status.Error(codes.Unavailable, "down")
	s.Assert().Equal(grpcErr, errors.ToGRPCError(grpcErr))

	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Assert().Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestFromGRPCErrorTransportCodes() {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), errors.IsUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "context deadline exceeded"), errors.IsDeadlineExceeded},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().True(tc.check(errors.FromGRPCError(tc.err)))
		})
	}

	plain := fmt.Errorf("not a status")
	s.Assert().Equal(plain, errors.FromGRPCError(plain))
	s.Assert().NoError(errors.FromGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeOutOfRange, codes.OutOfRange},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.Code("BOGUS"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
