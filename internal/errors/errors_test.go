package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
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
			name:     "config error",
			code:     errors.CodeConfig,
			message:  "moves catalog too small",
			expected: "CONFIG: moves catalog too small",
		},
		{
			name:     "data shape error",
			code:     errors.CodeDataShape,
			message:  "count missing",
			expected: "DATA_SHAPE: count missing",
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

func (s *ErrorsTestSuite) TestUpstreamCarriesStatus() {
	err := errors.Upstreamf(http.StatusBadGateway, "creature lookup failed for id=%d", 25).
		WithMeta(errors.MetaCreatureID, 25)

	s.Assert().True(errors.IsUpstream(err))
	s.Assert().Equal(http.StatusBadGateway, errors.GetStatus(err))
	s.Assert().Equal(25, errors.GetMeta(err)[errors.MetaCreatureID])
	s.Assert().Equal("creature lookup failed for id=25", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestGetStatusWithoutStatus() {
	s.Assert().Equal(0, errors.GetStatus(nil))
	s.Assert().Equal(0, errors.GetStatus(fmt.Errorf("plain")))
	s.Assert().Equal(0, errors.GetStatus(errors.ConfigError("bad")))
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.DataShapeError("count is not a number")
	wrapped := errors.Wrap(base, "failed to discover population")

	s.Assert().Equal(errors.CodeDataShape, wrapped.Code)
	s.Assert().True(errors.IsDataShape(wrapped))
	s.Assert().Equal(base, wrapped.Unwrap())

	twice := errors.Wrapf(fmt.Errorf("outer: %w", wrapped), "run %s", "abc")
	s.Assert().True(errors.IsDataShape(twice))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	baseErr := fmt.Errorf("connection reset")
	wrapped := errors.Wrap(baseErr, "failed to insert record")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to insert record", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	base := errors.Upstream(http.StatusInternalServerError, "boom").WithMeta(errors.MetaBody, "oops")
	wrapped := errors.WrapWithCode(base, errors.CodeInternal, "cleanup failed")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("oops", wrapped.Meta[errors.MetaBody])

	wrapped.Meta["extra"] = true
	_, leaked := base.Meta["extra"]
	s.Assert().False(leaked)
}

func (s *ErrorsTestSuite) TestIs() {
	a := errors.ConfigError("a")
	b := errors.ConfigError("b")
	c := errors.DataShapeError("c")

	s.Assert().True(errors.Is(a, b))
	s.Assert().False(errors.Is(a, c))
}

func (s *ErrorsTestSuite) TestContextErrorsAreCanceled() {
	s.Assert().True(errors.IsCanceled(context.Canceled))
	s.Assert().True(errors.IsCanceled(fmt.Errorf("get: %w", context.DeadlineExceeded)))
	s.Assert().False(errors.IsCanceled(fmt.Errorf("other")))
}

func (s *ErrorsTestSuite) TestGetCodeNil() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal("", errors.GetMessage(nil))
	s.Assert().Nil(errors.GetMeta(nil))
}
