package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("StoreURL", "is required")
	ve.AddFieldErrorf("InsertCount", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal(
		"validation failed: InsertCount: must be at least 1; StoreURL: is required",
		ve.Error(),
	)

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestValidateHTTPURL() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"https url", "https://pokeapi.co/api/v2/pokemon", false},
		{"http url with port", "http://127.0.0.1:8080/data", false},
		{"empty", "", true},
		{"relative", "/api/v2/pokemon", true},
		{"wrong scheme", "ftp://example.com/data", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateHTTPURL("URL", tc.value, vb)
			if tc.shouldErr {
				s.Assert().True(errors.IsInvalidArgument(vb.Build()))
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMinAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("InsertCount", 0, 1, vb)
	errors.ValidateEnum("ReportStore", "postgres", []string{"none", "redis", "sqlite"}, vb)
	errors.ValidateRequired("MovesPath", "  ", vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "InsertCount: must be at least 1")
	s.Assert().Contains(err.Error(), "ReportStore: must be one of: none, redis, sqlite")
	s.Assert().Contains(err.Error(), "MovesPath: is required")
}
