package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ecotrack/backend/internal/auth"
	apperrors "github.com/ecotrack/backend/internal/errors"
	"github.com/ecotrack/backend/internal/store"
	"github.com/ecotrack/backend/internal/store/storetest"
)

const testSecret = "test-secret"

type AuthServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   store.Store
	service *auth.Service
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storetest.New(s.T())
	s.service = auth.NewService(s.store, testSecret)
}

func (s *AuthServiceSuite) register() string {
	token, _, err := s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "secret1",
	})
	s.Require().NoError(err)
	return token
}

func (s *AuthServiceSuite) errorCode(err error) apperrors.ErrorCode {
	apiErr, ok := err.(*apperrors.APIError)
	s.Require().True(ok, "expected *APIError, got %T: %v", err, err)
	return apiErr.Code
}

func (s *AuthServiceSuite) TestRegisterIssuesWorkingToken() {
	token, user, err := s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Alex",
		Email:    "Alex@Example.com",
		Password: "secret1",
	})
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("alex@example.com", user.Email) // normalized
	s.Equal(0, user.Points)

	identity, err := s.service.Authenticate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(user.ID, identity.ID)
	s.Equal("Alex", identity.Name)
	s.Equal("alex@example.com", identity.Email)
}

func (s *AuthServiceSuite) TestRegisterValidation() {
	cases := map[string]auth.RegisterInput{
		"name":     {Email: "a@example.com", Password: "secret1"},
		"email":    {Name: "Alex", Password: "secret1"},
		"password": {Name: "Alex", Email: "a@example.com", Password: "short"},
	}
	for field, in := range cases {
		_, _, err := s.service.Register(s.ctx, in)
		s.Equal(apperrors.ErrValidation, s.errorCode(err), "field %s", field)
	}
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	s.register()

	_, _, err := s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Other",
		Email:    "ALEX@example.com",
		Password: "secret1",
	})
	s.Equal(apperrors.ErrConflict, s.errorCode(err))
}

func (s *AuthServiceSuite) TestLogin() {
	s.register()

	token, user, err := s.service.Login(s.ctx, "alex@example.com", "secret1")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("Alex", user.Name)

	_, _, err = s.service.Login(s.ctx, "alex@example.com", "wrong-password")
	s.Equal(apperrors.ErrUnauthorized, s.errorCode(err))

	_, _, err = s.service.Login(s.ctx, "nobody@example.com", "secret1")
	s.Equal(apperrors.ErrUnauthorized, s.errorCode(err))
}

func (s *AuthServiceSuite) TestAuthenticateRejectsGarbage() {
	_, err := s.service.Authenticate(s.ctx, "not-a-jwt")
	s.ErrorIs(err, auth.ErrInvalidToken)
}

func (s *AuthServiceSuite) TestAuthenticateRejectsForeignSignature() {
	token := s.register()

	other := auth.NewService(s.store, "different-secret")
	_, err := other.Authenticate(s.ctx, token)
	s.ErrorIs(err, auth.ErrInvalidToken)
}

func (s *AuthServiceSuite) TestUpdateProfile() {
	token := s.register()
	identity, err := s.service.Authenticate(s.ctx, token)
	s.Require().NoError(err)

	name := "Alexandra"
	phone := "+1 (555) 000-1111"
	updated, err := s.service.UpdateProfile(s.ctx, identity.ID, auth.ProfileUpdate{
		Name:  &name,
		Phone: &phone,
	})
	s.Require().NoError(err)
	s.Equal("Alexandra", updated.Name)
	s.Require().NotNil(updated.Phone)
	s.Equal(phone, *updated.Phone)
	s.Equal("alex@example.com", updated.Email) // untouched

	profile, err := s.service.Profile(s.ctx, identity.ID)
	s.Require().NoError(err)
	s.Equal("Alexandra", profile.Name)
}

func (s *AuthServiceSuite) TestUpdateProfileEmailConflict() {
	token := s.register()
	identity, err := s.service.Authenticate(s.ctx, token)
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret1",
	})
	s.Require().NoError(err)

	taken := "sam@example.com"
	_, err = s.service.UpdateProfile(s.ctx, identity.ID, auth.ProfileUpdate{Email: &taken})
	s.Equal(apperrors.ErrConflict, s.errorCode(err))

	// Setting the email to its current value is not a conflict
	same := "alex@example.com"
	updated, err := s.service.UpdateProfile(s.ctx, identity.ID, auth.ProfileUpdate{Email: &same})
	s.Require().NoError(err)
	s.Equal(same, updated.Email)
}

func (s *AuthServiceSuite) TestProfileMissingUser() {
	_, err := s.service.Profile(s.ctx, "missing")
	s.Equal(apperrors.ErrNotFound, s.errorCode(err))
}

type DemoAuthSuite struct {
	suite.Suite
	ctx     context.Context
	service *auth.Service
}

func TestDemoAuthSuite(t *testing.T) {
	suite.Run(t, new(DemoAuthSuite))
}

func (s *DemoAuthSuite) SetupTest() {
	s.ctx = context.Background()
	s.service = auth.NewService(store.NewDemo(), testSecret)
}

func (s *DemoAuthSuite) TestLoginAcceptsAnything() {
	token, user, err := s.service.Login(s.ctx, "whoever@example.com", "whatever")
	s.Require().NoError(err)
	s.True(strings.HasPrefix(token, "demo-token-"))
	s.Equal("Demo User", user.Name)

	identity, err := s.service.Authenticate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(store.DemoUserID, identity.ID)
}

func (s *DemoAuthSuite) TestRegisterStillValidates() {
	_, _, err := s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Demo",
		Email:    "demo@example.com",
		Password: "short",
	})
	apiErr, ok := err.(*apperrors.APIError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrValidation, apiErr.Code)

	token, user, err := s.service.Register(s.ctx, auth.RegisterInput{
		Name:     "Demo",
		Email:    "demo@example.com",
		Password: "secret1",
	})
	s.Require().NoError(err)
	s.True(strings.HasPrefix(token, "demo-token-"))
	s.Equal("Demo User", user.Name)
}

func (s *DemoAuthSuite) TestRejectsRealJWTs() {
	_, err := s.service.Authenticate(s.ctx, "eyJhbGciOiJIUzI1NiJ9.e30.sig")
	s.ErrorIs(err, auth.ErrInvalidToken)
}
