package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/mocks"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{TokenSecret: "test-secret"})
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, token, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal("tomnook", user.Username)
	s.Equal("tom@nook.example", user.Email)
	s.Equal(model.RoleUser, user.Role)
	s.True(user.Active)
	s.NotEmpty(user.ID)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	user, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	stored, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.NotEmpty(stored.PasswordHash)
	s.NotEqual("bells4life", stored.PasswordHash)
}

func (s *ServiceSuite) TestRegisterNormalizesEmail() {
	user, _, err := s.service.Register(s.ctx, "tomnook", "  TOM@Nook.Example ", "bells4life")
	s.Require().NoError(err)
	s.Equal("tom@nook.example", user.Email)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "short")
	s.ErrorIs(err, ErrWeakPassword)
}

func (s *ServiceSuite) TestRegisterRejectsBadUsername() {
	_, _, err := s.service.Register(s.ctx, "ab", "tom@nook.example", "bells4life")
	s.ErrorIs(err, ErrInvalidUsername)

	_, _, err = s.service.Register(s.ctx, "this-username-is-way-too-long", "tom@nook.example", "bells4life")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsBadEmail() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "not-an-email", "bells4life")
	s.ErrorIs(err, ErrInvalidEmail)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "tomnook", "other@nook.example", "bells4life")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterFailsIfEmailExists() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "timmynook", "tom@nook.example", "bells4life")
	s.ErrorIs(err, model.ErrEmailExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	user, token, err := s.service.Login(s.ctx, "tom@nook.example", "bells4life")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("tomnook", user.Username)
}

func (s *ServiceSuite) TestLoginIgnoresEmailCase() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "TOM@nook.example", "bells4life")
	s.NoError(err)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "tom@nook.example", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, _, err := s.service.Login(s.ctx, "nobody@nook.example", "bells4life")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsForDisabledAccount() {
	user, _, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	user.Active = false
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	_, _, err = s.service.Login(s.ctx, "tom@nook.example", "bells4life")
	s.ErrorIs(err, ErrAccountDisabled)
}

// Token tests

func (s *ServiceSuite) TestVerifyAcceptsIssuedToken() {
	user, token, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	claims, err := s.service.Verify(token)
	s.Require().NoError(err)
	s.Equal(string(user.ID), claims.UserID)
}

func (s *ServiceSuite) TestVerifyRejectsGarbage() {
	_, err := s.service.Verify("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsWrongSecret() {
	other := New(s.storage, s.clock, Config{TokenSecret: "different-secret"})
	_, token, err := other.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	_, err = s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsExpiredToken() {
	_, token, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	s.clock.Advance(8 * 24 * time.Hour)

	_, err = s.service.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateReturnsLiveUser() {
	registered, token, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
}

func (s *ServiceSuite) TestAuthenticateFailsForDisabledAccount() {
	user, token, err := s.service.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	user.Active = false
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	_, err = s.service.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrAccountDisabled)
}

func (s *ServiceSuite) TestAuthenticateFailsWithInvalidToken() {
	_, err := s.service.Authenticate(s.ctx, "invalid_token")
	s.ErrorIs(err, ErrInvalidToken)
}
