package score

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/mocks"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage/memory"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/testutil"
)

const testGuestToken = "test-guest-token"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
	user    *model.User
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger(), Config{GuestToken: testGuestToken})
	s.ctx = context.Background()

	s.user = &model.User{
		ID:       "user-1",
		Username: "tomnook",
		Email:    "tom@nook.example",
		Active:   true,
	}
	s.Require().NoError(s.storage.SaveUser(s.ctx, s.user))
}

// Submit tests

func (s *ServiceSuite) TestSubmitAcceptsFirstScore() {
	res, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 50)
	s.Require().NoError(err)
	s.True(res.Accepted)
	s.Equal(int64(50), res.NewBest)
}

func (s *ServiceSuite) TestSubmitStampsCurrentTime() {
	_, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 50)
	s.Require().NoError(err)

	rec, err := s.storage.GetScore(s.ctx, "u:tomnook", model.CategoryFish)
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, rec.Date)
}

func (s *ServiceSuite) TestSubmitKeepsHigherScore() {
	_, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 50)
	s.Require().NoError(err)

	res, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 30)
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.Equal(int64(50), res.NewBest)
}

func (s *ServiceSuite) TestSubmitUpdatesHighScoreSnapshot() {
	_, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 50)
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Equal(int64(50), user.HighScores[model.CategoryFish])
}

func (s *ServiceSuite) TestSubmitRejectsUnknownCategory() {
	_, err := s.service.Submit(s.ctx, s.user, "dinosaurs", 50)
	s.ErrorIs(err, model.ErrInvalidCategory)
}

func (s *ServiceSuite) TestSubmitRejectsNegativeScore() {
	_, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, -1)
	s.ErrorIs(err, model.ErrNegativeScore)
}

func (s *ServiceSuite) TestSubmitAcceptsZero() {
	res, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, 0)
	s.Require().NoError(err)
	s.True(res.Accepted)
	s.Equal(int64(0), res.NewBest)
}

func (s *ServiceSuite) TestSubmitAcceptsMaxScore() {
	res, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, model.MaxScore)
	s.Require().NoError(err)
	s.True(res.Accepted)
	s.Equal(model.MaxScore, res.NewBest)
}

func (s *ServiceSuite) TestSubmitRejectsOversizedScore() {
	_, err := s.service.Submit(s.ctx, s.user, model.CategoryFish, model.MaxScore+1)
	s.ErrorIs(err, model.ErrScoreOutOfRange)

	_, err = s.service.Submit(s.ctx, s.user, model.CategoryFish, 9000000000000000000)
	s.ErrorIs(err, model.ErrScoreOutOfRange)

	_, err = s.storage.GetScore(s.ctx, "u:tomnook", model.CategoryFish)
	s.ErrorIs(err, model.ErrScoreNotFound, "a rejected submission must not write")
}

// SubmitGuest tests

func (s *ServiceSuite) TestSubmitGuestSucceeds() {
	res, err := s.service.SubmitGuest(s.ctx, testGuestToken, "device-abc", "wanderer", model.CategoryFish, 40)
	s.Require().NoError(err)
	s.True(res.Accepted)

	rec, err := s.storage.GetScore(s.ctx, "g:device-abc", model.CategoryFish)
	s.Require().NoError(err)
	s.True(rec.IsGuest)
	s.Equal("wanderer", rec.Username)
}

func (s *ServiceSuite) TestSubmitGuestRejectsWrongToken() {
	_, err := s.service.SubmitGuest(s.ctx, "wrong-token", "device-abc", "wanderer", model.CategoryFish, 40)
	s.ErrorIs(err, ErrBadGuestToken)
}

func (s *ServiceSuite) TestSubmitGuestRejectsWhenNoTokenConfigured() {
	svc := New(s.storage, s.clock, testutil.NopLogger(), Config{})
	_, err := svc.SubmitGuest(s.ctx, "", "device-abc", "wanderer", model.CategoryFish, 40)
	s.ErrorIs(err, ErrBadGuestToken)
}

func (s *ServiceSuite) TestSubmitGuestRequiresDeviceID() {
	_, err := s.service.SubmitGuest(s.ctx, testGuestToken, "  ", "wanderer", model.CategoryFish, 40)
	s.ErrorIs(err, ErrMissingDeviceID)
}

func (s *ServiceSuite) TestSubmitGuestValidatesUsername() {
	_, err := s.service.SubmitGuest(s.ctx, testGuestToken, "device-abc", "xy", model.CategoryFish, 40)
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestSubmitGuestRejectsOversizedScore() {
	_, err := s.service.SubmitGuest(s.ctx, testGuestToken, "device-abc", "wanderer", model.CategoryFish, model.MaxScore+1)
	s.ErrorIs(err, model.ErrScoreOutOfRange)
}

func (s *ServiceSuite) TestSubmitGuestRenameKeepsDeviceBest() {
	_, err := s.service.SubmitGuest(s.ctx, testGuestToken, "device-abc", "wanderer", model.CategoryFish, 40)
	s.Require().NoError(err)

	res, err := s.service.SubmitGuest(s.ctx, testGuestToken, "device-abc", "renamed", model.CategoryFish, 30)
	s.Require().NoError(err)
	s.False(res.Accepted, "a renamed guest on the same device still competes against their own best")
	s.Equal(int64(40), res.NewBest)
}
