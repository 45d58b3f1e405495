package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: full account journey from signup to appearing on a leaderboard
func (s *IntegrationSuite) TestAccountJourney() {
	// Step 1: Sign up
	user, token, err := s.app.AuthService.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)
	s.NotEmpty(token)

	// Step 2: The token resolves back to the account
	authed, err := s.app.AuthService.Authenticate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(user.ID, authed.ID)

	// Step 3: Submit a score
	res, err := s.app.ScoreService.Submit(s.ctx, authed, model.CategoryFish, 42)
	s.Require().NoError(err)
	s.True(res.Accepted)

	// Step 4: A lower retry does not regress the board
	res, err = s.app.ScoreService.Submit(s.ctx, authed, model.CategoryFish, 20)
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.Equal(int64(42), res.NewBest)

	// Step 5: The score shows up ranked
	records, err := s.app.LeaderboardService.TopScores(s.ctx, model.CategoryFish, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("tomnook", records[0].Username)
	s.Equal(int64(42), records[0].Score)

	// Step 6: The profile snapshot reflects the best
	fresh, err := s.app.Storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(int64(42), fresh.HighScores[model.CategoryFish])
}

// Test: guests and accounts compete on the same board
func (s *IntegrationSuite) TestMixedLeaderboard() {
	user, _, err := s.app.AuthService.Register(s.ctx, "isabelle", "isa@nook.example", "bells4life")
	s.Require().NoError(err)

	_, err = s.app.ScoreService.Submit(s.ctx, user, model.CategoryBugs, 60)
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Minute)

	_, err = s.app.ScoreService.SubmitGuest(s.ctx, TestGuestToken, "device-1", "wanderer", model.CategoryBugs, 80)
	s.Require().NoError(err)

	records, err := s.app.LeaderboardService.TopScores(s.ctx, model.CategoryBugs, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("wanderer", records[0].Username)
	s.True(records[0].IsGuest)
	s.Equal("isabelle", records[1].Username)
}

// Test: token expiry is enforced end to end
func (s *IntegrationSuite) TestTokenExpiry() {
	_, token, err := s.app.AuthService.Register(s.ctx, "tomnook", "tom@nook.example", "bells4life")
	s.Require().NoError(err)

	s.app.MockClock.Advance(8 * 24 * time.Hour)

	_, err = s.app.AuthService.Authenticate(s.ctx, token)
	s.ErrorIs(err, auth.ErrInvalidToken)
}

// Test: ties rank the earlier submission first across services
func (s *IntegrationSuite) TestTieBreakAcrossSubmitters() {
	first, _, err := s.app.AuthService.Register(s.ctx, "first", "first@nook.example", "bells4life")
	s.Require().NoError(err)

	_, err = s.app.ScoreService.Submit(s.ctx, first, model.CategorySea, 50)
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Hour)

	second, _, err := s.app.AuthService.Register(s.ctx, "second", "second@nook.example", "bells4life")
	s.Require().NoError(err)

	_, err = s.app.ScoreService.Submit(s.ctx, second, model.CategorySea, 50)
	s.Require().NoError(err)

	records, err := s.app.LeaderboardService.TopScores(s.ctx, model.CategorySea, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("first", records[0].Username)
	s.Equal("second", records[1].Username)
}
