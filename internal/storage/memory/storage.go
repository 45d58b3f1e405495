package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	emailIndex    map[string]model.UserID
	usernameIndex map[string]model.UserID
	scores        map[scoreKey]*model.ScoreRecord
}

type scoreKey struct {
	identity string
	category model.Category
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		emailIndex:    make(map[string]model.UserID),
		usernameIndex: make(map[string]model.UserID),
		scores:        make(map[scoreKey]*model.ScoreRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.emailIndex[strings.ToLower(user.Email)] = user.ID
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) SetUserHighScore(ctx context.Context, id model.UserID, category model.Category, score int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	if user.HighScores == nil {
		user.HighScores = make(map[model.Category]int64)
	}
	if score > user.HighScores[category] {
		user.HighScores[category] = score
	}
	return nil
}

// Score operations

func (s *Storage) SubmitScore(ctx context.Context, rec *model.ScoreRecord) (storage.SubmitResult, error) {
	if rec.Score < 0 || rec.Score > model.MaxScore {
		return storage.SubmitResult{}, model.ErrScoreOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := scoreKey{identity: rec.Identity(), category: rec.Category}
	existing, ok := s.scores[key]
	if ok && existing.Score >= rec.Score {
		return storage.SubmitResult{Accepted: false, Best: existing.Score}, nil
	}

	cp := *rec
	s.scores[key] = &cp
	return storage.SubmitResult{Accepted: true, Best: rec.Score}, nil
}

func (s *Storage) GetScore(ctx context.Context, identity string, category model.Category) (*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.scores[scoreKey{identity: identity, category: category}]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	return rec, nil
}

func (s *Storage) TopScores(ctx context.Context, category model.Category, limit int) ([]*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*model.ScoreRecord
	for key, rec := range s.scores {
		if key.category == category {
			records = append(records, rec)
		}
	}

	// Score descending, ties broken by earliest date (first achiever wins)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].Date.Before(records[j].Date)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Ping always succeeds for in-memory storage
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}
