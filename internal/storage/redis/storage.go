package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/model"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// rankShift packs (score, date) into a single ZSET score so that ranking is
// decided entirely inside Redis: rank = score*2^31 + (2^31 - unixSeconds).
// A higher quiz score always outranks a lower one, and within a score the
// earlier submission outranks the later one. Packing is only exact while
// score stays within [0, model.MaxScore], which SubmitScore enforces.
const rankShift = int64(1) << 31

// submitScript is the atomic compare-and-update for score submissions.
// KEYS[1] = record key, KEYS[2] = leaderboard zset
// ARGV[1] = candidate score, ARGV[2] = record JSON, ARGV[3] = identity,
// ARGV[4] = packed rank score
// Returns {1, newBest} when the record was created or raised, {0, priorBest}
// when the candidate did not beat the stored score.
var submitScript = redis.NewScript(`
local cur = redis.call('ZSCORE', KEYS[2], ARGV[3])
if cur then
	local best = math.floor(tonumber(cur) / 2147483648)
	if best >= tonumber(ARGV[1]) then
		return {0, best}
	end
end
redis.call('SET', KEYS[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[4], ARGV[3])
return {1, tonumber(ARGV[1])}
`)

// highScoreScript raises a field in the user's snapshot hash, never lowering it.
// KEYS[1] = highscores hash, ARGV[1] = category, ARGV[2] = score
var highScoreScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[1])
if not cur or tonumber(cur) < tonumber(ARGV[2]) then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Client exposes the underlying connection for components that share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}

	// The snapshot hash is authoritative for high scores
	fields, err := s.client.HGetAll(ctx, highScoresKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		user.HighScores = make(map[model.Category]int64, len(fields))
		for cat, val := range fields {
			score, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				continue
			}
			user.HighScores[model.Category(cat)] = score
		}
	}

	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) SetUserHighScore(ctx context.Context, id model.UserID, category model.Category, score int64) error {
	return highScoreScript.Run(ctx, s.client,
		[]string{highScoresKey(id)},
		string(category), score,
	).Err()
}

// Score operations

func (s *Storage) SubmitScore(ctx context.Context, rec *model.ScoreRecord) (storage.SubmitResult, error) {
	if rec.Score < 0 || rec.Score > model.MaxScore {
		return storage.SubmitResult{}, model.ErrScoreOutOfRange
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return storage.SubmitResult{}, err
	}

	identity := rec.Identity()
	rank := rec.Score*rankShift + (rankShift - rec.Date.Unix())

	res, err := submitScript.Run(ctx, s.client,
		[]string{scoreKey(rec.Category, identity), leaderboardKey(rec.Category)},
		rec.Score, data, identity, strconv.FormatInt(rank, 10),
	).Slice()
	if err != nil {
		return storage.SubmitResult{}, err
	}
	if len(res) != 2 {
		return storage.SubmitResult{}, errors.New("unexpected submit script reply")
	}

	accepted, _ := res[0].(int64)
	best, _ := res[1].(int64)
	return storage.SubmitResult{Accepted: accepted == 1, Best: best}, nil
}

func (s *Storage) GetScore(ctx context.Context, identity string, category model.Category) (*model.ScoreRecord, error) {
	data, err := s.client.Get(ctx, scoreKey(category, identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}

	var rec model.ScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Storage) TopScores(ctx context.Context, category model.Category, limit int) ([]*model.ScoreRecord, error) {
	// Non-positive limit means the full leaderboard
	stop := int64(limit - 1)
	if limit <= 0 {
		stop = -1
	}

	// The ZSET is already ordered by (score desc, date asc) via the packed
	// rank score, so the range order is the response order
	identities, err := s.client.ZRevRange(ctx, leaderboardKey(category), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return []*model.ScoreRecord{}, nil
	}

	keys := make([]string, len(identities))
	for i, identity := range identities {
		keys[i] = scoreKey(category, identity)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.ScoreRecord, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Record missing for a ranked identity
		}
		var rec model.ScoreRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &rec)
	}

	return records, nil
}

// Ping verifies the Redis connection is alive
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
