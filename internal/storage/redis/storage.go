package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardroom/blackjack-go/internal/model"
	"github.com/cardroom/blackjack-go/internal/storage"
)

// Storage is a Redis-backed implementation of the ledger store. Entries
// live in one hash per player; balances are additionally indexed in a
// sorted set for the leaderboard. Balance mutation uses HINCRBY, which is
// atomic on the server, so concurrent settlements for the same player
// cannot lose updates. The index is kept in sync with ZINCRBY, which is
// commutative with concurrent adjustments.
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

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) GetEntry(ctx context.Context, id model.PlayerID) (*model.LedgerEntry, error) {
	fields, err := s.client.HGetAll(ctx, entryKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrEntryNotFound
	}
	return entryFromFields(id, fields), nil
}

func (s *Storage) AdjustBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, entryKey(id), fieldBalance, delta)
	pipe.ZIncrBy(ctx, balanceIndexKey(), float64(delta), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *Storage) SetBalance(ctx context.Context, id model.PlayerID, amount int64) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, entryKey(id), fieldBalance, amount)
	pipe.ZAdd(ctx, balanceIndexKey(), redis.Z{Score: float64(amount), Member: string(id)})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SetCredits(ctx context.Context, id model.PlayerID, amount int64) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, entryKey(id), fieldCredits, amount)
	// Keep the entry visible on the leaderboard even if it has never bet
	pipe.ZAddNX(ctx, balanceIndexKey(), redis.Z{Score: 0, Member: string(id)})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SetLastClaim(ctx context.Context, id model.PlayerID, t time.Time) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, entryKey(id), fieldLastClaim, t.Unix())
	pipe.ZAddNX(ctx, balanceIndexKey(), redis.Z{Score: 0, Member: string(id)})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) TopEntries(ctx context.Context, n int) ([]*model.LedgerEntry, error) {
	if n <= 0 {
		return []*model.LedgerEntry{}, nil
	}

	ids, err := s.client.ZRevRange(ctx, balanceIndexKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.LedgerEntry{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, entryKey(model.PlayerID(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	entries := make([]*model.LedgerEntry, 0, len(ids))
	for i, id := range ids {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			// Index member without a hash; treat as a zero entry
			entries = append(entries, &model.LedgerEntry{PlayerID: model.PlayerID(id)})
			continue
		}
		entries = append(entries, entryFromFields(model.PlayerID(id), fields))
	}
	return entries, nil
}

// entryFromFields builds a LedgerEntry from hash fields, tolerating
// missing fields (an entry created by HINCRBY has only a balance)
func entryFromFields(id model.PlayerID, fields map[string]string) *model.LedgerEntry {
	entry := &model.LedgerEntry{PlayerID: id}
	if v, ok := fields[fieldBalance]; ok {
		entry.Balance, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := fields[fieldCredits]; ok {
		entry.Credits, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := fields[fieldLastClaim]; ok {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil && unix > 0 {
			entry.LastClaimAt = time.Unix(unix, 0).UTC()
		}
	}
	return entry
}
