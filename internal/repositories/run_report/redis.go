package runreport

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
	redisclient "github.com/KirkDiggler/creature-seeder/internal/redis"
)

const (
	// Key pattern: seed_report:{run_id}
	reportKeyPrefix = "seed_report:"
	// Sorted set of run ids scored by start time
	reportIndexKey = "seed_reports"

	// DefaultRedisTTL is how long a report is kept
	DefaultRedisTTL = 7 * 24 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL for each report (optional, defaults to DefaultRedisTTL)
	TTL    time.Duration
	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL == 0 {
		c.TTL = DefaultRedisTTL
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRepository creates a new Redis repository for run reports
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateReport(input.Report); err != nil {
		return nil, err
	}

	body, err := json.Marshal(input.Report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, reportKeyPrefix+input.Report.RunID, body, r.ttl)
		pipe.ZAdd(ctx, reportIndexKey, redis.Z{
			Score:  float64(input.Report.StartedAt.UnixMilli()),
			Member: input.Report.RunID,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store report %s in Redis", input.Report.RunID)
	}

	return &SaveOutput{Report: input.Report}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	body, err := r.client.Get(ctx, reportKeyPrefix+input.RunID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("run report %s not found", input.RunID)
		}
		return nil, errors.Wrapf(err, "failed to get report %s from Redis", input.RunID)
	}

	var report RunReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal report %s", input.RunID)
	}

	return &GetOutput{Report: &report}, nil
}

func (r *redisRepository) ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error) {
	limit := listLimit(input.Limit)

	runIDs, err := r.client.ZRevRange(ctx, reportIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read report index")
	}

	reports := make([]*RunReport, 0, len(runIDs))
	for _, runID := range runIDs {
		out, err := r.Get(ctx, GetInput{RunID: runID})
		if err != nil {
			if errors.IsNotFound(err) {
				r.logger.Debug("report expired, cleaning up index", zap.String("run_id", runID))
				_ = r.client.ZRem(ctx, reportIndexKey, runID)
				continue
			}
			return nil, err
		}
		reports = append(reports, out.Report)
	}

	return &ListRecentOutput{Reports: reports}, nil
}
