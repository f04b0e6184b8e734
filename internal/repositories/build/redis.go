package build

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/build-api/internal/redis"
)

const (
	// Key pattern: build:{build_id}
	buildKeyPrefix = "build:"

	// DefaultTTL is used when Config.TTL is zero
	DefaultTTL = 24 * time.Hour

	errBuildNil        = "build cannot be nil"
	errBuildIDEmpty    = "build ID cannot be empty"
	errDocumentIDEmpty = "document ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed build repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateBuild(input.Build); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	b := cloneBuild(input.Build)
	b.Version = 1
	b.CreatedAt = now.Unix()
	b.UpdatedAt = now.Unix()
	b.ExpiresAt = now.Add(r.ttl).Unix()

	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal build")
	}

	created, err := r.client.SetNX(ctx, buildKeyPrefix+b.ID, data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store build")
	}
	if !created {
		return nil, errors.AlreadyExists("build already exists").WithMeta("build_id", b.ID)
	}

	return &CreateOutput{Build: b}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBuildIDEmpty)
	}

	key := buildKeyPrefix + input.ID
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("build %s not found", input.ID).WithMeta("build_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get build")
	}

	var b build.Build
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal build")
	}

	// Redis expiry is authoritative, this covers clock skew with the server
	if r.clock.Now().Unix() > b.ExpiresAt {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("build %s has expired", input.ID).WithMeta("build_id", input.ID)
	}

	return &GetOutput{Build: &b}, nil
}

// Update writes the build only if the stored version still matches the one
// that was read. The key is watched so a write landing between the check and
// the set aborts the transaction.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateBuild(input.Build); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	b := cloneBuild(input.Build)
	b.Version = input.Build.Version + 1
	b.UpdatedAt = now.Unix()
	b.ExpiresAt = now.Add(r.ttl).Unix()

	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal build")
	}

	key := buildKeyPrefix + b.ID
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("build %s not found", b.ID).WithMeta("build_id", b.ID)
			}
			return errors.Wrapf(err, "failed to read build")
		}

		var stored build.Build
		if err := json.Unmarshal(current, &stored); err != nil {
			return errors.Wrapf(err, "failed to unmarshal build")
		}
		if stored.Version != input.Build.Version {
			return errors.Abortedf("build %s was changed by another request", b.ID).
				WithMeta("build_id", b.ID).
				WithMeta("version", stored.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, errors.Abortedf("build %s was changed by another request", b.ID).
				WithMeta("build_id", b.ID)
		}
		return nil, errors.Wrapf(err, "failed to update build")
	}

	return &UpdateOutput{Build: b}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBuildIDEmpty)
	}

	deleted, err := r.client.Del(ctx, buildKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete build")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("build %s not found", input.ID).WithMeta("build_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

func validateBuild(b *build.Build) error {
	if b == nil {
		return errors.InvalidArgument(errBuildNil)
	}
	if b.ID == "" {
		return errors.InvalidArgument(errBuildIDEmpty)
	}
	if b.DocumentID == "" {
		return errors.InvalidArgument(errDocumentIDEmpty)
	}
	return nil
}

func cloneBuild(b *build.Build) *build.Build {
	out := *b
	out.Selections = make(map[string]int, len(b.Selections))
	for id, count := range b.Selections {
		out.Selections[id] = count
	}
	return &out
}
