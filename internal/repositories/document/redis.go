package document

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
	redisclient "github.com/KirkDiggler/build-api/internal/redis"
)

const (
	documentKeyPrefix = "document:"
	documentIndexKey  = "documents"

	errDocumentNil     = "document cannot be nil"
	errDocumentIDEmpty = "document ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed document repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Document == nil {
		return nil, errors.InvalidArgument(errDocumentNil)
	}
	if input.Document.ID == "" {
		return nil, errors.InvalidArgument(errDocumentIDEmpty)
	}

	data, err := json.Marshal(input.Document)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal document")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, documentKeyPrefix+input.Document.ID, data, 0)
	pipe.SAdd(ctx, documentIndexKey, input.Document.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to store document")
	}

	slog.DebugContext(ctx, "stored document",
		"document_id", input.Document.ID,
		"categories", len(input.Document.Categories))

	return &CreateOutput{Document: input.Document}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDocumentIDEmpty)
	}

	result, err := r.client.Get(ctx, documentKeyPrefix+input.ID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("document %s not found", input.ID).WithMeta("document_id", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get document")
	}

	var doc build.Document
	if err := json.Unmarshal(result, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal document")
	}

	return &GetOutput{Document: &doc}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, documentIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list documents")
	}

	sort.Strings(ids)
	return &ListOutput{IDs: ids}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDocumentIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, documentKeyPrefix+input.ID)
	pipe.SRem(ctx, documentIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete document")
	}

	if del.Val() == 0 {
		return nil, errors.NotFoundf("document %s not found", input.ID).WithMeta("document_id", input.ID)
	}

	return &DeleteOutput{}, nil
}
