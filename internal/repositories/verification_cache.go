package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
)

const verificationKeyPrefix = "verification:"

// VerificationCacheRepository keeps pending registration codes in Redis.
// Keys expire together with the code, so no cleanup job is needed.
type VerificationCacheRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewVerificationCacheRepository(client *redis.Client) *VerificationCacheRepository {
	return &VerificationCacheRepository{client: client, now: time.Now}
}

func verificationKey(email string) string {
	return verificationKeyPrefix + email
}

// Upsert replaces any pending code for the email.
func (r *VerificationCacheRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	key := verificationKey(email)
	now := r.now()

	data, err := json.Marshal(models.PendingVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		// already expired, drop whatever is there
		return r.DeleteByEmail(ctx, email)
	}

	err = r.client.Set(ctx, key, data, ttl).Err()
	logger.Log.Infow("redis set",
		"key", key,
		"ttl", ttl,
		"result", "ok",
		"error", err,
	)
	return err
}

// FindValid returns the pending entry only if the code matches and it
// expires strictly after now. Otherwise it returns nil.
func (r *VerificationCacheRepository) FindValid(ctx context.Context, email, code string, now time.Time) (*models.PendingVerification, error) {
	key := verificationKey(email)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("redis get", "key", key, "result", "not found", "error", nil)
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow("redis get", "key", key, "result", nil, "error", err)
		return nil, err
	}

	var entry models.PendingVerification
	if err := json.Unmarshal(val, &entry); err != nil {
		logger.Log.Infow("redis get", "key", key, "result", nil, "error", err)
		return nil, err
	}

	valid := entry.IsValid(code, now)
	logger.Log.Infow("redis get", "key", key, "result", valid, "error", nil)
	if !valid {
		return nil, nil
	}
	return &entry, nil
}

// DeleteByEmail removes the pending entry for the email.
func (r *VerificationCacheRepository) DeleteByEmail(ctx context.Context, email string) error {
	key := verificationKey(email)
	n, err := r.client.Del(ctx, key).Result()
	logger.Log.Infow("redis del",
		"key", key,
		"result", n,
		"error", err,
	)
	return err
}
