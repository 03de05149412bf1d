package redisinfra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/loan-landing-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// Both scripts act only when the stored hash still carries the caller's code
// and issue time, so a concurrent overwrite is never touched.
var (
	compareAndDeleteScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'code') == ARGV[1] and redis.call('HGET', KEYS[1], 'issued_at') == ARGV[2] then
	return redis.call('DEL', KEYS[1])
end
return 0`)

	incrementAttemptsScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'code') == ARGV[1] and redis.call('HGET', KEYS[1], 'issued_at') == ARGV[2] then
	return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
end
return 0`)
)

// VerificationStore keeps pending codes in Redis hashes keyed by phone.
type VerificationStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewVerificationStore returns a store whose keys expire after twice the
// validity window: long enough for a late verify to be reported as expired,
// short enough that abandoned codes do not pile up.
func NewVerificationStore(client redis.UniversalClient, window time.Duration) *VerificationStore {
	return &VerificationStore{client: client, ttl: 2 * window}
}

func (s *VerificationStore) Put(ctx context.Context, rec *domain.VerificationRecord) error {
	key := keyPrefix + rec.Phone
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.HSet(ctx, key,
			"code", rec.Code,
			"issued_at", issuedAt(rec),
			"attempts", rec.Attempts,
		)
		p.PExpire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put verification: %w", err)
	}
	return nil
}

func (s *VerificationStore) Get(ctx context.Context, phone string) (*domain.VerificationRecord, error) {
	vals, err := s.client.HGetAll(ctx, keyPrefix+phone).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get verification: %w", err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	nanos, err := strconv.ParseInt(vals["issued_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse issued_at: %w", err)
	}
	attempts, _ := strconv.Atoi(vals["attempts"])
	return &domain.VerificationRecord{
		Phone:    phone,
		Code:     vals["code"],
		IssuedAt: time.Unix(0, nanos).UTC(),
		Attempts: attempts,
	}, nil
}

func (s *VerificationStore) CompareAndDelete(ctx context.Context, rec *domain.VerificationRecord) (bool, error) {
	n, err := compareAndDeleteScript.Run(ctx, s.client, []string{keyPrefix + rec.Phone}, rec.Code, issuedAt(rec)).Int()
	if err != nil {
		return false, fmt.Errorf("redis compare-and-delete verification: %w", err)
	}
	return n == 1, nil
}

func (s *VerificationStore) IncrementAttempts(ctx context.Context, rec *domain.VerificationRecord) (int, error) {
	n, err := incrementAttemptsScript.Run(ctx, s.client, []string{keyPrefix + rec.Phone}, rec.Code, issuedAt(rec)).Int()
	if err != nil {
		return 0, fmt.Errorf("redis increment verification attempts: %w", err)
	}
	return n, nil
}

func issuedAt(rec *domain.VerificationRecord) string {
	return strconv.FormatInt(rec.IssuedAt.UnixNano(), 10)
}
