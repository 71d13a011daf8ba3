package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps one-time passcodes in redis, bound by a TTL. The passcode
// disappears on expiry or first successful consume, whichever comes first.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Consume(ctx context.Context, email, code string) (bool, error)
}

type otpStore struct {
	client redis.UniversalClient
}

func NewOTPStore(client redis.UniversalClient) OTPStore {
	return &otpStore{client: client}
}

func otpKey(email string) string { return "otp:" + email }

func (s *otpStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("persist otp: %w", err)
	}
	return nil
}

func (s *otpStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("load otp: %w", err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil && err != redis.Nil {
		return false, fmt.Errorf("delete otp: %w", err)
	}
	return true, nil
}
