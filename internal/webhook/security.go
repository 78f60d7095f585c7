package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

var (
	errBadSignature = errors.New("signature verification failed")
	errBadToken     = errors.New("invalid token")
)

type securityValidator struct {
	secret      []byte
	rateLimiter *rateLimiter
}

func newSecurityValidator(secret string, perMin int) *securityValidator {
	return &securityValidator{
		secret:      []byte(secret),
		rateLimiter: newRateLimiter(perMin),
	}
}

// validateGitHubSignature checks an "sha256=<hex>" X-Hub-Signature-256 header.
func (v *securityValidator) validateGitHubSignature(payload []byte, signature string) error {
	hexSig, ok := strings.CutPrefix(signature, "sha256=")
	if !ok {
		return fmt.Errorf("%w: missing sha256= prefix", errBadSignature)
	}
	want, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadSignature, err)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	if !hmac.Equal(want, mac.Sum(nil)) {
		return errBadSignature
	}
	return nil
}

func (v *securityValidator) validateGitLabToken(token string) error {
	if !hmac.Equal([]byte(token), v.secret) {
		return errBadToken
	}
	return nil
}

func (v *securityValidator) allow(provider string) bool {
	return v.rateLimiter.allow(provider)
}

// rateLimiter keeps one token bucket per key; idle keys expire.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(perMin int) *rateLimiter {
	burst := perMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](64, nil, 5*time.Minute),
		rate:     rate.Limit(float64(perMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
