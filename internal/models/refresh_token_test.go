package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenRevocation(t *testing.T) {
	now := time.Now()

	token := RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, token.Usable(now))

	token.Revoke(now)
	assert.True(t, token.IsRevoked)
	assert.False(t, token.Usable(now))
}

func TestRefreshTokenExpiry(t *testing.T) {
	now := time.Now()

	expired := RefreshToken{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Usable(now))

	live := RefreshToken{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, live.Usable(now))
}
