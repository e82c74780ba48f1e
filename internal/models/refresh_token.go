package models

import (
	"time"
)

// RefreshToken is a stored refresh token. Tokens are revoked on
// rotation and logout rather than deleted, so reuse of an old token
// stays detectable.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Revoke marks the token unusable from now on.
func (rt *RefreshToken) Revoke(now time.Time) {
	rt.IsRevoked = true
	rt.ExpiresAt = now
}

// Usable reports whether the token can still mint access tokens.
func (rt *RefreshToken) Usable(now time.Time) bool {
	return !rt.IsRevoked && rt.ExpiresAt.After(now)
}
