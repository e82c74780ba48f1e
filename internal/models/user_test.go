package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	user := User{Email: "jane@example.com"}
	require.NoError(t, user.SetPassword("correct horse battery staple"))

	assert.NotEqual(t, "correct horse battery staple", user.Password)
	assert.True(t, user.CheckPassword("correct horse battery staple"))
	assert.False(t, user.CheckPassword("wrong password"))
}

func TestSanitizeOmitsPassword(t *testing.T) {
	user := User{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      RolePatient,
		IsActive:  true,
	}
	require.NoError(t, user.SetPassword("s3cret-passw0rd"))

	sanitized := user.Sanitize()
	assert.Equal(t, user.Email, sanitized.Email)
	assert.Equal(t, RolePatient, sanitized.Role)
	assert.True(t, sanitized.IsActive)
}
