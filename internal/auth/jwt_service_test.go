package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.IssueSession(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.VerifySession(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(SessionExpiry), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_VerifyRejectsTampering(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.IssueSession(42)
	assert.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		_, err := other.VerifySession(token)
		assert.Error(t, err)
	})

	t.Run("mangled payload", func(t *testing.T) {
		_, err := service.VerifySession(token + "x")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := service.VerifySession("")
		assert.Error(t, err)
	})
}

func TestJWTService_TokenIDsAreUnique(t *testing.T) {
	service := NewJWTService("test-secret")

	first, err := service.IssueSession(1)
	assert.NoError(t, err)
	second, err := service.IssueSession(1)
	assert.NoError(t, err)

	firstClaims, _ := service.VerifySession(first)
	secondClaims, _ := service.VerifySession(second)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestSessionCookies(t *testing.T) {
	t.Run("session cookie attributes", func(t *testing.T) {
		cookie := NewSessionCookie("token-value")
		assert.Equal(t, CookieName, cookie.Name)
		assert.Equal(t, "token-value", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, int(SessionExpiry.Seconds()), cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	})

	t.Run("cleared cookie expires immediately", func(t *testing.T) {
		cookie := ClearedSessionCookie()
		assert.Equal(t, CookieName, cookie.Name)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
	})
}
