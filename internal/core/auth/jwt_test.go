package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog/internal/domain"
)

var ann = domain.AuthContext{UserID: "u1", Email: "ann@example.com", Role: domain.RoleAdmin}

func TestJWTer_RoundTrip(t *testing.T) {
	j := NewJWTer("secret", "blog", time.Hour)

	tok, err := j.Issue(ann)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, ann, c.AuthContext())
	assert.Equal(t, "u1", c.Subject)
}

func TestJWTer_Expired(t *testing.T) {
	j := NewJWTer("secret", "blog", time.Hour)
	j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := j.Issue(ann)
	require.NoError(t, err)

	j.now = nil
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTer_LeewayAcceptsJustExpired(t *testing.T) {
	j := NewJWTer("secret", "blog", time.Minute)
	j.now = func() time.Time { return time.Now().Add(-90 * time.Second) }
	tok, err := j.Issue(ann)
	require.NoError(t, err)

	j.now = nil
	_, err = j.Parse(tok)
	assert.NoError(t, err)
}

func TestJWTer_Invalid(t *testing.T) {
	j := NewJWTer("secret", "blog", time.Hour)
	tok, err := j.Issue(ann)
	require.NoError(t, err)

	other := NewJWTer("other", "blog", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongIss := NewJWTer("secret", "someone-else", time.Hour)
	_, err = wrongIss.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = j.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = j.Parse(none)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := FromGin(c)
	assert.False(t, ok)

	SetGin(c, ann)
	got, ok := FromGin(c)
	assert.True(t, ok)
	assert.Equal(t, ann, got)
}
