package security

import (
	"testing"
	"time"

	"github.com/clique77/job-portal-sub001/internal/config"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, ttl time.Duration) *JWTProvider {
	t.Helper()
	provider, err := NewJWTProvider(config.AuthConfig{
		JWTSecret: "test-secret-0123456789",
		TokenTTL:  ttl,
		Issuer:    "job-portal",
	})
	require.NoError(t, err)
	return provider
}

func Test_JWTProvider_WhenTokenIssued_ShouldParseBackToActor(t *testing.T) {
	assert := assert.New(t)
	provider := newProvider(t, time.Hour)
	user := models.NewUser("dev@example.com", "Dev", models.RoleEmployer, "hash")

	token, expiresAt, err := provider.Generate(user)
	require.NoError(t, err)
	assert.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)

	actor, err := provider.Parse(token)
	require.NoError(t, err)
	assert.Equal(user.ID, actor.ID)
	assert.Equal(models.RoleEmployer, actor.Role)
}

func Test_JWTProvider_WhenSignedWithOtherSecret_ShouldReject(t *testing.T) {
	provider := newProvider(t, time.Hour)
	other, err := NewJWTProvider(config.AuthConfig{JWTSecret: "another-secret-0123456789", TokenTTL: time.Hour, Issuer: "job-portal"})
	require.NoError(t, err)

	token, _, err := other.Generate(models.NewUser("dev@example.com", "Dev", models.RoleJobSeeker, "hash"))
	require.NoError(t, err)

	_, err = provider.Parse(token)
	assert.Error(t, err)
}

func Test_JWTProvider_WhenExpired_ShouldReject(t *testing.T) {
	provider := newProvider(t, time.Nanosecond)

	token, _, err := provider.Generate(models.NewUser("dev@example.com", "Dev", models.RoleJobSeeker, "hash"))
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = provider.Parse(token)
	assert.Error(t, err)
}

func Test_Password_ShouldMatchOnlyOriginal(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, ComparePassword(hash, "s3cret-pass"))
	assert.False(t, ComparePassword(hash, "wrong-pass"))
}
