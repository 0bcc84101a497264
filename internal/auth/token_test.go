package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportiq/helpdesk/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", 60)

	token, expiresAt, err := manager.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestTokenManager_AgentRoleSurvivesRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", 60)

	token, _, err := manager.GenerateToken("agent-1", domain.RoleAgent)
	require.NoError(t, err)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, claims.Role)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("secret", 60)

	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}
