package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret", time.Hour)

	userID := uuid.New()
	token, err := svc.IssueToken(userID, RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
	require.Equal(t, RoleEditor, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(testLogger(t), "secret-a", time.Hour)
	verifier := NewAuthService(testLogger(t), "secret-b", time.Hour)

	token, err := issuer.IssueToken(uuid.New(), RoleAdministrator)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret", -time.Minute)

	token, err := svc.IssueToken(uuid.New(), RoleEditor)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestIssueTokenRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(testLogger(t), "test-secret", time.Hour)

	_, err := svc.IssueToken(uuid.New(), "superuser")
	require.Error(t, err)
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     string
		required string
		want     bool
	}{
		{RoleAdministrator, RoleEditor, true},
		{RoleEditor, RoleEditor, true},
		{RoleAuthor, RoleEditor, false},
		{RoleContributor, RoleEditor, false},
		{RoleSubscriber, RoleEditor, false},
		{"", RoleEditor, false},
		{"superuser", RoleEditor, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RoleAtLeast(tc.role, tc.required), "%s vs %s", tc.role, tc.required)
	}
}
