package user

import (
	"context"
	"errors"
	"testing"

	"visionhealth/database/repository/memrepo"
	"visionhealth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct{ err error }

func (s stubTokens) GenerateToken(email string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + email, nil
}

func newService() (*DefaultUserService, *memrepo.Users) {
	repo := memrepo.NewUsers(
		models.User{Email: "admin@x.com", Role: models.RoleAdmin},
		models.User{Email: "patient@x.com"},
		models.User{Email: "other@x.com", Role: "staff"},
	)
	return &DefaultUserService{Repo: repo, Tokens: stubTokens{}}, repo
}

func idOf(t *testing.T, repo *memrepo.Users, email string) string {
	t.Helper()
	u, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID.Hex()
}

func TestIsAdmin(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	cases := map[string]bool{
		"admin@x.com":   true,
		"patient@x.com": false, // no role field
		"other@x.com":   false,
		"ghost@x.com":   false,
		"":              false,
	}
	for email, want := range cases {
		got, err := s.IsAdmin(ctx, email)
		require.NoError(t, err, email)
		assert.Equal(t, want, got, email)
	}
}

func TestPromote_RequiresAdminCaller(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()
	target := idOf(t, repo, "patient@x.com")

	for _, caller := range []string{"patient@x.com", "other@x.com", "ghost@x.com", ""} {
		for _, id := range []string{target, "not-an-id", idOf(t, repo, "admin@x.com")} {
			_, err := s.Promote(ctx, caller, id)
			assert.ErrorIs(t, err, ErrNotAdmin, "caller %q target %q", caller, id)
		}
	}

	admin, err := s.IsAdmin(ctx, "patient@x.com")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestPromote_ByAdmin(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()

	res, err := s.Promote(ctx, "admin@x.com", idOf(t, repo, "patient@x.com"))
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, int64(1), res.ModifiedCount)

	admin, err := s.IsAdmin(ctx, "patient@x.com")
	require.NoError(t, err)
	assert.True(t, admin)

	_, err = s.Promote(ctx, "admin@x.com", "64b000000000000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueToken(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	token, err := s.IssueToken(ctx, "patient@x.com")
	require.NoError(t, err)
	assert.Equal(t, "token-for-patient@x.com", token)

	_, err = s.IssueToken(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUnknownIdentity)

	_, err = s.IssueToken(ctx, "")
	assert.ErrorIs(t, err, ErrUnknownIdentity)

	s.Tokens = stubTokens{err: errors.New("sign failed")}
	_, err = s.IssueToken(ctx, "patient@x.com")
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	s, repo := newService()
	ctx := context.Background()

	res, err := s.CreateUser(ctx, models.User{Name: "New", Email: "new@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	created, err := repo.GetByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Empty(t, created.Role, "self-assigned roles are dropped")

	dup, err := s.CreateUser(ctx, models.User{Email: "new@x.com"})
	require.NoError(t, err)
	assert.False(t, dup.Acknowledged)
	assert.NotEmpty(t, dup.Message)

	_, err = s.CreateUser(ctx, models.User{Name: "No Email"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
