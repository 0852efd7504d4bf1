package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
)

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, bcrypt.MinCost)

	user, err := svc.Create(context.Background(), UserInput{Email: " Jane@Example.COM ", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "jane", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "pw"))

	_, err = svc.Create(context.Background(), UserInput{Email: "jane@example.com", Password: "other"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestCreateUserValidatesInput(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	_, err := svc.Create(context.Background(), UserInput{Email: "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Create(context.Background(), UserInput{Email: "a@example.com", Password: "pw", Role: "root"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	user, err := svc.Create(context.Background(), UserInput{Email: "b@example.com", Password: "pw", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestListUsersByRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)
	ctx := context.Background()
	_, err := svc.Create(ctx, UserInput{Email: "a@example.com", Password: "pw", Role: "ADMIN"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, UserInput{Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)

	admins, err := svc.ListByRole(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "a@example.com", admins[0].Email)

	_, err = svc.ListByRole(ctx, "superuser")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestEnsureAdminCreatesThenPromotes(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, bcrypt.MinCost)
	ctx := context.Background()

	existing, err := svc.Create(ctx, UserInput{Username: "jane", Email: "jane@example.com", Password: "old"})
	require.NoError(t, err)

	promoted, created, err := svc.EnsureAdmin(ctx, UserInput{Email: "JANE@example.com", Password: "new"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, promoted.ID)
	assert.Equal(t, "jane", promoted.Username)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
	assert.NoError(t, auth.ComparePassword(promoted.PasswordHash, "new"))

	fresh, created, err := svc.EnsureAdmin(ctx, UserInput{Email: "root@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleAdmin, fresh.Role)
}

func TestDeleteAndLookupUsers(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)
	ctx := context.Background()
	user, err := svc.Create(ctx, UserInput{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	found, err := svc.GetByEmail(ctx, "A@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Delete(ctx, user.ID)))
	_, err = svc.GetByEmail(ctx, "a@example.com")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUserLookupByUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)
	ctx := context.Background()

	created, err := svc.Create(ctx, UserInput{Username: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	found, err := svc.GetByUsername(ctx, " ada ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByUsername(ctx, "grace")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUsersCreatedAfter(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, bcrypt.MinCost)
	ctx := context.Background()
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	veteran, err := svc.Create(ctx, UserInput{Email: "veteran@example.com", Password: "pw"})
	require.NoError(t, err)
	users.backdate(veteran.ID, cutoff.Add(-time.Minute))
	newcomer, err := svc.Create(ctx, UserInput{Email: "newcomer@example.com", Password: "pw"})
	require.NoError(t, err)

	recent, err := svc.ListCreatedAfter(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newcomer.ID, recent[0].ID)
}

func TestRoleCatalogue(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), bcrypt.MinCost)

	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleUser}, svc.Roles())

	role, err := svc.Role("admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	_, err = svc.Role("SUPERUSER")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
