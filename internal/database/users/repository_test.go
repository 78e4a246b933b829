package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/domain"
	"github.com/evops/catalog/internal/entities"
	apperrors "github.com/evops/catalog/internal/errors"
	"github.com/evops/catalog/internal/logger"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver: config.DatabaseDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "users.db"),
	}, logger.Nop())
	require.NoError(t, err)

	return NewRepository(db, logger.Nop()), db, func() { db.Close() }
}

func newForm(t *testing.T, login string) domain.NewUserForm {
	t.Helper()
	l, err := domain.NewUserLogin(login)
	require.NoError(t, err)
	name, err := domain.NewUserDisplayName("Display " + login)
	require.NoError(t, err)
	hash, err := domain.NewUserPasswordHash("$2a$12$hash-of-" + login)
	require.NoError(t, err)
	return domain.NewUserForm{Login: l, DisplayName: name, PasswordHash: hash}
}

func fingerprint(t *testing.T, b byte) domain.RefreshTokenFingerprint {
	t.Helper()
	raw := make([]byte, domain.RefreshTokenFingerprintLen)
	for i := range raw {
		raw[i] = b
	}
	f, err := domain.NewRefreshTokenFingerprint(raw)
	require.NoError(t, err)
	return f
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.Create(ctx, newForm(t, "alice"))
	require.NoError(t, err)

	user, err := repo.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Login.String())
	assert.Equal(t, "Display alice", user.DisplayName.String())
}

func TestRepository_Find_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	id := domain.NewUserID()
	_, err := repo.Find(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "no user with id "+id.String(), err.Error())
}

func TestRepository_Create_DuplicateLoginIgnoresCase(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Create(ctx, newForm(t, "Alice"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newForm(t, "ALICE"))
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyExists))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRepository_List_OrderedByID(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	var ids []domain.UserID
	for _, login := range []string{"carol", "alice", "bob"} {
		id, err := repo.Create(ctx, newForm(t, login))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, u := range users {
		assert.Equal(t, ids[i], u.ID)
	}
}

func TestRepository_GetPasswordHash(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	form := newForm(t, "alice")
	id, err := repo.Create(ctx, form)
	require.NoError(t, err)

	gotID, hash, err := repo.GetPasswordHash(ctx, form.Login)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, form.PasswordHash, hash)

	unknown, _ := domain.NewUserLogin("mallory")
	_, _, err = repo.GetPasswordHash(ctx, unknown)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	assert.Equal(t, "wrong credentials", err.Error())
}

func TestRepository_RefreshToken(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.Create(ctx, newForm(t, "alice"))
	require.NoError(t, err)

	first, second := fingerprint(t, 1), fingerprint(t, 2)

	err = repo.RefreshTokenFingerprintExists(ctx, first)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	require.NoError(t, repo.InsertOrReplaceRefreshToken(ctx, id, first))
	assert.NoError(t, repo.RefreshTokenFingerprintExists(ctx, first))

	require.NoError(t, repo.InsertOrReplaceRefreshToken(ctx, id, second))
	assert.True(t, apperrors.Is(repo.RefreshTokenFingerprintExists(ctx, first), apperrors.ErrUnauthorized))
	assert.NoError(t, repo.RefreshTokenFingerprintExists(ctx, second))

	owner, err := repo.RefreshTokenOwner(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, id, owner)
}

func TestRepository_RefreshToken_UnknownUser(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.InsertOrReplaceRefreshToken(context.Background(), domain.NewUserID(), fingerprint(t, 1))
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestRepository_SignUp(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	fp := fingerprint(t, 9)
	id, err := repo.SignUp(ctx, newForm(t, "alice"), fp)
	require.NoError(t, err)

	owner, err := repo.RefreshTokenOwner(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, id, owner)
}

func TestRepository_SignUp_IsAtomic(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	fp := fingerprint(t, 9)
	_, err := repo.SignUp(ctx, newForm(t, "alice"), fp)
	require.NoError(t, err)

	// The user insert succeeds but the reused fingerprint does not, so bob
	// must not exist afterwards.
	_, err = repo.SignUp(ctx, newForm(t, "bob"), fp)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyExists))

	var count int64
	require.NoError(t, db.DB.Model(&entities.User{}).Where("login = ?", "bob").Count(&count).Error)
	assert.Zero(t, count)
}
