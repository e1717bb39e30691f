package database_test

import (
	"testing"

	"github.com/mroshb/raffle_api/internal/database"
	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin_CreatesOnce(t *testing.T) {
	db := testutil.NewTestDB(t)

	created, err := database.EnsureAdmin(db, "admin", "admin")
	require.NoError(t, err)
	require.True(t, created)

	created, err = database.EnsureAdmin(db, "admin", "admin")
	require.NoError(t, err)
	require.False(t, created)

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	require.NotEqual(t, "admin", admins[0].Password)
	require.True(t, security.CheckPassword(admins[0].Password, "admin"))
}

func TestEnsureAdmin_SkipsWhenAnyAdminExists(t *testing.T) {
	db := testutil.NewTestDB(t)

	hash, err := security.HashPassword("pw")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "root", Password: hash, Role: models.RoleAdmin, IsActive: true}).Error)

	created, err := database.EnsureAdmin(db, "admin", "admin")
	require.NoError(t, err)
	require.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestEnsureAdmin_SameUsernameOtherRole(t *testing.T) {
	db := testutil.NewTestDB(t)

	hash, err := security.HashPassword("pw")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "admin", Password: hash, Role: models.RolePlayer, IsActive: true}).Error)

	created, err := database.EnsureAdmin(db, "admin", "admin")
	require.NoError(t, err)
	require.True(t, created)
}
