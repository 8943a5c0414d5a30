package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/testutil"
)

func setupMemberRepo(t *testing.T) (*MemberRepository, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := NewMemberRepository(db)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return repo, db, cleanup
}

func TestMemberRepository_FindAll_ExcludesSoftDeleted(t *testing.T) {
	repo, db, cleanup := setupMemberRepo(t)
	defer cleanup()

	kept := testutil.TestMember(t, db, testutil.WithName("Ivan", "Petrov"))
	dropped := testutil.TestMember(t, db, testutil.WithName("Georgi", "Iliev"))

	rows, err := repo.SoftDelete(dropped.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	members, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, kept.ID, members[0].ID)

	all, err := repo.FindAllIncludingDeleted()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemberRepository_UpdateFields_PartialUpdate(t *testing.T) {
	repo, db, cleanup := setupMemberRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db, testutil.WithName("Ivan", "Petrov"))

	rows, err := repo.UpdateFields(member.ID, map[string]interface{}{"first_name": "Dimitar"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	found, err := repo.FindByID(member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dimitar", found.FirstName)
	assert.Equal(t, "Petrov", found.LastName)
}

func TestMemberRepository_UpdateFields_MissingRow(t *testing.T) {
	repo, _, cleanup := setupMemberRepo(t)
	defer cleanup()

	rows, err := repo.UpdateFields(9999, map[string]interface{}{"first_name": "Nobody"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestMemberRepository_HardDelete_RemovesRow(t *testing.T) {
	repo, db, cleanup := setupMemberRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)

	rows, err := repo.HardDelete(member.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	all, err := repo.FindAllIncludingDeleted()
	require.NoError(t, err)
	assert.Empty(t, all)
}
