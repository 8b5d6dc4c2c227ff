package authors

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/hemlockbooks/hemlock/pkg/errcodes"
	"github.com/hemlockbooks/hemlock/pkg/migrations"
	"github.com/hemlockbooks/hemlock/pkg/models"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestCreateAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{FirstName: "Ursula", LastName: "Le Guin"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	assert.NotZero(t, author.ID)
	assert.False(t, author.CreatedAt.IsZero())

	found, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Le Guin", found.LastName)
}

func TestCreateAuthor_EmptyFirstNameIsStoredNotNulled(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{LastName: "Homer"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	found, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "", found.FirstName)
	assert.Equal(t, "Homer", found.LastName)
}

func TestRetrieveAuthor_Missing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveAuthor(context.Background(), 42)
	require.Error(t, err)

	ec := &errcodes.Error{}
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, 404, ec.HTTPCode)
}

func TestListAuthors_OrdersByName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	for _, a := range []*models.Author{
		{FirstName: "Tamsyn", LastName: "Muir"},
		{FirstName: "Ursula", LastName: "Le Guin"},
		{FirstName: "Ann", LastName: "Leckie"},
	} {
		require.NoError(t, svc.CreateAuthor(ctx, a))
	}

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Le Guin", authors[0].LastName)
	assert.Equal(t, "Leckie", authors[1].LastName)
	assert.Equal(t, "Muir", authors[2].LastName)
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{LastName: "Jemisin"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	exists, err := svc.Exists(ctx, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, author.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteAuthor_SecondDeleteIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{LastName: "Wells"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))

	err := svc.DeleteAuthor(ctx, author.ID)
	require.Error(t, err)

	ec := &errcodes.Error{}
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, 404, ec.HTTPCode)
}
