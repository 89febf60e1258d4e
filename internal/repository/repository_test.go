package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/db"
	"github.com/BerylCAtieno/file-query-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	conn, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn))
	// a second run is a no-op
	require.NoError(t, db.RunMigrations(conn))

	return NewRepository(conn)
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	key := "submissions/1/a.pdf"
	sub := &models.Submission{
		ID:          "1",
		Filename:    "a.pdf",
		FileSize:    42,
		ContentType: "application/pdf",
		FileType:    "pdf",
		Query:       "what?",
		Result:      "that",
		S3Key:       &key,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Create(ctx, sub))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sub.Filename, got.Filename)
	assert.Equal(t, sub.Result, got.Result)
	require.NotNil(t, got.S3Key)
	assert.Equal(t, key, *got.S3Key)
	assert.True(t, sub.CreatedAt.Equal(got.CreatedAt))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Create(ctx, &models.Submission{
			ID:          id,
			Filename:    id + ".txt",
			ContentType: "text/plain",
			FileType:    "txt",
			Query:       "q",
			Result:      "r",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	subs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "new", subs[0].ID)
	assert.Equal(t, "mid", subs[1].ID)
	assert.Nil(t, subs[0].S3Key)
}
