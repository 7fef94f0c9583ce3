package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFS_ContainsOrderedMigrations(t *testing.T) {
	fsys, err := MigrationFS()
	require.NoError(t, err)

	files, err := fs.Glob(fsys, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_books.sql", "00002_create_reviews.sql"}, files)
}

func TestMigrationFS_ReviewsEnforceOneReviewPerUserPerBook(t *testing.T) {
	fsys, err := MigrationFS()
	require.NoError(t, err)

	body, err := fs.ReadFile(fsys, "00002_create_reviews.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "UNIQUE (book_id, username)")
	assert.Contains(t, sql, "ON DELETE CASCADE")
	assert.True(t, strings.Contains(sql, "CHECK (rating BETWEEN 1 AND 5)"))
}
