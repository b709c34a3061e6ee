package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
)

func TestPopularityStore_MostLiked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPopularityStore(db)

	t.Run("returns ranked items", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "likes_count"}).
			AddRow(int64(1), 2).
			AddRow(int64(2), 2).
			AddRow(int64(3), 1)

		mock.ExpectQuery(`SELECT id, likes_count`).
			WithArgs(10).
			WillReturnRows(rows)

		ranked, err := store.MostLiked(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.RankedItem{
			{Item: 1, Likes: 2},
			{Item: 2, Likes: 2},
			{Item: 3, Likes: 1},
		}, ranked)
	})

	t.Run("no liked items yields empty ranking", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, likes_count`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "likes_count"}))

		ranked, err := store.MostLiked(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("query failure propagates", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, likes_count`).
			WithArgs(10).
			WillReturnError(assert.AnError)

		_, err := store.MostLiked(context.Background(), 10)
		assert.ErrorIs(t, err, assert.AnError)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
