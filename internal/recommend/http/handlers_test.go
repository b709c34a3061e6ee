package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"github.com/inspirefinder/likes-backend/internal/recommend/service"
	"github.com/inspirefinder/likes-backend/internal/users"
)

type fakeLikeSource struct{ edges []domain.Edge }

func (f *fakeLikeSource) ListAll(ctx context.Context) ([]domain.Edge, error) {
	return f.edges, nil
}

type fakePopularitySource struct{ ranked []domain.RankedItem }

func (f *fakePopularitySource) MostLiked(ctx context.Context, limit int) ([]domain.RankedItem, error) {
	if len(f.ranked) > limit {
		return f.ranked[:limit], nil
	}
	return f.ranked, nil
}

type fakeUserDirectory struct{ byID map[int64]users.User }

func (f *fakeUserDirectory) GetByIDs(ctx context.Context, ids []int64) ([]users.User, error) {
	var out []users.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	aggCache := cache.New(client)

	likes := &fakeLikeSource{edges: []domain.Edge{
		{User: 1, Item: 1}, {User: 1, Item: 2},
		{User: 2, Item: 2}, {User: 2, Item: 3},
		{User: 3, Item: 1},
	}}
	popularity := &fakePopularitySource{ranked: []domain.RankedItem{
		{Item: 1, Likes: 2}, {Item: 2, Likes: 2}, {Item: 3, Likes: 1},
	}}
	engine := service.NewEngine(likes, popularity, aggCache, zap.NewNop())

	dir := &fakeUserDirectory{byID: map[int64]users.User{
		2: {ID: 2, Email: "u2@example.com"},
		3: {ID: 3, Email: "u3@example.com"},
	}}

	r := gin.New()
	h := New(engine, dir, aggCache, Defaults{RecommendK: 5, StatisticsK: 10, PopularItems: 10})
	h.Register(r.Group("/api/v1"))
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRecommendEndpoint(t *testing.T) {
	r := setupRouter(t)

	t.Run("fixture scenario", func(t *testing.T) {
		w, body := doGET(t, r, "/api/v1/recommendations?user=1&k=2")
		require.Equal(t, http.StatusOK, w.Code)

		var items []int64
		require.NoError(t, json.Unmarshal(body["items"], &items))
		assert.Equal(t, []int64{3}, items)
	})

	t.Run("empty history yields empty list", func(t *testing.T) {
		w, body := doGET(t, r, "/api/v1/recommendations?user=99")
		require.Equal(t, http.StatusOK, w.Code)

		var items []int64
		require.NoError(t, json.Unmarshal(body["items"], &items))
		assert.Empty(t, items)
	})

	t.Run("missing user is a bad request", func(t *testing.T) {
		w, _ := doGET(t, r, "/api/v1/recommendations")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("user from header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
		req.Header.Set("X-User-Id", "1")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestStatisticsEndpoint(t *testing.T) {
	r := setupRouter(t)

	w, body := doGET(t, r, "/api/v1/statistics?user=1")
	require.Equal(t, http.StatusOK, w.Code)

	var similar []users.User
	require.NoError(t, json.Unmarshal(body["similar_users"], &similar))
	require.Len(t, similar, 2)
	assert.Equal(t, "u2@example.com", similar[0].Email)
	assert.Equal(t, "u3@example.com", similar[1].Email)

	var popular []domain.RankedItem
	require.NoError(t, json.Unmarshal(body["popular_items"], &popular))
	require.Len(t, popular, 3)
	assert.Equal(t, domain.ItemID(1), popular[0].Item)
	assert.Equal(t, domain.ItemID(3), popular[2].Item)
}

func TestCacheFlushEndpoint(t *testing.T) {
	r := setupRouter(t)

	// Populate the popularity cache, then flush it.
	w, _ := doGET(t, r, "/api/v1/statistics?user=1")
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/flush", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp flushResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Dropped)
}
