package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"MatchPulse/internal/model"
	"MatchPulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Match{}, &model.MatchEvent{}))

	l := logrus.New()
	l.SetOutput(io.Discard)

	r := gin.New()
	h := NewMatchHandler(db, l)
	r.GET("/api/matches", h.ListMatches)
	r.GET("/api/matches/live", h.ListLive)
	r.GET("/api/matches/:id", h.GetMatchDetail)
	r.GET("/api/matches/:id/events", h.GetMatchHistory)
	r.GET("/api/stats", h.GetStats)
	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, path string) (int, Envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func seedMatch(t *testing.T, db *gorm.DB, id string, status model.MatchStatus) {
	t.Helper()
	m := &model.Match{
		ID:        id,
		Category:  model.CategoryFootball,
		HomeName:  "Crimson United",
		AwayName:  "Harbor City",
		Status:    status,
		SourceTag: "football",
		Version:   1,
	}
	require.NoError(t, repository.NewMatchRepository(db).Upsert(context.Background(), m))
}

func TestGetMatchDetailNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	code, env := doRequest(t, r, "/api/matches/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.NotZero(t, env.Timestamp)
}

func TestListMatchesEnvelope(t *testing.T) {
	r, db := newTestRouter(t)
	seedMatch(t, db, "football-1", model.StatusActive)
	seedMatch(t, db, "football-2", model.StatusPending)

	code, env := doRequest(t, r, "/api/matches")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)

	items, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestListLiveOnlyActive(t *testing.T) {
	r, db := newTestRouter(t)
	seedMatch(t, db, "football-1", model.StatusActive)
	seedMatch(t, db, "football-2", model.StatusConcluded)

	code, env := doRequest(t, r, "/api/matches/live")
	assert.Equal(t, http.StatusOK, code)

	items, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestGetMatchHistory(t *testing.T) {
	r, db := newTestRouter(t)
	seedMatch(t, db, "football-1", model.StatusActive)
	eventRepo := repository.NewEventRepository(db)
	for i := 0; i < 3; i++ {
		ev := &model.MatchEvent{MatchID: "football-1", Kind: model.EventScoreUpdated, Detail: []byte(`{}`), SourceTag: "football"}
		require.NoError(t, eventRepo.Append(context.Background(), ev))
	}

	code, env := doRequest(t, r, "/api/matches/football-1/events?after_version=1")
	assert.Equal(t, http.StatusOK, code)

	items, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestGetStats(t *testing.T) {
	r, db := newTestRouter(t)
	seedMatch(t, db, "football-1", model.StatusActive)

	code, env := doRequest(t, r, "/api/stats")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["total_matches"])
}

func TestListMatchesEmptyRendersArray(t *testing.T) {
	r, _ := newTestRouter(t)

	// 空库时data应为[]而非null
	code, env := doRequest(t, r, "/api/matches")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	items, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)

	code, env = doRequest(t, r, "/api/matches/live")
	assert.Equal(t, http.StatusOK, code)
	items, ok = env.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)

	code, env = doRequest(t, r, "/api/matches/football-1/events")
	assert.Equal(t, http.StatusOK, code)
	items, ok = env.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestGetMatchHistoryRejectsBadAfterVersion(t *testing.T) {
	r, db := newTestRouter(t)
	seedMatch(t, db, "football-1", model.StatusActive)

	for _, q := range []string{"abc", "-1", "1.5"} {
		code, env := doRequest(t, r, "/api/matches/football-1/events?after_version="+q)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	}
}
