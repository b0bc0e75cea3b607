package service

import (
	"context"
	"testing"

	"MatchPulse/internal/model"
	"MatchPulse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQueryFixture(t *testing.T) (*QueryService, *syncFixture) {
	t.Helper()
	db := newTestDB(t)
	f := &syncFixture{
		db:        db,
		matchRepo: repository.NewMatchRepository(db),
		eventRepo: repository.NewEventRepository(db),
	}
	return NewQueryService(f.matchRepo, f.eventRepo, testLogger()), f
}

func TestListMatchesFilters(t *testing.T) {
	q, f := newQueryFixture(t)
	ctx := context.Background()

	a := pendingMatch("football-1")
	a.Status = model.StatusActive
	b := pendingMatch("football-2")
	c := pendingMatch("tennis-ATP-300")
	c.Category = model.CategoryTennis
	c.Status = model.StatusActive
	for _, m := range []*model.Match{a, b, c} {
		require.NoError(t, f.matchRepo.Upsert(ctx, m))
	}

	all, err := q.ListMatches(ctx, MatchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	footballs, err := q.ListMatches(ctx, MatchFilter{Category: model.CategoryFootball})
	require.NoError(t, err)
	assert.Len(t, footballs, 2)

	// 类别+状态双过滤
	activeFootball, err := q.ListMatches(ctx, MatchFilter{Category: model.CategoryFootball, Status: model.StatusActive})
	require.NoError(t, err)
	require.Len(t, activeFootball, 1)
	assert.Equal(t, "football-1", activeFootball[0].ID)

	live, err := q.ListLive(ctx)
	require.NoError(t, err)
	assert.Len(t, live, 2)
}

func TestGetMatchNotFoundPassesThrough(t *testing.T) {
	q, _ := newQueryFixture(t)

	_, err := q.GetMatch(context.Background(), "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetHistoryWithAfterVersion(t *testing.T) {
	q, f := newQueryFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		ev := &model.MatchEvent{MatchID: "football-1", Kind: model.EventScoreUpdated, Detail: []byte(`{}`), SourceTag: "football"}
		require.NoError(t, f.eventRepo.Append(ctx, ev))
	}

	all, err := q.GetHistory(ctx, "football-1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	tail, err := q.GetHistory(ctx, "football-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, int64(3), tail[0].Version)
}

func TestStatsAggregation(t *testing.T) {
	q, f := newQueryFixture(t)
	ctx := context.Background()

	a := pendingMatch("football-1")
	a.Status = model.StatusActive
	b := pendingMatch("football-2")
	for _, m := range []*model.Match{a, b} {
		require.NoError(t, f.matchRepo.Upsert(ctx, m))
	}
	for i := 0; i < 3; i++ {
		ev := &model.MatchEvent{MatchID: "football-1", Kind: model.EventScoreUpdated, Detail: []byte(`{}`), SourceTag: "football"}
		require.NoError(t, f.eventRepo.Append(ctx, ev))
	}
	ev := &model.MatchEvent{MatchID: "football-2", Kind: model.EventMatchCreated, Detail: []byte(`{}`), SourceTag: "football"}
	require.NoError(t, f.eventRepo.Append(ctx, ev))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMatches)
	assert.Equal(t, int64(4), stats.TotalEvents) // 按比赛分组计数求和
	assert.Equal(t, int64(1), stats.ByStatus[model.StatusActive])
	assert.Equal(t, int64(1), stats.ByStatus[model.StatusPending])
	assert.Equal(t, int64(0), stats.ByStatus[model.StatusConcluded])
}
