package service

import (
	"context"

	"MatchPulse/internal/model"
	"MatchPulse/internal/repository"

	"github.com/sirupsen/logrus"
)

// QueryService 面向读API的查询门面（两个仓储之上的薄投影，不做写入）
type QueryService struct {
	matchRepo repository.MatchRepository
	eventRepo repository.EventRepository
	logger    *logrus.Logger
}

// NewQueryService 创建 QueryService
func NewQueryService(matchRepo repository.MatchRepository, eventRepo repository.EventRepository, logger *logrus.Logger) *QueryService {
	return &QueryService{
		matchRepo: matchRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// MatchFilter 列表筛选条件（均可为空）
type MatchFilter struct {
	Category model.Category    // 运动类别
	Status   model.MatchStatus // 生命周期状态
}

// StatsResult 聚合统计返回
type StatsResult struct {
	TotalMatches int64                       `json:"total_matches"` // 快照总数
	ByStatus     map[model.MatchStatus]int64 `json:"by_status"`     // 各状态比赛数
	TotalEvents  int64                       `json:"total_events"`  // 事件总数（按比赛分组计数求和）
}

// ListMatches 按条件返回快照列表
func (s *QueryService) ListMatches(ctx context.Context, filter MatchFilter) ([]*model.Match, error) {
	switch {
	case filter.Category != "":
		matches, err := s.matchRepo.ListByCategory(ctx, filter.Category)
		if err != nil {
			return nil, err
		}
		if filter.Status == "" {
			return matches, nil
		}
		// 类别+状态双过滤：类别走索引，状态在内存二次过滤
		filtered := make([]*model.Match, 0, len(matches))
		for _, m := range matches {
			if m.Status == filter.Status {
				filtered = append(filtered, m)
			}
		}
		return filtered, nil
	case filter.Status != "":
		return s.matchRepo.ListByStatus(ctx, filter.Status)
	default:
		return s.matchRepo.ListAll(ctx)
	}
}

// ListLive 进行中比赛列表
func (s *QueryService) ListLive(ctx context.Context) ([]*model.Match, error) {
	return s.matchRepo.ListByStatus(ctx, model.StatusActive)
}

// GetMatch 按ID查询单场快照；不存在时透传 gorm.ErrRecordNotFound 由API层转404
func (s *QueryService) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	return s.matchRepo.Get(ctx, id)
}

// GetHistory 按ID返回事件历史（版本升序）；afterVersion>0 时只返回其后的事件
func (s *QueryService) GetHistory(ctx context.Context, matchID string, afterVersion int64) ([]*model.MatchEvent, error) {
	if afterVersion > 0 {
		return s.eventRepo.ListByMatchSince(ctx, matchID, afterVersion)
	}
	return s.eventRepo.ListByMatch(ctx, matchID)
}

// Stats 聚合统计。事件总数为按比赛分组计数后求和的按需聚合（O(比赛数)，非热路径）
func (s *QueryService) Stats(ctx context.Context) (*StatsResult, error) {
	total, err := s.matchRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.matchRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	// 三个状态都给出计数，没出现过的补0
	for _, st := range []model.MatchStatus{model.StatusPending, model.StatusActive, model.StatusConcluded} {
		if _, ok := byStatus[st]; !ok {
			byStatus[st] = 0
		}
	}

	eventCounts, err := s.eventRepo.CountGroupedByMatch(ctx)
	if err != nil {
		return nil, err
	}
	var totalEvents int64
	for _, n := range eventCounts {
		totalEvents += n
	}

	return &StatsResult{
		TotalMatches: total,
		ByStatus:     byStatus,
		TotalEvents:  totalEvents,
	}, nil
}
