package football

import (
	"context"
	"fmt"
	"net/http"

	"MatchPulse/internal/config"
	"MatchPulse/internal/interfaces"
	"MatchPulse/internal/model"
	"MatchPulse/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const sourceTag = "football"

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFootballAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.FeedAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.New(cfg, logger),
		logger:     logger,
	}
}

// SourceTag ========== 实现FeedAdapter接口 ==========
func (a *Adapter) SourceTag() string {
	return sourceTag
}

// FetchMatches 拉取足球源并归一化；网络/解析失败返回错误，由编排器隔离
func (a *Adapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	feedURL := fmt.Sprintf("%s%s", a.cfg.BaseURL, a.cfg.Path)

	var feed model.FootballFeedResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, feedURL, a.cfg.RetryCount, &feed); err != nil {
		return nil, fmt.Errorf("拉取足球源失败: %w", err)
	}

	matches := make([]*model.Match, 0, len(feed.Matches))
	for _, fm := range feed.Matches {
		m := a.toMatch(fm)
		if !m.IsValid() {
			a.logger.WithField("match_id", fm.MatchID).Warn("足球源比赛缺少必填标识字段，跳过")
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// toMatch 足球源原生结构 → 统一比赛模型（纯转换，无副作用）
func (a *Adapter) toMatch(fm model.FootballMatch) *model.Match {
	return &model.Match{
		ID:        fmt.Sprintf("%s-%d", sourceTag, fm.MatchID),
		Category:  model.CategoryFootball,
		HomeName:  fm.HomeTeam,
		AwayName:  fm.AwayTeam,
		HomeScore: fm.HomeGoals,
		AwayScore: fm.AwayGoals,
		Status:    a.mapStatus(fm.Status),
		Progress:  progressOf(fm),
		SourceTag: sourceTag,
	}
}

// mapStatus 足球源状态词表 → 三态枚举；未识别词表兜底为pending并告警
func (a *Adapter) mapStatus(status string) model.MatchStatus {
	switch status {
	case "scheduled", "postponed":
		return model.StatusPending
	case "first_half", "half_time", "second_half", "extra_time":
		return model.StatusActive
	case "full_time", "abandoned":
		return model.StatusConcluded
	default:
		a.logger.WithField("status", status).Warn("足球源未识别的状态词，兜底为pending")
		return model.StatusPending
	}
}

// progressOf 按状态生成进度描述
func progressOf(fm model.FootballMatch) string {
	switch fm.Status {
	case "scheduled", "postponed":
		return ""
	case "half_time":
		return "HT"
	case "full_time":
		return "FT"
	default:
		return fmt.Sprintf("%d min", fm.Minute)
	}
}
