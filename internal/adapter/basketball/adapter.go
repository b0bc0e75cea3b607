package basketball

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

const sourceTag = "basketball"

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewBasketballAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.FeedAdapter {
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

// FetchMatches 拉取篮球源并归一化；网络/解析失败返回错误，由编排器隔离
func (a *Adapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	feedURL := fmt.Sprintf("%s%s", a.cfg.BaseURL, a.cfg.Path)

	var feed model.BasketballFeedResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, feedURL, a.cfg.RetryCount, &feed); err != nil {
		return nil, fmt.Errorf("拉取篮球源失败: %w", err)
	}

	matches := make([]*model.Match, 0, len(feed.Games))
	for _, g := range feed.Games {
		m := a.toMatch(g)
		if !m.IsValid() {
			a.logger.WithField("game_id", g.GameID).Warn("篮球源比赛缺少必填标识字段，跳过")
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// toMatch 篮球源原生结构 → 统一比赛模型
func (a *Adapter) toMatch(g model.BasketballGame) *model.Match {
	return &model.Match{
		ID:        fmt.Sprintf("%s-%s", sourceTag, g.GameID),
		Category:  model.CategoryBasketball,
		HomeName:  g.Teams.Home.Name,
		AwayName:  g.Teams.Away.Name,
		HomeScore: g.Teams.Home.Points,
		AwayScore: g.Teams.Away.Points,
		Status:    a.mapState(g.State),
		Progress:  progressOf(g),
		SourceTag: sourceTag,
	}
}

// mapState 篮球源状态词表 → 三态枚举；未识别词表兜底为pending并告警
func (a *Adapter) mapState(state string) model.MatchStatus {
	switch state {
	case "SCHEDULED", "POSTPONED":
		return model.StatusPending
	case "LIVE", "HALFTIME":
		return model.StatusActive
	case "FINAL":
		return model.StatusConcluded
	default:
		a.logger.WithField("state", state).Warn("篮球源未识别的状态词，兜底为pending")
		return model.StatusPending
	}
}

// progressOf 按节次与计时生成进度描述
func progressOf(g model.BasketballGame) string {
	switch g.State {
	case "SCHEDULED", "POSTPONED":
		return ""
	case "HALFTIME":
		return "Halftime"
	case "FINAL":
		return "Final"
	default:
		if g.Clock != "" {
			return fmt.Sprintf("Period %d (%s)", g.Period, g.Clock)
		}
		return fmt.Sprintf("Period %d", g.Period)
	}
}
