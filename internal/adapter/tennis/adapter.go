package tennis

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

const sourceTag = "tennis"

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTennisAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.FeedAdapter {
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

// FetchMatches 拉取网球源并归一化；网络/解析失败返回错误，由编排器隔离
func (a *Adapter) FetchMatches(ctx context.Context) ([]*model.Match, error) {
	feedURL := fmt.Sprintf("%s%s", a.cfg.BaseURL, a.cfg.Path)

	var feed model.TennisFeedResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, feedURL, a.cfg.RetryCount, &feed); err != nil {
		return nil, fmt.Errorf("拉取网球源失败: %w", err)
	}

	matches := make([]*model.Match, 0, len(feed.Data.Matches))
	for _, tm := range feed.Data.Matches {
		m := a.toMatch(tm)
		if !m.IsValid() {
			a.logger.WithField("code", tm.Code).Warn("网球源比赛缺少必填标识字段，跳过")
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// toMatch 网球源原生结构 → 统一比赛模型（比分按已胜盘数计）
func (a *Adapter) toMatch(tm model.TennisMatch) *model.Match {
	return &model.Match{
		ID:        fmt.Sprintf("%s-%s", sourceTag, tm.Code),
		Category:  model.CategoryTennis,
		HomeName:  tm.PlayerOne,
		AwayName:  tm.PlayerTwo,
		HomeScore: tm.SetsOne,
		AwayScore: tm.SetsTwo,
		Status:    a.mapPhase(tm.Phase),
		Progress:  progressOf(tm),
		SourceTag: sourceTag,
	}
}

// mapPhase 网球源阶段词表 → 三态枚举；未识别词表兜底为pending并告警
func (a *Adapter) mapPhase(phase string) model.MatchStatus {
	switch phase {
	case "not_started", "warmup":
		return model.StatusPending
	case "in_progress":
		return model.StatusActive
	case "completed", "retired":
		return model.StatusConcluded
	default:
		a.logger.WithField("phase", phase).Warn("网球源未识别的阶段词，兜底为pending")
		return model.StatusPending
	}
}

// progressOf 按盘与局比分生成进度描述
func progressOf(tm model.TennisMatch) string {
	switch tm.Phase {
	case "not_started", "warmup":
		return ""
	case "completed", "retired":
		return "Finished"
	default:
		if tm.GameScore != "" {
			return fmt.Sprintf("Set %d (%s)", tm.CurrentSet, tm.GameScore)
		}
		return fmt.Sprintf("Set %d", tm.CurrentSet)
	}
}
