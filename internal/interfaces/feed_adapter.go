package interfaces

import (
	"context"

	"MatchPulse/internal/model"
)

// FeedAdapter 所有上游源适配器必须实现的核心接口。
// 编排器只依赖该抽象，内部不允许出现任何按源分支的逻辑
type FeedAdapter interface {
	// SourceTag 源标识（football/basketball/tennis）
	SourceTag() string
	// FetchMatches 拉取并归一化为统一比赛模型（不含版本信息）
	FetchMatches(ctx context.Context) ([]*model.Match, error)
}
