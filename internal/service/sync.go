package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"MatchPulse/internal/interfaces"
	"MatchPulse/internal/model"
	"MatchPulse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxAppendRetries 单条事件追加的最大尝试次数（版本冲突时重算版本重试）
const maxAppendRetries = 3

// SyncService 变更检测与同步编排器：
// 每轮依次处理各源 → 拉取归一化比赛 → 对照快照求差 → 追加事件 → 覆盖快照。
// 事件先于快照落库，保证并发读取方看到的快照版本不高于事件日志
type SyncService struct {
	matchRepo repository.MatchRepository
	eventRepo repository.EventRepository
	adapters  []interfaces.FeedAdapter
	logger    *logrus.Logger
	interval  time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewSyncService 创建同步编排器（适配器列表即全部源，内部无按源分支）
func NewSyncService(
	matchRepo repository.MatchRepository,
	eventRepo repository.EventRepository,
	adapters []interfaces.FeedAdapter,
	interval time.Duration,
	logger *logrus.Logger,
) *SyncService {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &SyncService{
		matchRepo: matchRepo,
		eventRepo: eventRepo,
		adapters:  adapters,
		logger:    logger,
		interval:  interval,
	}
}

// Start 启动定时调度（已在运行则无操作）
func (s *SyncService) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.logger.Infof("同步调度器启动，间隔%s", s.interval)
	go s.loop(stopCh)
}

// Stop 停止定时调度（未运行则无操作）
func (s *SyncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
	s.logger.Info("同步调度器已停止")
}

// Running 调度器是否在运行
func (s *SyncService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// loop 定时循环；仅存储不可用级别的错误会走到中止分支，交由进程级监管重启
func (s *SyncService) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.RunCycle(context.Background()); err != nil {
				s.logger.WithError(err).Error("同步周期因存储故障中止，调度器停止")
				s.markStopped()
				return
			}
		case <-stopCh:
			return
		}
	}
}

// markStopped 循环内部致命退出时复位运行标记（不关闭stopCh，Stop后续调用安全）
func (s *SyncService) markStopped() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// RunCycle 执行一轮同步；定时器与手动触发共用该入口。
// 单个源失败不影响其余源；返回非nil仅当存储不可用
func (s *SyncService) RunCycle(ctx context.Context) error {
	for _, ad := range s.adapters {
		if err := s.syncSource(ctx, ad); err != nil {
			return err
		}
	}
	return nil
}

// syncSource 处理单个源：拉取失败仅告警跳过；单场比赛失败不阻塞后续比赛
func (s *SyncService) syncSource(ctx context.Context, ad interfaces.FeedAdapter) error {
	tag := ad.SourceTag()

	matches, err := ad.FetchMatches(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", tag).Warn("拉取源失败，本轮跳过该源")
		return nil
	}
	if len(matches) == 0 {
		s.logger.WithField("source", tag).Debug("源本轮无比赛数据")
		return nil
	}

	for _, incoming := range matches {
		if err := s.processMatch(ctx, incoming); err != nil {
			// 版本冲突重试耗尽：跳过该比赛，下一轮自然收敛
			if errors.Is(err, repository.ErrVersionConflict) {
				s.logger.WithFields(logrus.Fields{
					"source":   tag,
					"match_id": incoming.ID,
				}).Warn("版本冲突重试耗尽，本轮跳过该比赛")
				continue
			}
			// 其余存储错误视作不可用，终止本轮
			return fmt.Errorf("处理%s源比赛%s失败: %w", tag, incoming.ID, err)
		}
	}
	return nil
}

// processMatch 单场比赛的变更检测入口
func (s *SyncService) processMatch(ctx context.Context, incoming *model.Match) error {
	// 适配器边界已有校验，这里再兜底一次，残缺比赛不得进入写路径
	if !incoming.IsValid() {
		s.logger.WithField("match_id", incoming.ID).Warn("比赛缺少必填标识字段，跳过")
		return nil
	}

	current, err := s.matchRepo.Get(ctx, incoming.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询快照失败: %w", err)
		}
		berr := s.bootstrapMatch(ctx, incoming)
		if !errors.Is(berr, repository.ErrVersionConflict) {
			return berr
		}
		// 首建冲突：并发周期已抢先建档。重读快照改走求差路径，
		// 避免把同一场比赛的建档事件重复追加；快照尚不可见则本轮跳过
		current, err = s.matchRepo.Get(ctx, incoming.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return berr
			}
			return fmt.Errorf("查询快照失败: %w", err)
		}
	}
	return s.applyChanges(ctx, current, incoming)
}

// bootstrapMatch 首次观测到的新比赛：
// match_created 必发；首观即进行中补发 match_activated；首观比分非零补发 score_updated
func (s *SyncService) bootstrapMatch(ctx context.Context, incoming *model.Match) error {
	observed := time.Now()
	var lastVersion int64

	created := &model.MatchEvent{
		MatchID: incoming.ID,
		Kind:    model.EventMatchCreated,
		Detail: detailJSON(model.CreatedDetail{
			HomeName: incoming.HomeName,
			AwayName: incoming.AwayName,
			Category: incoming.Category,
			Status:   incoming.Status,
			Progress: incoming.Progress,
		}),
		SourceTag:  incoming.SourceTag,
		OccurredAt: observed,
	}
	// 建档事件不做原地重试：此处冲突只可能是并发周期抢先建档，
	// 原地重试会造成重复的match_created，由processMatch重读快照处理
	if err := s.eventRepo.Append(ctx, created); err != nil {
		return err
	}
	lastVersion = created.Version

	if incoming.Status == model.StatusActive {
		activated := &model.MatchEvent{
			MatchID: incoming.ID,
			Kind:    model.EventMatchActivated,
			Detail: detailJSON(model.StatusDetail{
				Prev: model.StatusPending,
				New:  model.StatusActive,
			}),
			SourceTag:  incoming.SourceTag,
			OccurredAt: observed,
		}
		if err := s.appendWithRetry(ctx, activated); err != nil {
			return err
		}
		lastVersion = activated.Version
	}

	if incoming.HomeScore != 0 || incoming.AwayScore != 0 {
		scored := &model.MatchEvent{
			MatchID: incoming.ID,
			Kind:    model.EventScoreUpdated,
			Detail: detailJSON(model.ScoreDetail{
				PrevHome: 0,
				PrevAway: 0,
				NewHome:  incoming.HomeScore,
				NewAway:  incoming.AwayScore,
			}),
			SourceTag:  incoming.SourceTag,
			OccurredAt: observed,
		}
		if err := s.appendWithRetry(ctx, scored); err != nil {
			return err
		}
		lastVersion = scored.Version
	}

	snapshot := *incoming
	snapshot.Version = lastVersion
	if err := s.matchRepo.Upsert(ctx, &snapshot); err != nil {
		return fmt.Errorf("写入新比赛快照失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"match_id": incoming.ID,
		"version":  lastVersion,
	}).Info("新比赛入库")
	return nil
}

// applyChanges 已有比赛的逐字段求差。
// 多字段同轮变化时事件固定顺序：状态 → 比分 → 进度；无变化则零写入（幂等空轮）
func (s *SyncService) applyChanges(ctx context.Context, current, incoming *model.Match) error {
	observed := time.Now()

	var pending []*model.MatchEvent

	if current.Status != incoming.Status {
		pending = append(pending, &model.MatchEvent{
			MatchID: incoming.ID,
			Kind:    model.EventStatusChanged,
			Detail: detailJSON(model.StatusDetail{
				Prev: current.Status,
				New:  incoming.Status,
			}),
			SourceTag:  incoming.SourceTag,
			OccurredAt: observed,
		})
	}
	if current.HomeScore != incoming.HomeScore || current.AwayScore != incoming.AwayScore {
		pending = append(pending, &model.MatchEvent{
			MatchID: incoming.ID,
			Kind:    model.EventScoreUpdated,
			Detail: detailJSON(model.ScoreDetail{
				PrevHome: current.HomeScore,
				PrevAway: current.AwayScore,
				NewHome:  incoming.HomeScore,
				NewAway:  incoming.AwayScore,
			}),
			SourceTag:  incoming.SourceTag,
			OccurredAt: observed,
		})
	}
	if current.Progress != incoming.Progress {
		pending = append(pending, &model.MatchEvent{
			MatchID: incoming.ID,
			Kind:    model.EventProgressUpdated,
			Detail: detailJSON(model.ProgressDetail{
				Prev: current.Progress,
				New:  incoming.Progress,
			}),
			SourceTag:  incoming.SourceTag,
			OccurredAt: observed,
		})
	}

	if len(pending) == 0 {
		return nil
	}

	var lastVersion int64
	for _, ev := range pending {
		if err := s.appendWithRetry(ctx, ev); err != nil {
			return err
		}
		lastVersion = ev.Version
	}

	snapshot := *incoming
	snapshot.Version = lastVersion
	if err := s.matchRepo.Upsert(ctx, &snapshot); err != nil {
		return fmt.Errorf("覆盖比赛快照失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"match_id": incoming.ID,
		"events":   len(pending),
		"version":  lastVersion,
	}).Info("比赛变更入库")
	return nil
}

// appendWithRetry 追加事件；版本冲突时重试（Append内部每次重新读取最大版本号）
func (s *SyncService) appendWithRetry(ctx context.Context, ev *model.MatchEvent) error {
	var err error
	for attempt := 1; attempt <= maxAppendRetries; attempt++ {
		err = s.eventRepo.Append(ctx, ev)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		s.logger.WithFields(logrus.Fields{
			"match_id": ev.MatchID,
			"attempt":  attempt,
		}).Warn("事件版本冲突，重算版本后重试")
	}
	return err
}

// detailJSON 序列化事件明细；失败兜底返回空JSON对象
func detailJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
