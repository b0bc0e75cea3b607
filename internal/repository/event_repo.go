package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MatchPulse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict 并发写入方已抢占同一版本号，调用方需重新计算版本后重试
var ErrVersionConflict = errors.New("事件版本号冲突")

// EventRepository 事件日志仓储接口（追加是唯一的写操作，无更新/删除）
type EventRepository interface {
	// Append 计算 version = 当前最大版本+1 并落库；(match_id, version) 唯一约束
	// 被并发写入方抢占时返回 ErrVersionConflict。成功后 ev.Version 即分配到的版本号
	Append(ctx context.Context, ev *model.MatchEvent) error
	// ListByMatch 按版本升序返回某比赛的全部事件
	ListByMatch(ctx context.Context, matchID string) ([]*model.MatchEvent, error)
	// ListByMatchSince 返回版本号大于 afterVersion 的事件（版本升序）
	ListByMatchSince(ctx context.Context, matchID string, afterVersion int64) ([]*model.MatchEvent, error)
	// CountByMatch 某比赛的事件总数
	CountByMatch(ctx context.Context, matchID string) (int64, error)
	// CountGroupedByMatch 按比赛分组的事件计数（供统计接口汇总用）
	CountGroupedByMatch(ctx context.Context) (map[string]int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建 EventRepository 实例
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Append 版本号每次落库前重新读取（绝不跨次缓存），以容忍并发写入方
func (r *eventRepository) Append(ctx context.Context, ev *model.MatchEvent) error {
	if ev.MatchID == "" {
		return fmt.Errorf("事件缺少match_id")
	}
	if ev.EventUUID == "" {
		ev.EventUUID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	ev.RecordedAt = time.Now()

	// 1. 读取当前最大版本号（无事件时为0）
	var maxVersion int64
	if err := r.db.WithContext(ctx).Model(&model.MatchEvent{}).
		Where("match_id = ?", ev.MatchID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error; err != nil {
		return fmt.Errorf("读取最大版本号失败: %w", err)
	}
	ev.Version = maxVersion + 1

	// 2. 落库；唯一约束冲突说明版本号已被抢占
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("追加事件失败: %w", err)
	}
	return nil
}

// isDuplicateKey 判定唯一约束冲突（gorm翻译错误 + 驱动原始报错兜底）
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "uk_match_version") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key")
}

func (r *eventRepository) ListByMatch(ctx context.Context, matchID string) ([]*model.MatchEvent, error) {
	// 空结果返回空切片而非nil，保证接口层序列化为[]
	events := make([]*model.MatchEvent, 0)
	if err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("version ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListByMatchSince(ctx context.Context, matchID string, afterVersion int64) ([]*model.MatchEvent, error) {
	events := make([]*model.MatchEvent, 0)
	if err := r.db.WithContext(ctx).
		Where("match_id = ? AND version > ?", matchID, afterVersion).
		Order("version ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) CountByMatch(ctx context.Context, matchID string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.MatchEvent{}).
		Where("match_id = ?", matchID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountGroupedByMatch 一条GROUP BY查询返回各比赛的事件数
func (r *eventRepository) CountGroupedByMatch(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		MatchID string
		Total   int64
	}
	if err := r.db.WithContext(ctx).Model(&model.MatchEvent{}).
		Select("match_id, COUNT(*) AS total").
		Group("match_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.MatchID] = row.Total
	}
	return counts, nil
}
