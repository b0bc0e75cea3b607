package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventKind 变更事件类型枚举
type EventKind string

const (
	EventMatchCreated    EventKind = "match_created"    // 首次观测到新比赛
	EventMatchActivated  EventKind = "match_activated"  // 首次观测即为进行中
	EventScoreUpdated    EventKind = "score_updated"    // 比分变化
	EventStatusChanged   EventKind = "status_changed"   // 状态变化
	EventProgressUpdated EventKind = "progress_updated" // 进度描述变化
)

// MatchEvent 比赛变更事件（追加写入、不可变，事件日志是事实源）
// (match_id, version) 唯一索引保证同一比赛的版本号严格递增且无重复：
// 并发写入方争抢同一版本号时，后写入方触发唯一约束冲突并重试
type MatchEvent struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	EventUUID  string         `gorm:"column:event_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一事件ID" json:"event_uuid"`
	MatchID    string         `gorm:"column:match_id;type:varchar(64);not null;uniqueIndex:uk_match_version;index;comment:关联比赛ID" json:"match_id"`
	Kind       EventKind      `gorm:"column:kind;type:varchar(32);not null;comment:事件类型" json:"kind"`
	Version    int64          `gorm:"column:version;type:bigint;not null;uniqueIndex:uk_match_version;comment:比赛内严格递增版本号（从1开始无空洞）" json:"version"`
	Detail     datatypes.JSON `gorm:"column:detail;type:jsonb;not null;comment:变更明细（前值/新值）" json:"detail"`
	SourceTag  string         `gorm:"column:source_tag;type:varchar(32);not null;comment:产生事件的适配器标识" json:"source_tag"`
	OccurredAt time.Time      `gorm:"column:occurred_at;type:timestamp;not null;comment:上游观测到变更的时间" json:"occurred_at"`
	RecordedAt time.Time      `gorm:"column:recorded_at;type:timestamp;not null;comment:落库时间" json:"recorded_at"`
}

// TableName 指定事件日志表名
func (MatchEvent) TableName() string { return "match_events" }

// ========== 各事件类型的 Detail 载荷结构 ==========

// CreatedDetail match_created 事件明细（初始状态摘要）
type CreatedDetail struct {
	HomeName string      `json:"home_name"`
	AwayName string      `json:"away_name"`
	Category Category    `json:"category"`
	Status   MatchStatus `json:"status"`
	Progress string      `json:"progress,omitempty"`
}

// ScoreDetail score_updated 事件明细（前后比分对）
type ScoreDetail struct {
	PrevHome int `json:"prev_home"`
	PrevAway int `json:"prev_away"`
	NewHome  int `json:"new_home"`
	NewAway  int `json:"new_away"`
}

// StatusDetail status_changed 事件明细
type StatusDetail struct {
	Prev MatchStatus `json:"prev"`
	New  MatchStatus `json:"new"`
}

// ProgressDetail progress_updated 事件明细
type ProgressDetail struct {
	Prev string `json:"prev"`
	New  string `json:"new"`
}
