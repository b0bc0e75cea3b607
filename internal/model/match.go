package model

import (
	"time"
)

// MatchStatus 比赛生命周期状态枚举（三态，不强制状态迁移图——上游模拟器可能回退）
type MatchStatus string

const (
	StatusPending   MatchStatus = "pending"   // 未开赛
	StatusActive    MatchStatus = "active"    // 进行中
	StatusConcluded MatchStatus = "concluded" // 已结束
)

// Category 运动类别枚举（每个上游源对应一个类别）
type Category string

const (
	CategoryFootball   Category = "football"
	CategoryBasketball Category = "basketball"
	CategoryTennis     Category = "tennis"
)

// Match 统一的比赛快照模型（抹平各上游源差异，读模型）
type Match struct {
	ID        string      `gorm:"primaryKey;column:id;type:varchar(64);comment:全局唯一ID（源前缀+原始ID）" json:"id"`
	Category  Category    `gorm:"column:category;type:varchar(32);index;not null;comment:运动类别" json:"category"`
	HomeName  string      `gorm:"column:home_name;type:varchar(128);not null;comment:主队/选手A名称" json:"home_name"`
	AwayName  string      `gorm:"column:away_name;type:varchar(128);not null;comment:客队/选手B名称" json:"away_name"`
	HomeScore int         `gorm:"column:home_score;type:int;not null;default:0;comment:主队得分" json:"home_score"`
	AwayScore int         `gorm:"column:away_score;type:int;not null;default:0;comment:客队得分" json:"away_score"`
	Status    MatchStatus `gorm:"column:status;type:varchar(16);index;not null;default:pending;comment:比赛状态" json:"status"`
	Progress  string      `gorm:"column:progress;type:varchar(64);comment:进度描述（45 min / Period 2 / Set 1）" json:"progress"`
	SourceTag string      `gorm:"column:source_tag;type:varchar(32);not null;comment:来源适配器标识" json:"source_tag"`
	Version   int64       `gorm:"column:version;type:bigint;not null;default:0;comment:最近一条事件的版本号" json:"version"`
	UpdatedAt time.Time   `gorm:"column:updated_at;type:timestamp;comment:快照更新时间" json:"updated_at"`
}

// TableName 指定比赛快照表名
func (Match) TableName() string { return "matches" }

// IsValid 校验必填标识字段（标识/类别/双方名称缺失的比赛不允许进入编排器）
func (m *Match) IsValid() bool {
	return m.ID != "" && m.Category != "" && m.HomeName != "" && m.AwayName != ""
}
