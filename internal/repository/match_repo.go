package repository

import (
	"context"
	"time"

	"MatchPulse/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository 比赛快照仓储接口（读模型）
type MatchRepository interface {
	// Upsert 按ID整行覆盖写入（不存在则创建；绝不做部分合并，编排器总是给出完整新状态）
	Upsert(ctx context.Context, m *model.Match) error
	// Get 按ID查询快照；不存在时返回 gorm.ErrRecordNotFound
	Get(ctx context.Context, id string) (*model.Match, error)
	// ListAll 全量快照列表
	ListAll(ctx context.Context) ([]*model.Match, error)
	// ListByCategory 按运动类别过滤
	ListByCategory(ctx context.Context, category model.Category) ([]*model.Match, error)
	// ListByStatus 按生命周期状态过滤
	ListByStatus(ctx context.Context, status model.MatchStatus) ([]*model.Match, error)
	// CountAll 快照总数
	CountAll(ctx context.Context) (int64, error)
	// CountByStatus 按状态分组计数
	CountByStatus(ctx context.Context) (map[model.MatchStatus]int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Upsert 按主键冲突整行覆盖（full replace）
func (r *matchRepository) Upsert(ctx context.Context, m *model.Match) error {
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *matchRepository) Get(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) ListAll(ctx context.Context) ([]*model.Match, error) {
	// 空结果返回空切片而非nil，保证接口层序列化为[]
	matches := make([]*model.Match, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListByCategory(ctx context.Context, category model.Category) ([]*model.Match, error) {
	matches := make([]*model.Match, 0)
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListByStatus(ctx context.Context, status model.MatchStatus) ([]*model.Match, error) {
	matches := make([]*model.Match, 0)
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Match{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByStatus 分组计数（一条GROUP BY查询，不逐状态扫描）
func (r *matchRepository) CountByStatus(ctx context.Context) (map[model.MatchStatus]int64, error) {
	var rows []struct {
		Status model.MatchStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Match{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.MatchStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
