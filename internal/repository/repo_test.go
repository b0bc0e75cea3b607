package repository

import (
	"fmt"
	"testing"

	"MatchPulse/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存sqlite库（带唯一索引迁移）
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Match{}, &model.MatchEvent{}))
	return db
}

// sampleMatch 构造一场合法比赛
func sampleMatch(id string) *model.Match {
	return &model.Match{
		ID:        id,
		Category:  model.CategoryFootball,
		HomeName:  "Crimson United",
		AwayName:  "Harbor City",
		Status:    model.StatusPending,
		SourceTag: "football",
	}
}
