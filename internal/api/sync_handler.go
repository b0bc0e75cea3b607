package api

import (
	"net/http"

	"MatchPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 手动触发同步的接口（与定时器共用同一同步入口）
type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncService *service.SyncService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// TriggerSync 立即执行一轮同步
// POST /api/sync
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	if err := h.syncService.RunCycle(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("手动同步失败")
		respondError(c, http.StatusInternalServerError, "同步失败")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"message":   "同步完成",
		"scheduler": h.syncService.Running(),
	})
}
