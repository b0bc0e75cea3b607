package api

import (
	"errors"
	"net/http"
	"strconv"

	"MatchPulse/internal/model"
	"MatchPulse/internal/repository"
	"MatchPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchHandler 比赛查询接口（纯读，透传查询门面）
type MatchHandler struct {
	query  *service.QueryService
	logger *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(db *gorm.DB, logger *logrus.Logger) *MatchHandler {
	matchRepo := repository.NewMatchRepository(db)
	eventRepo := repository.NewEventRepository(db)
	return &MatchHandler{
		query:  service.NewQueryService(matchRepo, eventRepo, logger),
		logger: logger,
	}
}

// ListMatches 比赛列表
// GET /api/matches?category=football&status=active
func (h *MatchHandler) ListMatches(c *gin.Context) {
	filter := service.MatchFilter{
		Category: model.Category(c.Query("category")),
		Status:   model.MatchStatus(c.Query("status")),
	}

	matches, err := h.query.ListMatches(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("ListMatches failed")
		respondError(c, http.StatusInternalServerError, "查询比赛列表失败")
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// ListLive 进行中比赛列表
// GET /api/matches/live
func (h *MatchHandler) ListLive(c *gin.Context) {
	matches, err := h.query.ListLive(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListLive failed")
		respondError(c, http.StatusInternalServerError, "查询进行中比赛失败")
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// GetMatchDetail 单场比赛快照
// GET /api/matches/:id
func (h *MatchHandler) GetMatchDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "id不能为空")
		return
	}

	m, err := h.query.GetMatch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "比赛不存在")
			return
		}
		h.logger.WithError(err).WithField("match_id", id).Error("GetMatchDetail failed")
		respondError(c, http.StatusInternalServerError, "查询比赛失败")
		return
	}
	respondOK(c, http.StatusOK, m)
}

// GetMatchHistory 单场比赛事件历史（版本升序）
// GET /api/matches/:id/events?after_version=0
func (h *MatchHandler) GetMatchHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "id不能为空")
		return
	}
	afterVersion, err := strconv.ParseInt(c.DefaultQuery("after_version", "0"), 10, 64)
	if err != nil || afterVersion < 0 {
		respondError(c, http.StatusBadRequest, "after_version必须为非负整数")
		return
	}

	events, err := h.query.GetHistory(c.Request.Context(), id, afterVersion)
	if err != nil {
		h.logger.WithError(err).WithField("match_id", id).Error("GetMatchHistory failed")
		respondError(c, http.StatusInternalServerError, "查询事件历史失败")
		return
	}
	respondOK(c, http.StatusOK, events)
}

// GetStats 聚合统计
// GET /api/stats
func (h *MatchHandler) GetStats(c *gin.Context) {
	stats, err := h.query.Stats(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetStats failed")
		respondError(c, http.StatusInternalServerError, "查询统计失败")
		return
	}
	respondOK(c, http.StatusOK, stats)
}
