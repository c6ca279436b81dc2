package api

import (
	"context"
	"net/http"

	"donation/models"

	"github.com/gin-gonic/gin"
)

// StatsComputer 汇总统计
type StatsComputer interface {
	ComputeStats(ctx context.Context) (*models.Stats, error)
}

// StatsHandler 公开统计
type StatsHandler struct {
	stats StatsComputer
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(stats StatsComputer) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get 获取收支汇总
// @Summary 收支汇总
// @Description 总收入、总支出、结余以及各项目收支
// @Tags 统计
// @Produce json
// @Success 200 {object} models.Stats "获取成功"
// @Failure 500 {object} ErrorResponse "统计失败"
// @Router /api/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.stats.ComputeStats(c.Request.Context())
	if err != nil {
		StoreError(c, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
