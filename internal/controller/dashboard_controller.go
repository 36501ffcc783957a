package controller

import (
	"github.com/Sanni11/slapbook/internal/service"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary My weekly stats
// @Description Weekly per-category totals plus the current streak
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/stats/me [get]
func (c *DashboardController) GetMyStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.DashboardService.GetProfileStats(user.UserID)
	if err != nil {
		// Includes stats.ErrUnknownCategory: stored data violated the
		// category contract, so fail instead of serving corrupted totals.
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary Group dashboard
// @Description Everyone's weekly totals, streaks and bar scaling
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) GetBoard(ctx *gin.Context) {
	board, err := c.DashboardService.GetBoard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, board)
}
