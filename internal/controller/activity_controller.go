package controller

import (
	"errors"

	"github.com/Sanni11/slapbook/internal/service"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// @Summary Log activity
// @Description Record minutes of study, skill or exercise
// @Tags activity
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param activity body service.ActivityRequest true "activity payload"
// @Success 201 {object} util.Response
// @Router /api/activities [post]
func (c *ActivityController) LogActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.ActivityService.LogActivity(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCategory), errors.Is(err, util.ErrNegativeMinutes):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, record)
}

// @Summary My activity
// @Description The caller's records inside the lookback window, newest first
// @Tags activity
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/activities [get]
func (c *ActivityController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.ActivityService.ListMine(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"activities": records,
		"total":      len(records),
	})
}

// @Summary Delete activity
// @Tags activity
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "record id"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [delete]
func (c *ActivityController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.ActivityService.Delete(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrActivityNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
