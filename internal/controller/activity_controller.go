package controller

import (
	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityRepo *repository.ActivityRepository
}

func NewActivityController(activityRepo *repository.ActivityRepository) *ActivityController {
	return &ActivityController{ActivityRepo: activityRepo}
}

// ListActivities godoc
// @Summary List recent activity, newest first
// @Tags activities
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Activity} "Success"
// @Router /api/activities [get]
func (c *ActivityController) ListActivities(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activities, err := c.ActivityRepo.FindRecent(claims.UserID, model.ActivityLogCap)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, activities)
}
