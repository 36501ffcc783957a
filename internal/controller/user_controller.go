package controller

import (
	"fmt"
	"path/filepath"

	"github.com/Sanni11/slapbook/internal/repository"
	"github.com/Sanni11/slapbook/internal/service"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	UserRepo       *repository.UserRepository
	StorageService *service.StorageService
}

func NewUserController(userRepo *repository.UserRepository, storageService *service.StorageService) *UserController {
	return &UserController{
		UserRepo:       userRepo,
		StorageService: storageService,
	}
}

// @Summary Upload avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "avatar image"
// @Success 200 {object} util.Response
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%d-%s%s", user.UserID, uuid.New().String(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserRepo.UpdateAvatar(user.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
