package controller

import (
	"errors"
	"strconv"

	"github.com/Sanni11/slapbook/internal/service"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/gin-gonic/gin"
)

type FeedController struct {
	FeedService *service.FeedService
}

func NewFeedController(feedService *service.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// @Summary List posts
// @Description Feed of posts, newest first
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/posts [get]
func (c *FeedController) GetPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, total, err := c.FeedService.GetPosts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"posts": posts,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// @Summary Create post
// @Tags feed
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param post body service.PostRequest true "post payload"
// @Success 201 {object} util.Response
// @Router /api/posts [post]
func (c *FeedController) CreatePost(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.FeedService.CreatePost(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, post)
}

// @Summary Post detail
// @Description One post with its comments
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "post id"
// @Success 200 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *FeedController) GetPostDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.FeedService.GetPostDetail(ctx.Request.Context(), ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Delete post
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "post id"
// @Success 200 {object} util.Response
// @Router /api/posts/{id} [delete]
func (c *FeedController) DeletePost(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.FeedService.DeletePost(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
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

// @Summary Comment on a post
// @Tags feed
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "post id"
// @Param comment body service.CommentRequest true "comment payload"
// @Success 201 {object} util.Response
// @Router /api/posts/{id}/comments [post]
func (c *FeedController) CreateComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.FeedService.CreateComment(user.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, comment)
}

// @Summary Delete comment
// @Tags feed
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "comment id"
// @Success 200 {object} util.Response
// @Router /api/comments/{id} [delete]
func (c *FeedController) DeleteComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.FeedService.DeleteComment(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCommentNotFound):
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
