package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sanni11/slapbook/internal/model"
	"github.com/Sanni11/slapbook/internal/repository"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// FeedService handles the shared post feed and its comments.
type FeedService struct {
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository
	Redis       *redis.Client
}

func NewFeedService(
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	rdb *redis.Client,
) *FeedService {
	return &FeedService{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Redis:       rdb,
	}
}

type PostRequest struct {
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content" binding:"required,max=2000"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type PostResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     uint      `json:"authorId"`
	Author       string    `json:"author"`
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	Views        int       `json:"views"`
	CommentCount int       `json:"commentCount"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  uint      `json:"authorId"`
	Author    string    `json:"author"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

func toPostResponse(post *model.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		AuthorID:     post.AuthorID,
		Author:       post.Author.Name,
		Username:     post.Author.Username,
		Avatar:       post.Author.Avatar,
		CreatedAt:    post.CreatedAt,
		Views:        post.Views,
		CommentCount: len(post.Comments),
	}
}

func toCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Author:    comment.Author.Name,
		Username:  comment.Author.Username,
		Avatar:    comment.Author.Avatar,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func (s *FeedService) CreatePost(userID uint, req PostRequest) (*model.Post, error) {
	post := &model.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *FeedService) GetPosts(page, limit int) ([]PostResponse, int64, error) {
	offset := (page - 1) * limit
	posts, total, err := s.PostRepo.FindWithPagination(offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = toPostResponse(&posts[i])
	}
	return responses, total, nil
}

// GetPostDetail returns a post with its comments and bumps the view counter
// at most once per viewer per day, deduplicated through Redis.
func (s *FeedService) GetPostDetail(ctx context.Context, postID string, viewerID uint) (*PostDetailResponse, error) {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		key := fmt.Sprintf("post:viewed:%s:%d", postID, viewerID)
		set, err := s.Redis.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err == nil && set {
			if err := s.PostRepo.IncrementViews(postID); err == nil {
				post.Views++
			}
		}
	}

	detail := &PostDetailResponse{
		PostResponse: toPostResponse(post),
		Comments:     make([]CommentResponse, len(post.Comments)),
	}
	for i := range post.Comments {
		detail.Comments[i] = toCommentResponse(&post.Comments[i])
	}
	return detail, nil
}

func (s *FeedService) DeletePost(userID uint, postID string) error {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrPostNotFound
		}
		return err
	}

	if post.AuthorID != userID {
		return util.ErrPermissionDenied
	}

	if err := s.CommentRepo.DeleteByPost(postID); err != nil {
		return err
	}
	return s.PostRepo.Delete(postID)
}

func (s *FeedService) CreateComment(userID uint, postID string, req CommentRequest) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *FeedService) DeleteComment(userID uint, commentID string) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrCommentNotFound
		}
		return err
	}

	if comment.AuthorID != userID {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.Delete(commentID)
}
