package repository

import (
	"github.com/Sanni11/slapbook/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("Author").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) FindByPost(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Comment{}, "id = ?", id).Error
}

func (r *CommentRepository) DeleteByPost(postID string) error {
	return r.DB.Delete(&model.Comment{}, "post_id = ?", postID).Error
}
