package repository

import (
	"github.com/Sanni11/slapbook/internal/model"
	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

// FindWithPagination returns posts newest first with their authors and
// comments preloaded, plus the total count before paging.
func (r *PostRepository) FindWithPagination(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	if err := r.DB.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Preload("Author").Preload("Comments").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}

func (r *PostRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
