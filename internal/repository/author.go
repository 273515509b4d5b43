package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

type AuthorRepository interface {
	List(ctx context.Context, params ListParams) ([]model.Author, error)
	Count(ctx context.Context, search string) (int64, error)
	ListAll(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, author *model.Author) error
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) List(ctx context.Context, params ListParams) ([]model.Author, error) {
	authors := make([]model.Author, 0)
	err := r.db.WithContext(ctx).
		Scopes(searchScope("name", params.Search), pageScope(params)).
		Order("id").
		Find(&authors).Error
	if err != nil {
		return nil, classify(err)
	}
	return authors, nil
}

func (r *GormAuthorRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Scopes(searchScope("name", search)).
		Count(&total).Error
	if err != nil {
		return 0, classify(err)
	}
	return total, nil
}

func (r *GormAuthorRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	authors := make([]model.Author, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&authors).Error; err != nil {
		return nil, classify(err)
	}
	return authors, nil
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return classify(r.db.WithContext(ctx).Create(author).Error)
}

// Update writes only the given columns. It reports false when no author has
// the id.
func (r *GormAuthorRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return r.exists(ctx, id)
	}

	result := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the author; the store cascades the delete to its books.
func (r *GormAuthorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Author{}, "id = ?", id)
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormAuthorRepository) exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Author{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}
