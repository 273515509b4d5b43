package repository

import (
	"context"

	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	List(ctx context.Context, params ListParams) ([]model.Book, error)
	Count(ctx context.Context, search string) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) List(ctx context.Context, params ListParams) ([]model.Book, error) {
	books := make([]model.Book, 0)
	err := r.db.WithContext(ctx).
		Scopes(searchScope("title", params.Search), pageScope(params)).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, classify(err)
	}
	return books, nil
}

func (r *GormBookRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Scopes(searchScope("title", search)).
		Count(&total).Error
	if err != nil {
		return 0, classify(err)
	}
	return total, nil
}

func (r *GormBookRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books := make([]model.Book, 0)
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, classify(err)
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &book, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return classify(r.db.WithContext(ctx).Omit("Author").Create(book).Error)
}

func (r *GormBookRepository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		var n int64
		err := r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Count(&n).Error
		if err != nil {
			return false, classify(err)
		}
		return n > 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}
