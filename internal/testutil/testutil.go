package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with foreign keys
// enforced and the schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=1"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Author{}, &model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Date builds a model.Date from "YYYY-MM-DD" and fails the test otherwise.
func Date(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func SeedAuthor(t *testing.T, db *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{
		Name:      name,
		Birthdate: model.NewDate(time.Date(1960, time.January, 2, 0, 0, 0, 0, time.UTC)),
	}

	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", name, err)
	}

	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title, description string) model.Book {
	t.Helper()

	book := model.Book{
		Title:         title,
		AuthorID:      author.ID,
		PublishedDate: model.NewDate(time.Date(2008, time.August, 1, 0, 0, 0, 0, time.UTC)),
	}
	if description != "" {
		book.Description = &description
	}

	if err := db.Omit("Author").Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}
