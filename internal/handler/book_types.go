package handler

import (
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/validation"
)

// BookPayload documents the create/update body.
type BookPayload struct {
	Title         string  `json:"title" example:"The Left Hand of Darkness"`
	Description   *string `json:"description,omitempty" example:"An envoy visits the planet Gethen"`
	PublishedDate string  `json:"published_date" example:"1969-03-01"`
	AuthorID      int64   `json:"author_id" example:"1"`
}

type ListBooksResponse struct {
	Data       []model.Book `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// BookDetails is a book with its author. Author is omitted when the author
// row is gone.
type BookDetails struct {
	model.Book
	Author *model.Author `json:"author,omitempty"`
}

func bookFromInput(in validation.Input) model.Book {
	book := model.Book{}
	applyBookInput(&book, in)
	return book
}

func applyBookInput(b *model.Book, in validation.Input) {
	if v, ok := in["title"].(string); ok {
		b.Title = v
	}
	if _, ok := in["description"]; ok {
		b.Description = validation.StringValue(in["description"])
	}
	if v, ok := in["published_date"]; ok {
		if d, err := model.DateFromValue(v); err == nil {
			b.PublishedDate = d
		}
	}
	if id, ok := validation.IntValue(in["author_id"]); ok {
		b.AuthorID = id
	}
}

// bookColumns lists the columns present in the payload.
func bookColumns(in validation.Input) map[string]any {
	var b model.Book
	applyBookInput(&b, in)

	fields := make(map[string]any, len(in))
	if _, ok := in["title"]; ok {
		fields["title"] = b.Title
	}
	if _, ok := in["description"]; ok {
		fields["description"] = b.Description
	}
	if _, ok := in["published_date"]; ok {
		fields["published_date"] = b.PublishedDate
	}
	if _, ok := in["author_id"]; ok {
		fields["author_id"] = b.AuthorID
	}
	return fields
}
