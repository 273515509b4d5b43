package handler

import (
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/validation"
)

// AuthorPayload documents the create/update body. Requests are decoded into
// validation.Input so every field rule can be reported at once.
type AuthorPayload struct {
	Name      string  `json:"name" example:"Ursula K. Le Guin"`
	Bio       *string `json:"bio,omitempty" example:"Author of the Earthsea cycle"`
	Birthdate string  `json:"birthdate" example:"1929-10-21"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListAuthorsResponse struct {
	Data       []model.Author `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// AuthorDetails is an author with all of its books.
type AuthorDetails struct {
	model.Author
	Books []model.Book `json:"books"`
}

func authorFromInput(in validation.Input) model.Author {
	author := model.Author{}
	applyAuthorInput(&author, in)
	return author
}

func applyAuthorInput(a *model.Author, in validation.Input) {
	if v, ok := in["name"].(string); ok {
		a.Name = v
	}
	if _, ok := in["bio"]; ok {
		a.Bio = validation.StringValue(in["bio"])
	}
	if v, ok := in["birthdate"]; ok {
		if d, err := model.DateFromValue(v); err == nil {
			a.Birthdate = d
		}
	}
}

// authorColumns lists the columns present in the payload.
func authorColumns(in validation.Input) map[string]any {
	var a model.Author
	applyAuthorInput(&a, in)

	fields := make(map[string]any, len(in))
	if _, ok := in["name"]; ok {
		fields["name"] = a.Name
	}
	if _, ok := in["bio"]; ok {
		fields["bio"] = a.Bio
	}
	if _, ok := in["birthdate"]; ok {
		fields["birthdate"] = a.Birthdate
	}
	return fields
}
