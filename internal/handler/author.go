package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"golang.org/x/sync/errgroup"
)

// booksFetchConcurrency keeps the per-author fan-out below the pool size.
const booksFetchConcurrency = 8

type AuthorHandler struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
}

func NewAuthorHandler(authors repository.AuthorRepository, books repository.BookRepository) *AuthorHandler {
	return &AuthorHandler{authors: authors, books: books}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/authors-with-books", h.ListAuthorsWithBooks)
		authors.GET("/author/:authorId", h.GetAuthorDetails)
		authors.GET("/:id", h.GetAuthorByID)
		authors.POST("", h.CreateAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Page through authors, optionally filtered by a case-insensitive name search
// @Tags         authors
// @Produce      json
// @Param        limit   query     int     false  "Page size"  default(10)
// @Param        page    query     int     false  "Page number, 1-based"  default(1)
// @Param        search  query     string  false  "Substring of the author name"
// @Success      200     {object}  ListAuthorsResponse
// @Failure      500     {object}  validation.ErrorResponse  "Failed to fetch authors"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	q := parsePageQuery(c)

	authors, total, err := fetchPage(c.Request.Context(), q, h.authors.List, h.authors.Count)
	if err != nil {
		writeServerError(c, err, "Failed to fetch authors")
		return
	}

	c.JSON(http.StatusOK, ListAuthorsResponse{
		Data:       authors,
		Pagination: q.pagination(total),
	})
}

// GetAuthorByID godoc
// @Summary      Get an author
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  model.Author
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Failed to fetch author"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	author, err := h.authors.FindByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, msgAuthorNotFound, "Failed to fetch author")
		return
	}

	c.JSON(http.StatusOK, author)
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Every field rule is checked and all violations are reported together
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      AuthorPayload                        true  "Author to create"
// @Success      201      {object}  validation.MessageResponse
// @Failure      400      {object}  validation.ValidationErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse             "Failed to create author"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	in, ok := validation.BindAndValidateJSON(c, validation.ValidateAuthor)
	if !ok {
		return
	}

	author := authorFromInput(in)
	if err := h.authors.Create(c.Request.Context(), &author); err != nil {
		writeServerError(c, err, "Failed to create author")
		return
	}

	c.JSON(http.StatusCreated, validation.MessageResponse{
		Message: "Author created successfully",
		ID:      author.ID,
	})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  The payload is validated like a create; only supplied fields are written
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                                  true  "Author ID"
// @Param        payload  body      AuthorPayload                        true  "Author fields"
// @Success      200      {object}  validation.MessageResponse
// @Failure      400      {object}  validation.ValidationErrorResponse   "Validation error"
// @Failure      404      {object}  validation.ErrorResponse             "Author not found"
// @Failure      500      {object}  validation.ErrorResponse             "Failed to update author"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	in, ok := validation.BindAndValidateJSON(c, validation.ValidateAuthor)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	updated, err := h.authors.Update(c.Request.Context(), id, authorColumns(in))
	if err != nil {
		writeServerError(c, err, "Failed to update author")
		return
	}
	if !updated {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	c.JSON(http.StatusOK, validation.MessageResponse{Message: "Author updated successfully"})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  The author's books are removed with it
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  validation.MessageResponse
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Failed to delete author"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	deleted, err := h.authors.Delete(c.Request.Context(), id)
	if err != nil {
		writeServerError(c, err, "Failed to delete author")
		return
	}
	if !deleted {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	c.JSON(http.StatusOK, validation.MessageResponse{Message: "Author deleted successfully"})
}

// GetAuthorDetails godoc
// @Summary      Get an author with their books
// @Tags         authors
// @Produce      json
// @Param        authorId  path      int  true  "Author ID"
// @Success      200       {object}  AuthorDetails
// @Failure      404       {object}  validation.ErrorResponse  "Author not found"
// @Failure      500       {object}  validation.ErrorResponse  "Failed to fetch author details"
// @Router       /authors/author/{authorId} [get]
func (h *AuthorHandler) GetAuthorDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "authorId")
	if !ok {
		writeNotFound(c, msgAuthorNotFound)
		return
	}

	ctx := c.Request.Context()

	author, err := h.authors.FindByID(ctx, id)
	if err != nil {
		writeStoreError(c, err, msgAuthorNotFound, "Failed to fetch author details")
		return
	}

	books, err := h.books.ListByAuthor(ctx, author.ID)
	if err != nil {
		writeServerError(c, err, "Failed to fetch author details")
		return
	}

	c.JSON(http.StatusOK, AuthorDetails{Author: *author, Books: books})
}

// ListAuthorsWithBooks godoc
// @Summary      List every author with their books
// @Tags         authors
// @Produce      json
// @Success      200  {array}   AuthorDetails
// @Failure      500  {object}  validation.ErrorResponse  "Failed to fetch authors with books"
// @Router       /authors/authors-with-books [get]
func (h *AuthorHandler) ListAuthorsWithBooks(c *gin.Context) {
	ctx := c.Request.Context()

	authors, err := h.authors.ListAll(ctx)
	if err != nil {
		writeServerError(c, err, "Failed to fetch authors with books")
		return
	}

	details := make([]AuthorDetails, len(authors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(booksFetchConcurrency)
	for i, author := range authors {
		i, author := i, author
		g.Go(func() error {
			books, err := h.books.ListByAuthor(gctx, author.ID)
			if err != nil {
				return err
			}
			details[i] = AuthorDetails{Author: author, Books: books}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		writeServerError(c, err, "Failed to fetch authors with books")
		return
	}

	c.JSON(http.StatusOK, details)
}
