package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
)

type BookHandler struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
}

func NewBookHandler(books repository.BookRepository, authors repository.AuthorRepository) *BookHandler {
	return &BookHandler{books: books, authors: authors}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/author/:authorId", h.GetBooksByAuthor)
		books.GET("/book/:bookId", h.GetBookDetails)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Page through books, optionally filtered by a case-insensitive title search
// @Tags         books
// @Produce      json
// @Param        limit   query     int     false  "Page size"  default(10)
// @Param        page    query     int     false  "Page number, 1-based"  default(1)
// @Param        search  query     string  false  "Substring of the book title"
// @Success      200     {object}  ListBooksResponse
// @Failure      500     {object}  validation.ErrorResponse  "Failed to fetch books"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	q := parsePageQuery(c)

	books, total, err := fetchPage(c.Request.Context(), q, h.books.List, h.books.Count)
	if err != nil {
		writeServerError(c, err, "Failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, ListBooksResponse{
		Data:       books,
		Pagination: q.pagination(total),
	})
}

// GetBookByID godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  model.Book
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Failed to fetch book"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgBookNotFound)
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, msgBookNotFound, "Failed to fetch book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CreateBook godoc
// @Summary      Create a book
// @Description  The referenced author must exist
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookPayload                          true  "Book to create"
// @Success      201      {object}  validation.MessageResponse
// @Failure      400      {object}  validation.ValidationErrorResponse   "Validation error"
// @Failure      404      {object}  validation.ErrorResponse             "Author does not exist"
// @Failure      500      {object}  validation.ErrorResponse             "Failed to create book"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	in, ok := validation.BindAndValidateJSON(c, validation.ValidateBook)
	if !ok {
		return
	}

	book := bookFromInput(in)
	if !h.requireAuthor(c, book.AuthorID, "Failed to create book") {
		return
	}

	if err := h.books.Create(c.Request.Context(), &book); err != nil {
		writeBookStoreError(c, err, "Failed to create book")
		return
	}

	c.JSON(http.StatusCreated, validation.MessageResponse{
		Message: "Book created successfully",
		ID:      book.ID,
	})
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  The payload is validated like a create and the referenced author must exist
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                                  true  "Book ID"
// @Param        payload  body      BookPayload                          true  "Book fields"
// @Success      200      {object}  validation.MessageResponse
// @Failure      400      {object}  validation.ValidationErrorResponse   "Validation error"
// @Failure      404      {object}  validation.ErrorResponse             "Book not found or author does not exist"
// @Failure      500      {object}  validation.ErrorResponse             "Failed to update book"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	in, ok := validation.BindAndValidateJSON(c, validation.ValidateBook)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgBookNotFound)
		return
	}

	fields := bookColumns(in)
	if authorID, ok := fields["author_id"].(int64); ok {
		if !h.requireAuthor(c, authorID, "Failed to update book") {
			return
		}
	}

	updated, err := h.books.Update(c.Request.Context(), id, fields)
	if err != nil {
		writeBookStoreError(c, err, "Failed to update book")
		return
	}
	if !updated {
		writeNotFound(c, msgBookNotFound)
		return
	}

	c.JSON(http.StatusOK, validation.MessageResponse{Message: "Book updated successfully"})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  validation.MessageResponse
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Failed to delete book"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		writeNotFound(c, msgBookNotFound)
		return
	}

	deleted, err := h.books.Delete(c.Request.Context(), id)
	if err != nil {
		writeServerError(c, err, "Failed to delete book")
		return
	}
	if !deleted {
		writeNotFound(c, msgBookNotFound)
		return
	}

	c.JSON(http.StatusOK, validation.MessageResponse{Message: "Book deleted successfully"})
}

// GetBooksByAuthor godoc
// @Summary      List an author's books
// @Description  Answers an empty array when the author has no books or does not exist
// @Tags         books
// @Produce      json
// @Param        authorId  path      int  true  "Author ID"
// @Success      200       {array}   model.Book
// @Failure      404       {object}  validation.ErrorResponse  "Author ID is required"
// @Failure      500       {object}  validation.ErrorResponse  "Failed to fetch author books"
// @Router       /books/author/{authorId} [get]
func (h *BookHandler) GetBooksByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok || authorID == 0 {
		writeNotFound(c, msgAuthorIDRequired)
		return
	}

	books, err := h.books.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		writeServerError(c, err, "Failed to fetch author books")
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBookDetails godoc
// @Summary      Get a book with its author
// @Tags         books
// @Produce      json
// @Param        bookId  path      int  true  "Book ID"
// @Success      200     {object}  BookDetails
// @Failure      404     {object}  validation.ErrorResponse  "Book not found"
// @Failure      500     {object}  validation.ErrorResponse  "Failed to fetch book details"
// @Router       /books/book/{bookId} [get]
func (h *BookHandler) GetBookDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		writeNotFound(c, msgBookNotFound)
		return
	}

	ctx := c.Request.Context()

	book, err := h.books.FindByID(ctx, id)
	if err != nil {
		writeStoreError(c, err, msgBookNotFound, "Failed to fetch book details")
		return
	}

	author, err := h.authors.FindByID(ctx, book.AuthorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		writeServerError(c, err, "Failed to fetch book details")
		return
	}

	c.JSON(http.StatusOK, BookDetails{Book: *book, Author: author})
}

// requireAuthor answers 404 when authorID does not resolve to an author.
func (h *BookHandler) requireAuthor(c *gin.Context, authorID int64, message string) bool {
	_, err := h.authors.FindByID(c.Request.Context(), authorID)
	if err != nil {
		writeStoreError(c, err, msgAuthorMissing, message)
		return false
	}
	return true
}

// writeBookStoreError covers an author deleted between the existence check
// and the write.
func writeBookStoreError(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrForeignKey) {
		writeNotFound(c, msgAuthorMissing)
		return
	}
	writeServerError(c, err, message)
}
