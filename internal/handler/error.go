package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
)

const (
	msgAuthorNotFound    = "Author not found"
	msgBookNotFound      = "Book not found"
	msgAuthorMissing     = "Author does not exist"
	msgAuthorIDRequired  = "Author ID is required"
	msgConnectionFailure = "Database connection error"
)

// writeNotFound answers 404. Absence is an expected outcome and is not
// logged.
func writeNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, validation.ErrorResponse{
		Error: message,
	})
}

// writeServerError logs err and answers 500 without leaking its detail.
// Store connection failures get their own message.
func writeServerError(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrConnection) {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("route", c.FullPath()).
			Msg(msgConnectionFailure)

		c.AbortWithStatusJSON(http.StatusInternalServerError, validation.ErrorResponse{
			Error: msgConnectionFailure,
		})
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("route", c.FullPath()).
		Msg(message)

	c.AbortWithStatusJSON(http.StatusInternalServerError, validation.ErrorResponse{
		Error: message,
	})
}

// writeStoreError maps ErrNotFound to a 404 with notFound and everything
// else to writeServerError.
func writeStoreError(c *gin.Context, err error, notFound, message string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeNotFound(c, notFound)
		return
	}
	writeServerError(c, err, message)
}
