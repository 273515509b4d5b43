// Package server assembles the HTTP engine: middleware, API routes, probes,
// metrics and the Swagger UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/internal/docs"
	"github.com/snnyvrz/shelfshare/internal/handler"
	"github.com/snnyvrz/shelfshare/internal/metrics"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Options struct {
	DB        *gorm.DB
	Metrics   *metrics.Metrics
	Version   string
	StartTime time.Time
}

func NewRouter(opts Options) (*gin.Engine, error) {
	sqlDB, err := opts.DB.DB()
	if err != nil {
		return nil, err
	}

	e := gin.New()
	if err := e.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, err
	}

	e.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(opts.Metrics),
	)

	authors := repository.NewGormAuthorRepository(opts.DB)
	books := repository.NewGormBookRepository(opts.DB)

	handler.NewHealthHandler(sqlDB, opts.StartTime, opts.Version).RegisterRoutes(e)

	api := e.Group("")
	{
		handler.NewAuthorHandler(authors, books).RegisterRoutes(api)
		handler.NewBookHandler(books, authors).RegisterRoutes(api)
	}

	e.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Version = opts.Version
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
