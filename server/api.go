// Package server serves region feeds over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/nordfeed"
	"github.com/pevans/nordfeed/newsfeed"
)

// ArticleLister lists the accepted articles of a region.
type ArticleLister interface {
	ListArticles(ctx context.Context, opts nordfeed.Options) ([]nordfeed.ArticleRecord, error)
}

// APIServer represents the HTTP API server for region feeds.
type APIServer struct {
	lister   ArticleLister
	feed     *newsfeed.NewsFeed
	defaults nordfeed.Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewAPIServer creates a new API server. defaults supplies the filter
// options for query parameters a request leaves out. The stored item routes
// are only served when feed is not nil.
func NewAPIServer(lister ArticleLister, feed *newsfeed.NewsFeed, defaults nordfeed.Options, logger *slog.Logger) *APIServer {
	return &APIServer{
		lister:   lister,
		feed:     feed,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

// SetupRouter configures the Gin router with the feed API routes.
func (s *APIServer) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	api.GET("/regions", s.HandleListRegions)
	api.GET("/feed/:region", s.HandleGetFeed)
	if s.feed != nil {
		api.GET("/items", s.HandleListItems)
		api.GET("/items/:id", s.HandleGetItem)
	}

	return router
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// HandleListRegions handles GET /api/v1/regions.
func (s *APIServer) HandleListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": nordfeed.Regions()})
}

// HandleGetFeed handles GET /api/v1/feed/:region.
func (s *APIServer) HandleGetFeed(c *gin.Context) {
	region, err := nordfeed.ParseRegion(c.Param("region"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_region", err.Error())
		return
	}

	format, err := newsfeed.ParseFormat(c.Query("format"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	opts := s.defaults
	opts.Region = region
	flags := []struct {
		param string
		value *bool
	}{
		{"police_reports", &opts.IncludePoliceReports},
		{"hide_nn_plus", &opts.HideNNPlus},
		{"hide_dpa", &opts.HideDPA},
	}
	for _, f := range flags {
		raw, ok := c.GetQuery(f.param)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid_parameter",
				fmt.Sprintf("%s must be true or false", f.param))
			return
		}
		*f.value = b
	}

	records, err := s.lister.ListArticles(c.Request.Context(), opts)
	if err != nil {
		s.logger.Error("failed to list articles", "region", string(region), "error", err)
		switch {
		case errors.Is(err, nordfeed.ErrFetchFailure):
			abortWithError(c, http.StatusBadGateway, "fetch_failed", err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "scrape_failed", err.Error())
		}
		return
	}

	now := s.now()
	var buf bytes.Buffer
	items := newsfeed.FromRecords(records, now)
	if err := newsfeed.Render(&buf, format, newsfeed.RegionChannel(region, now), items); err != nil {
		abortWithError(c, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(nordfeed.CacheTimeout.Seconds())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
