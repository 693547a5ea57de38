package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pevans/nordfeed/newsfeed"
)

// Pagination limits for GET /api/v1/items.
const (
	defaultLimit = 50
	maxLimit     = 1000
)

// ListItemsResponse represents the response for GET /api/v1/items.
type ListItemsResponse struct {
	Items  []newsfeed.NewsItem `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// HandleListItems handles GET /api/v1/items, listing synced items newest
// first.
func (s *APIServer) HandleListItems(c *gin.Context) {
	result, err := s.feed.List()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "internal_error", "Failed to list items: "+err.Error())
		return
	}
	items := result.Items

	// Filter by author (optional)
	if author := c.Query("author"); author != "" {
		items = filterItems(items, func(item newsfeed.NewsItem) bool {
			return slices.ContainsFunc(item.Authors, func(a string) bool {
				return strings.EqualFold(a, author)
			})
		})
	}

	// Filter by category (optional)
	if category := c.Query("category"); category != "" {
		items = filterItems(items, func(item newsfeed.NewsItem) bool {
			return slices.ContainsFunc(item.Categories, func(cat string) bool {
				return strings.EqualFold(cat, category)
			})
		})
	}

	// Filter by since (optional)
	if since := c.Query("since"); since != "" {
		sinceTime, err := time.Parse(time.RFC3339, since)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid_parameter", "Invalid since parameter: must be ISO 8601 format")
			return
		}
		items = filterItems(items, func(item newsfeed.NewsItem) bool {
			return !item.PublishedAt.Before(sinceTime)
		})
	}

	total := len(items)

	limit := defaultLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		parsedLimit, err := strconv.Atoi(limitParam)
		if err != nil || parsedLimit < 1 {
			abortWithError(c, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = min(parsedLimit, maxLimit)
	}

	offset := 0
	if offsetParam := c.Query("offset"); offsetParam != "" {
		parsedOffset, err := strconv.Atoi(offsetParam)
		if err != nil || parsedOffset < 0 {
			abortWithError(c, http.StatusBadRequest, "invalid_parameter", "Invalid offset parameter")
			return
		}
		offset = parsedOffset
	}

	c.JSON(http.StatusOK, ListItemsResponse{
		Items:  paginate(items, offset, limit),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleGetItem handles GET /api/v1/items/:id.
func (s *APIServer) HandleGetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_id", "Invalid item ID format")
		return
	}

	item, err := s.feed.Get(id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve item")
		return
	}
	if item == nil {
		abortWithError(c, http.StatusNotFound, "not_found", "Item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

func filterItems(items []newsfeed.NewsItem, keep func(newsfeed.NewsItem) bool) []newsfeed.NewsItem {
	filtered := []newsfeed.NewsItem{}
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// paginate returns a slice of items for the given offset and limit.
func paginate(items []newsfeed.NewsItem, offset, limit int) []newsfeed.NewsItem {
	if offset >= len(items) {
		return []newsfeed.NewsItem{}
	}

	end := min(offset+limit, len(items))

	return items[offset:end]
}
