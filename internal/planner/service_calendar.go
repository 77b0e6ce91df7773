package planner

import (
	"context"
	_ "embed"
	"net/http"
	"strconv"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed queries/timeblock/list_time_blocks_in_range.sql
var queryListTimeBlocksInRangeSQL string

// viewShape carries the client-supplied presentation knobs. They are applied
// after cache retrieval, so the cache only ever holds the canonical view and
// one client's page or reduction choices never leak into another response.
type viewShape struct {
	page       int
	isMobile   bool
	maxItems   int
	limitItems bool
	compressed bool
}

// GetCalendarView serves a day/week/month view for the requesting user.
// Cache hit returns immediately; on a miss the range is computed, blocks are
// fetched and aggregated, and the canonical result is cached. Pagination and
// mobile/low-memory reduction shape the response per request in both cases.
func (s *Service) GetCalendarView(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	viewType := ViewType(c.Query("viewType"))
	referenceDate, err := parseReferenceDate(c.Query("referenceDate"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	view, hit := s.cache.Get(userID, viewType, referenceDate)
	if !hit {
		startDate, endDate, rangeErr := s.ranges.CalculateRange(viewType, referenceDate)
		if rangeErr != nil {
			respondError(c, s.logger, rangeErr)
			return
		}

		blocks, fetchErr := listTimeBlocksInRange(c.Request.Context(), s.pgxPool, userID, startDate, endDate)
		if fetchErr != nil {
			respondError(c, s.logger, fetchErr)
			return
		}

		view = CalendarView{
			ViewType:      viewType,
			ReferenceDate: referenceDate,
			StartDate:     startDate,
			EndDate:       endDate,
			TimeBlocks:    aggregateBlocks(blocks),
		}
		s.cache.Set(userID, viewType, referenceDate, view)

		s.logger.Debug("Calendar view computed",
			zap.String("user_id", userID),
			zap.String("view_type", string(viewType)),
			zap.Int("block_count", len(view.TimeBlocks)),
		)
	}

	shape := parseViewShape(c)
	shaped := shapeView(view, shape)
	if shape.compressed {
		payload, compressErr := CompressBlocks(shaped.TimeBlocks)
		if compressErr != nil {
			respondError(c, s.logger, compressErr)
			return
		}
		c.Data(http.StatusOK, "application/gzip", payload)
		return
	}

	c.JSON(http.StatusOK, shaped)
}

func parseViewShape(c *gin.Context) viewShape {
	shape := viewShape{
		page:       1,
		isMobile:   c.Query("isMobile") == "true",
		compressed: c.Query("compressed") == "true",
	}
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			shape.page = parsed
		}
	}
	if raw := c.Query("maxItems"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			shape.maxItems = parsed
			shape.limitItems = true
		}
	}
	return shape
}

// shapeView applies pagination and reduction to a canonical view. Oversized
// result sets are paginated instead of materialized whole; small ones keep
// full fidelity. The input view is not modified.
func shapeView(view CalendarView, shape viewShape) CalendarView {
	if len(view.TimeBlocks) > paginationThreshold {
		items, info := paginateBlocks(view.TimeBlocks, shape.page, defaultPageSize)
		view.TimeBlocks = items
		view.Pagination = &info
	}

	view.TimeBlocks = reduceResolution(view.TimeBlocks, view.ViewType, shape.isMobile)
	view.TimeBlocks = optimizeForMobile(view.TimeBlocks, shape.isMobile)

	if shape.limitItems {
		view.TimeBlocks = optimizeForLowMemory(view.TimeBlocks, shape.maxItems)
	}
	return view
}

// parseReferenceDate accepts RFC 3339 timestamps and bare calendar dates.
func parseReferenceDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &ValidationError{Field: "referenceDate", Reason: "is required"}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, &ValidationError{
		Field:  "referenceDate",
		Reason: "must be an RFC 3339 timestamp or a YYYY-MM-DD date",
	}
}

func listTimeBlocksInRange(ctx context.Context, db pgxscan.Querier, userID string, startDate, endDate time.Time) ([]TimeBlockView, error) {
	blocks := []TimeBlockView{}
	return blocks, pgxscan.Select(ctx, db, &blocks, queryListTimeBlocksInRangeSQL, userID, startDate, endDate)
}
