package planner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Service struct {
	logger  *zap.Logger
	pgxPool *pgxpool.Pool
	ranges  *RangeCalculator
	cache   *ViewCache
}

func NewService(logger *zap.Logger, pgxPool *pgxpool.Pool, ranges *RangeCalculator) *Service {
	if ranges == nil {
		ranges = NewRangeCalculator(nil)
	}
	return &Service{
		logger:  logger,
		pgxPool: pgxPool,
		ranges:  ranges,
		cache:   NewViewCache(ranges.Location),
	}
}

type TimeBlockService interface {
	CreateTimeBlock(*gin.Context)
	UpdateTimeBlock(*gin.Context, string)
	DeleteTimeBlock(*gin.Context, string)
	GetCalendarView(*gin.Context)
}

var _ TimeBlockService = (*Service)(nil)

// RegisterHandlers wires the planner routes onto the router. The owning user
// is taken from the X-User-ID header; authentication itself happens upstream.
func RegisterHandlers(router gin.IRouter, s *Service) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/time-blocks", s.CreateTimeBlock)
	router.PATCH("/time-blocks/:blockID", func(c *gin.Context) {
		s.UpdateTimeBlock(c, c.Param("blockID"))
	})
	router.DELETE("/time-blocks/:blockID", func(c *gin.Context) {
		s.DeleteTimeBlock(c, c.Param("blockID"))
	})
	router.GET("/calendar/view", s.GetCalendarView)
}

// requireUserID pulls the owning user from the request, rejecting the call
// when the upstream layer did not supply one.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_user",
			"message": "X-User-ID header is required",
		})
		return "", false
	}
	return userID, true
}
