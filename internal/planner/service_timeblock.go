package planner

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// txBeginner starts a transaction. Satisfied by *pgxpool.Pool; tests supply
// a fake so the conflict-check-plus-write flows run without a database.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// rowExecer runs a single statement. Satisfied by *pgxpool.Pool.
type rowExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

//go:embed queries/timeblock/create_time_block.sql
var queryCreateTimeBlockSQL string

//go:embed queries/timeblock/get_time_block_for_update.sql
var queryGetTimeBlockForUpdateSQL string

//go:embed queries/timeblock/update_time_block.sql
var queryUpdateTimeBlockSQL string

//go:embed queries/timeblock/delete_time_block.sql
var queryDeleteTimeBlockSQL string

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// validateTimeBlock checks the merged field set before any write. Validation
// failures guarantee zero state mutation.
func validateTimeBlock(title string, description, color *string, startTime, endTime time.Time) *ValidationError {
	title = strings.TrimSpace(title)
	if len(title) == 0 {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{Field: "title", Reason: "must be at most 100 characters"}
	}
	if description != nil && len(*description) > maxDescriptionLength {
		return &ValidationError{Field: "description", Reason: "must be at most 500 characters"}
	}
	if color != nil && !colorPattern.MatchString(*color) {
		return &ValidationError{Field: "color", Reason: "must be a hex color of the form #RRGGBB"}
	}
	if !endTime.After(startTime) {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	return nil
}

// respondError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a persistence failure: logged, surfaced opaquely.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": validationErr.Error(),
		})
		return
	}

	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "time_block_conflict",
			"message":   "Time block overlaps with existing blocks",
			"conflicts": conflictErr.Conflicts,
		})
		return
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": notFoundErr.Error(),
		})
		return
	}

	logger.Error("Persistence failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "database_error",
		"message": "Operation failed",
	})
}

func (s *Service) CreateTimeBlock(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string    `json:"title" binding:"required"`
		Description *string   `json:"description"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required"`
		Color       *string   `json:"color"`
		TaskID      *string   `json:"task_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := validateTimeBlock(req.Title, req.Description, req.Color, req.StartTime, req.EndTime); err != nil {
		respondError(c, s.logger, err)
		return
	}

	block, err := createTimeBlock(c.Request.Context(), s.pgxPool, TimeBlock{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
		UserID:      userID,
		TaskID:      req.TaskID,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.cache.ClearUser(userID)

	s.logger.Info("Time block created",
		zap.String("block_id", block.ID),
		zap.String("user_id", userID),
	)

	c.JSON(http.StatusCreated, block)
}

func (s *Service) UpdateTimeBlock(c *gin.Context, blockID string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		Color       *string    `json:"color"`
		TaskID      *string    `json:"task_id"`
		LastSynced  *time.Time `json:"last_synced"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	block, err := updateTimeBlock(c.Request.Context(), s.pgxPool, userID, blockID, timeBlockPatch{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
		TaskID:      req.TaskID,
		LastSynced:  req.LastSynced,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.cache.ClearUser(userID)

	s.logger.Info("Time block updated",
		zap.String("block_id", block.ID),
		zap.String("user_id", userID),
		zap.Int("version", block.Version),
	)

	c.JSON(http.StatusOK, block)
}

func (s *Service) DeleteTimeBlock(c *gin.Context, blockID string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := deleteTimeBlock(c.Request.Context(), s.pgxPool, userID, blockID); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.cache.ClearUser(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Time block deleted successfully"})
}

// createTimeBlock runs the conflict check and the insert in one transaction;
// the conflict query locks the owner's overlapping rows so a concurrent
// writer cannot slip in between check and insert.
func createTimeBlock(ctx context.Context, db txBeginner, block TimeBlock) (TimeBlock, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return TimeBlock{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	conflicts, err := findConflicts(ctx, tx, block.UserID, block.StartTime, block.EndTime, "")
	if err != nil {
		return TimeBlock{}, err
	}
	if len(conflicts) > 0 {
		return TimeBlock{}, &ConflictError{Conflicts: conflicts}
	}

	now := time.Now()
	created := TimeBlock{}
	err = pgxscan.Get(ctx, tx, &created, queryCreateTimeBlockSQL,
		block.ID,
		block.Title,
		block.Description,
		block.StartTime,
		block.EndTime,
		block.Color,
		block.UserID,
		block.TaskID,
		now,
	)
	if err != nil {
		return TimeBlock{}, err
	}

	return created, tx.Commit(ctx)
}

type timeBlockPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Color       *string
	TaskID      *string
	LastSynced  *time.Time
}

// updateTimeBlock fetches the block under lock, merges the patch, re-runs
// validation and the conflict check (excluding the block itself) and persists
// with an incremented version.
func updateTimeBlock(ctx context.Context, db txBeginner, userID, blockID string, patch timeBlockPatch) (TimeBlock, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return TimeBlock{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	existing := TimeBlock{}
	err = pgxscan.Get(ctx, tx, &existing, queryGetTimeBlockForUpdateSQL, blockID, userID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return TimeBlock{}, &NotFoundError{Resource: "time block", ID: blockID}
		}
		return TimeBlock{}, err
	}

	merged := existing
	if patch.Title != nil {
		merged.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		merged.Description = patch.Description
	}
	if patch.StartTime != nil {
		merged.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		merged.EndTime = *patch.EndTime
	}
	if patch.Color != nil {
		merged.Color = patch.Color
	}
	if patch.TaskID != nil {
		merged.TaskID = patch.TaskID
	}
	if patch.LastSynced != nil {
		merged.LastSynced = patch.LastSynced
	}

	if err := validateTimeBlock(merged.Title, merged.Description, merged.Color, merged.StartTime, merged.EndTime); err != nil {
		return TimeBlock{}, err
	}

	conflicts, err := findConflicts(ctx, tx, userID, merged.StartTime, merged.EndTime, blockID)
	if err != nil {
		return TimeBlock{}, err
	}
	if len(conflicts) > 0 {
		return TimeBlock{}, &ConflictError{Conflicts: conflicts}
	}

	updated := TimeBlock{}
	err = pgxscan.Get(ctx, tx, &updated, queryUpdateTimeBlockSQL,
		blockID,
		userID,
		merged.Title,
		merged.Description,
		merged.StartTime,
		merged.EndTime,
		merged.Color,
		merged.TaskID,
		merged.LastSynced,
		time.Now(),
	)
	if err != nil {
		return TimeBlock{}, err
	}

	return updated, tx.Commit(ctx)
}

func deleteTimeBlock(ctx context.Context, db rowExecer, userID, blockID string) error {
	tag, err := db.Exec(ctx, queryDeleteTimeBlockSQL, blockID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Resource: "time block", ID: blockID}
	}
	return nil
}
