package planner

import (
	"time"
)

// ViewType selects the calendar resolution for a view query.
type ViewType string

const (
	ViewTypeDay   ViewType = "day"
	ViewTypeWeek  ViewType = "week"
	ViewTypeMonth ViewType = "month"
)

// TimeBlock is the persisted record for a scheduled interval owned by one user.
type TimeBlock struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Color       *string    `json:"color,omitempty"`
	UserID      string     `json:"user_id"`
	TaskID      *string    `json:"task_id,omitempty"`
	Version     int        `json:"version"`
	LastSynced  *time.Time `json:"last_synced,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TimeBlockView is the projection served inside calendar views. Reduction
// passes may blank optional fields or collapse several blocks into one entry.
type TimeBlockView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Color       *string   `json:"color,omitempty"`
	TaskID      *string   `json:"task_id,omitempty"`
	TaskTitle   *string   `json:"task_title,omitempty"`
	Version     int       `json:"version,omitempty"`
}

// PageInfo describes the slice returned when a range query exceeds the
// pagination threshold.
type PageInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// CalendarView is the computed projection for one (user, view type, reference
// date) triple. It is never persisted; the cache holds it with a bounded TTL.
type CalendarView struct {
	ViewType      ViewType        `json:"view_type"`
	ReferenceDate time.Time       `json:"reference_date"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TimeBlocks    []TimeBlockView `json:"time_blocks"`
	Pagination    *PageInfo       `json:"pagination,omitempty"`
}
