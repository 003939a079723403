package model

import (
	"strings"
	"time"
)

// Response is the standard JSON envelope for the dashboard's own JSON endpoints.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// Sort directions accepted by the sales backend.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// PageQuery holds the pagination parameters sent to the sales backend.
// Page is 0-based.
type PageQuery struct {
	Page      int
	Size      int
	Search    string
	SortBy    string
	Direction string
}

// DefaultPageQuery returns the first page of ten items sorted by id.
func DefaultPageQuery() PageQuery {
	return PageQuery{Page: 0, Size: 10, SortBy: "id", Direction: DirectionAsc}
}

// Clamp enforces the backend's expectations (size 1..100, page >= 0, known direction).
func (q *PageQuery) Clamp() {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = 10
	}
	if q.Size > 100 {
		q.Size = 100
	}
	if q.SortBy == "" {
		q.SortBy = "id"
	}
	switch strings.ToLower(q.Direction) {
	case DirectionDesc:
		q.Direction = DirectionDesc
	default:
		q.Direction = DirectionAsc
	}
	q.Search = strings.TrimSpace(q.Search)
}
