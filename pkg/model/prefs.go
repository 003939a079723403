package model

import "time"

// TablePrefs are the remembered settings of one table for one user.
type TablePrefs struct {
	Username  string    `json:"username"`
	Table     string    `json:"table"`
	PageSize  int       `json:"page_size"`
	Search    string    `json:"search"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportRecord describes an archived copy of a downloaded report.
type ExportRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Filename  string    `json:"filename"`
	Location  string    `json:"location"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
