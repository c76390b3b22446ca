package models

import "time"

// Template represents a persisted certificate template record. OwnerID scopes
// every read, list and delete: a record is visible and mutable only to its
// owner. JSON tags are snake_case to match the database schema.
type Template struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"user_id"`
	Name       string     `json:"name"`
	CanvasData CanvasData `json:"canvas_data"`
	ExcelData  ExcelData  `json:"excel_data"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
