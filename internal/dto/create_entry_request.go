// File: internal/dto/create_entry_request.go
package dto

import "time"

// CreateEntryRequest date 省略時以建立時間為準
// swagger:model dto.CreateEntryRequest
type CreateEntryRequest struct {
	Date *time.Time `json:"date,omitempty" example:"2024-05-01T08:00:00Z"`
	Mood *int       `json:"mood" validate:"required,min=0,max=10" example:"7"`
	Note string     `json:"note,omitempty" example:"slept well"`
}
