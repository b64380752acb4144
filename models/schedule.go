package models

import "time"

// Schedule is a one-off scheduled game night. The id is the unix
// timestamp of the event, which also makes ids unique per instant.
type Schedule struct {
	ID          int64     `json:"id"`
	Datetime    time.Time `json:"datetime"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
