package dto

import "time"

type ProgressPointResponse struct {
	TakenAt time.Time `json:"taken_at"`
	Percent float64   `json:"percent"`
}
