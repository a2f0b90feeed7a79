package models

import "time"

// Warning representa una advertencia individual. Es inmutable una vez creada.
type Warning struct {
	ID            string    `json:"id"`
	Reason        string    `json:"reason"`
	ModeratorID   string    `json:"moderatorId"`
	ModeratorName string    `json:"moderator"`
	Timestamp     time.Time `json:"timestamp"`
}
