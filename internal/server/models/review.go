package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position"`
	Company   *string   `json:"company"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	UserID    *int64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
