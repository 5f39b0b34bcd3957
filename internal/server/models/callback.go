package models

import "time"

// Callback is a "call me back" request left through the contact form.
type Callback struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
