package model

import "time"

// Program is a degree program (filière) that documents belong to.
// Programs are managed outside this service; it only reads them.
type Program struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
