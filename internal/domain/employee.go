package domain

import "time"

type Employee struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}
