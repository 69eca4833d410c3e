package domain

import "time"

// Client is a customer company scaffolding work is billed against.
type Client struct {
	ID          int64
	Name        string
	ContactInfo *string
	CreatedAt   time.Time
}
