package model

import "time"

// Caller identifies who is making a booking or paying for one.
// Only Authenticated and Guest implement it.
type Caller interface {
	isCaller()
}

// Authenticated is a logged-in user.
type Authenticated struct {
	UserID string
}

// Guest is an anonymous visitor identified by contact details.
type Guest struct {
	FullName    string
	Email       string
	PhoneNumber string
	Birthday    *time.Time
}

func (Authenticated) isCaller() {}

func (Guest) isCaller() {}
