package model

import (
	"time"

	"houserental/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID               = "id"
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldPhoneNumber      = "phone_number"
	FieldBirthday         = "birthday"
	FieldIsActive         = "is_active"
	FieldStripeCustomerID = "stripe_customer_id"
)

type User struct {
	ID               string     `db:"id"`
	Username         string     `db:"username"`
	Email            string     `db:"email"`
	Password         string     `db:"password"`
	Role             string     `db:"role"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	PhoneNumber      string     `db:"phone_number"`
	Birthday         *time.Time `db:"birthday"`
	IsActive         bool       `db:"is_active"`
	StripeCustomerID *string    `db:"stripe_customer_id"`
	model.Metadata
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}

		name += u.LastName
	}

	if name == "" {
		return u.Username
	}

	return name
}

func (u User) CustomerID() string {
	if u.StripeCustomerID == nil {
		return ""
	}

	return *u.StripeCustomerID
}
