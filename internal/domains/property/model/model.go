package model

import (
	"houserental/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldOwnerID       = "owner_id"
	FieldTitle         = "title"
	FieldPropertyType  = "property_type"
	FieldCity          = "city"
	FieldPricePerNight = "price_per_night"
	FieldStatus        = "status"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
	StatusRented   = "rented"
)

type Property struct {
	ID            string          `db:"id"`
	OwnerID       string          `db:"owner_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	PropertyType  string          `db:"property_type"`
	Address       string          `db:"address"`
	City          string          `db:"city"`
	State         string          `db:"state"`
	Country       string          `db:"country"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Bedrooms      int             `db:"bedrooms"`
	Bathrooms     int             `db:"bathrooms"`
	Status        string          `db:"status"`
	model.Metadata
}

func (p Property) IsBookable() bool {
	return p.Status == StatusApproved
}
