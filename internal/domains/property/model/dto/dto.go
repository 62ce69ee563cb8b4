package dto

import (
	"houserental/internal/domains/property/model"
	gDto "houserental/shared/dto"
	gModel "houserental/shared/model"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePropertyRequest struct {
	Title         string          `json:"title"           validate:"required,notblank,max=255"`
	Description   string          `json:"description"     validate:"omitempty"`
	PropertyType  string          `json:"property_type"   validate:"required,oneof=house apartment villa cabin room other"`
	Address       string          `json:"address"         validate:"required,max=255"`
	City          string          `json:"city"            validate:"required,max=100"`
	State         string          `json:"state"           validate:"omitempty,max=100"`
	Country       string          `json:"country"         validate:"required,max=100"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"`
	Bedrooms      int             `json:"bedrooms"        validate:"min=0"`
	Bathrooms     int             `json:"bathrooms"       validate:"min=0"`
}

func (c *CreatePropertyRequest) ToModel(ownerID string) model.Property {
	return model.Property{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         c.Title,
		Description:   c.Description,
		PropertyType:  c.PropertyType,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		PricePerNight: c.PricePerNight.Round(2),
		Bedrooms:      c.Bedrooms,
		Bathrooms:     c.Bathrooms,
		Status:        model.StatusPending,
		Metadata:      gModel.NewMetadata(timezone.Now(), ownerID),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved denied"`
}

type PropertyResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PropertyType  string          `json:"property_type"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Country       string          `json:"country"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Status        string          `json:"status"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(property model.Property) {
	r.ID = property.ID
	r.OwnerID = property.OwnerID
	r.Title = property.Title
	r.Description = property.Description
	r.PropertyType = property.PropertyType
	r.Address = property.Address
	r.City = property.City
	r.State = property.State
	r.Country = property.Country
	r.PricePerNight = property.PricePerNight
	r.Bedrooms = property.Bedrooms
	r.Bathrooms = property.Bathrooms
	r.Status = property.Status
	r.Metadata.FromModel(property.Metadata)
}
