package dto

import (
	"houserental/internal/domains/user/model"
	"houserental/shared/constant"
	gDto "houserental/shared/dto"
)

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Birthday    *string `json:"birthday,omitempty"`
	IsActive    bool    `json:"is_active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Email = user.Email
	r.Role = user.Role
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.PhoneNumber = user.PhoneNumber
	r.IsActive = user.IsActive
	r.Metadata.FromModel(user.Metadata)

	if user.Birthday != nil {
		birthday := user.Birthday.Format(constant.DateOnlyFormat)
		r.Birthday = &birthday
	}
}

// UpdateProfileRequest carries the fields a user may change on their own account.
type UpdateProfileRequest struct {
	FirstName   string `db:"first_name"   json:"first_name"   validate:"omitempty,max=150"`
	LastName    string `db:"last_name"    json:"last_name"    validate:"omitempty,max=150"`
	PhoneNumber string `db:"phone_number" json:"phone_number" validate:"omitempty,max=20"`
	Birthday    string `json:"birthday"     validate:"omitempty,isodate"`
}

func FromModels(users []model.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, user := range users {
		res[i].FromModel(user)
	}

	return res
}
