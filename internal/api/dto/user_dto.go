package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	RUT               *string   `json:"rut,omitempty"`
	PhoneNumber       *string   `json:"phone_number,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user, omitting the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Email:             user.Email,
		Role:              string(user.Role),
		RUT:               user.RUT,
		PhoneNumber:       user.PhoneNumber,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
	}
}

// UpdateUserRequest payload for partial account updates. Nil fields
// stay unchanged.
type UpdateUserRequest struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	Email             *string `json:"email"`
	Password          *string `json:"password"`
	Role              *string `json:"role"`
	RUT               *string `json:"rut"`
	PhoneNumber       *string `json:"phone_number"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Validate checks the provided fields; absent fields are skipped.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Length(1, 100)),
		validation.Field(&r.Email, is.Email, validation.Length(5, 255)),
		validation.Field(&r.Password, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.In("admin", "technician")),
		validation.Field(&r.RUT, validation.Length(0, 20)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 30)),
		validation.Field(&r.ProfilePictureURL, is.URL, validation.Length(0, 512)),
	)
}
