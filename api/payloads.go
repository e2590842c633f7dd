package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	parks "github.com/goliatone/go-parks"
)

// ParkRequest is the create/update payload for a national park.
// Picture travels base64-encoded in the JSON body.
type ParkRequest struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	State       string    `json:"state"`
	Picture     []byte    `json:"picture,omitempty"`
	Established time.Time `json:"established,omitempty"`
}

// Validate will run validation rules
func (r ParkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.State, validation.Required, validation.Length(1, 100)),
	)
}

// Record maps the payload onto a model record
func (r ParkRequest) Record() *parks.NationalPark {
	return &parks.NationalPark{
		ID:          r.ID,
		Name:        r.Name,
		State:       r.State,
		Picture:     r.Picture,
		Established: r.Established,
	}
}

// TrailRequest is the create/update payload for a trail
type TrailRequest struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Distance       float64 `json:"distance"`
	Elevation      float64 `json:"elevation"`
	Difficulty     string  `json:"difficulty"`
	NationalParkID int64   `json:"national_park_id"`
}

// Validate will run validation rules
func (r TrailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Distance, validation.Required, validation.Min(0.0)),
		validation.Field(&r.Difficulty,
			validation.Required,
			validation.In(
				parks.DifficultyEasy,
				parks.DifficultyModerate,
				parks.DifficultyDifficult,
				parks.DifficultyExpert,
			),
		),
		validation.Field(&r.NationalParkID, validation.Required),
	)
}

// Record maps the payload onto a model record
func (r TrailRequest) Record() *parks.Trail {
	return &parks.Trail{
		ID:             r.ID,
		Name:           r.Name,
		Distance:       r.Distance,
		Elevation:      r.Elevation,
		Difficulty:     r.Difficulty,
		NationalParkID: r.NationalParkID,
	}
}

// CredentialsRequest is the authenticate payload
type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest is the registration payload. Role is optional and
// defaults server-side.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Role, validation.In(
			parks.RoleGuest,
			parks.RoleMember,
			parks.RoleAdmin,
		)),
	)
}
