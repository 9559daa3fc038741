// model/user.go
package model

import "time"

type UserRole string

const (
	RoleSellerBuyer UserRole = "SELLER_BUYER"
	RoleAdmin       UserRole = "ADMIN"
)

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	Role         UserRole  `json:"role"`
	City         *string   `json:"city,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=50"`
	Email       string  `json:"email" validate:"required,email,max=50"`
	Username    string  `json:"username" validate:"required,min=2,max=50"`
	Password    string  `json:"password" validate:"required,min=6,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=13"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=50"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=50"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateReq replaces the account's profile. A blank password keeps the
// current one.
// swagger:model UpdateReq
type UpdateReq struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=50"`
	Email       string  `json:"email" validate:"required,email,max=50"`
	Username    string  `json:"username" validate:"required,min=2,max=50"`
	Password    string  `json:"password,omitempty" validate:"omitempty,min=6,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=13"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=50"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=50"`
}
