package models

import "time"

// UserRole distinguishes buyers from sellers during onboarding.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
)

// User is an onboarding record. Email and phone are each globally unique
// case-insensitively when present; at least one of them is required.
type User struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	City       string    `json:"city,omitempty"`
	Role       UserRole  `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`

	// Transient verification state; cleared after a successful verify.
	VerificationCode      string     `json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
}

// RequestCodeRequest is the POST /api/users/request-code payload.
type RequestCodeRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Role     string `json:"role"`
}

// VerifyCodeRequest is the POST /api/users/verify-code payload.
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Code  string `json:"code"`
}
