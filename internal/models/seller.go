package models

import "time"

// SellerStatus is the moderation state of a seller registration.
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusApproved SellerStatus = "approved"
	SellerStatusBlocked  SellerStatus = "blocked"
)

// IsAllowedSellerStatus reports whether s is a valid moderation state.
func IsAllowedSellerStatus(s SellerStatus) bool {
	switch s {
	case SellerStatusPending, SellerStatusApproved, SellerStatusBlocked:
		return true
	}
	return false
}

// Seller is a seller registration awaiting or past moderation.
type Seller struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ContactName string       `json:"contactName,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	City        string       `json:"city,omitempty"`
	Description string       `json:"description,omitempty"`
	Instagram   string       `json:"instagram,omitempty"`
	Website     string       `json:"website,omitempty"`
	Status      SellerStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// RegisterSellerRequest is the POST /api/sellers/register payload.
type RegisterSellerRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Description string `json:"description"`
	Instagram   string `json:"instagram"`
	Website     string `json:"website"`
}

// UpdateSellerStatusRequest is the admin PATCH payload.
type UpdateSellerStatusRequest struct {
	Status SellerStatus `json:"status"`
}
