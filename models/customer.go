// models/customer.go
package models

import (
	"gorm.io/gorm"
)

// Customer is the guest identity reference. Identity issuance lives outside this
// service; we only keep what bookings need to point at.
type Customer struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
