package models

import "time"

type Role string

const (
	RoleDriver    Role = "Driver"
	RolePassenger Role = "Passenger"
)

func (r Role) Valid() bool {
	return r == RoleDriver || r == RolePassenger
}

// SentinelDriverID is the placeholder driver every new ride references until a
// real driver accepts it. The matching row is seeded at store initialization.
const SentinelDriverID int64 = -1

type User struct {
	UserID      int64     `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number"`
	Role        Role      `gorm:"type:varchar(20);not null;check:role IN ('Driver','Passenger')" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
