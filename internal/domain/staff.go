package domain

import "time"

// StaffKind selects the role-attachment table.
type StaffKind string

const (
	StaffDriver  StaffKind = "DRIVER"
	StaffManager StaffKind = "MANAGER"
)

// StaffRecord is a row of drivers or managers: the lot-scoped identity of a user.
type StaffRecord struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	ParkingSpotID int       `json:"parking_spot_id"`
	Approved      bool      `json:"approved"`
	CreatedAt     time.Time `json:"created_at"`
}

type StaffApplicationDTO struct {
	Role          StaffKind `json:"role" binding:"required,oneof=DRIVER MANAGER"`
	ParkingSpotID int       `json:"parking_spot_id" binding:"required"`
}

// PendingStaff is an unapproved application shown to the super-administrator.
type PendingStaff struct {
	ID          int         `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	User        UserSummary `json:"user"`
	ParkingSpot ParkingSpot `json:"parking_spot"`
}

type LotDriver struct {
	ID   int         `json:"id"`
	User UserSummary `json:"user"`
}
