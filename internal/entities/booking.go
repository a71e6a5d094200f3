package entities

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known statuses. Any valid status may
// follow any other; there is no transition graph.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking is an appointment a user holds for a service.
type Booking struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint          `gorm:"not null;index" json:"userId"`
	ServiceID uint          `gorm:"not null;index" json:"serviceId"`
	StartDate time.Time     `gorm:"not null" json:"startDate"`
	EndDate   time.Time     `gorm:"not null" json:"endDate"`
	Status    BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Service   *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsOwnedBy reports whether userID may mutate the booking.
func (b *Booking) IsOwnedBy(userID uint) bool {
	return b.UserID == userID
}
