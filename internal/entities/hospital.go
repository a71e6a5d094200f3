package entities

import "time"

// Hospital is owned by the admin user who created it.
type Hospital struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Services  []Service `gorm:"foreignKey:HospitalID;constraint:OnDelete:CASCADE" json:"services"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// Service is a bookable offering of exactly one hospital.
type Service struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	HospitalID  uint      `gorm:"not null;index" json:"hospitalId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Hospital    *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Service) TableName() string {
	return "services"
}
