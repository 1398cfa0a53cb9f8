package models

import "time"

// DoctorProfile is owned 1:1 by a user with the doctor role. Its IsApproved
// flag is written together with the owning user's by the approval workflow,
// never independently.
type DoctorProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"userId"`
	Specialty  string    `gorm:"size:255;not null" json:"specialty"`
	ClinicName string    `gorm:"size:255" json:"clinicName"`
	Address    string    `json:"address"`
	Phone      string    `gorm:"size:32" json:"phone"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DoctorListing is an approved profile joined with the owning user's identity,
// as shown to customers.
type DoctorListing struct {
	DoctorProfile
	User UserSummary `json:"user" gorm:"-"`
}
