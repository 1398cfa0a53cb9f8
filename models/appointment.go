package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// AppointmentStatus is the booking state. Transitions are deliberately
// permissive: a doctor may set any status from any other, only the customer
// cancel path refuses terminal states.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a client-supplied status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// PaymentStatus tracks the mocked payment step.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Appointment links a customer and a doctor by user id only. It is never
// hard-deleted except as a cascade when either account is removed.
type Appointment struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CustomerID    uint              `gorm:"not null;index" json:"customerId"`
	DoctorID      uint              `gorm:"not null;index" json:"doctorId"`
	Date          string            `gorm:"size:32;not null" json:"date"`
	Time          string            `gorm:"size:32;not null" json:"time"`
	Documents     pq.StringArray    `gorm:"type:text[]" json:"documents"`
	Notes         string            `json:"notes"`
	IsEmergency   bool              `json:"isEmergency"`
	Status        AppointmentStatus `gorm:"size:16;default:pending" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"size:16;default:pending" json:"paymentStatus"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// AppointmentWithDoctor is a customer's appointment with the doctor's
// identity joined in.
type AppointmentWithDoctor struct {
	Appointment
	Doctor UserSummary `json:"doctor" gorm:"-"`
}

// AppointmentWithCustomer is a doctor's queue entry with the customer's
// identity joined in.
type AppointmentWithCustomer struct {
	Appointment
	Customer UserSummary `json:"customer" gorm:"-"`
}
