package controllers

import (
	"context"
	"time"

	"github.com/go-playground/validator"

	"github.com/LokeshAnde180/docspot/configuration"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/payment"
)

var validate = validator.New()

// Store is the persistence surface the handlers depend on. storage.Store is
// the production implementation.
type Store interface {
	CreateUser(user *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserExists(username, email string) (bool, error)
	ListUsers() ([]models.User, error)
	ApproveDoctor(userID uint) (*models.User, *models.DoctorProfile, error)
	DeleteUserCascade(user *models.User) error

	CreateProfile(profile *models.DoctorProfile) error
	ProfileByUserID(userID uint) (*models.DoctorProfile, error)
	UpdateProfile(profile *models.DoctorProfile) error
	ListApprovedDoctors() ([]models.DoctorListing, error)

	CreateAppointment(appointment *models.Appointment) error
	AppointmentByID(id uint) (*models.Appointment, error)
	SaveAppointment(appointment *models.Appointment) error
	AppointmentsByCustomer(customerID uint) ([]models.AppointmentWithDoctor, error)
	AppointmentsByDoctor(doctorID uint) ([]models.AppointmentWithCustomer, error)
}

// Cache is the slice of the Redis client the handlers use. A nil cache
// disables caching without touching handler logic.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Mailer sends courtesy mail. Delivery is best-effort; a failure is logged
// and never fails the request.
type Mailer interface {
	Send(subject, to, body, attachmentName string, attachment []byte) error
}

// Handler carries the injected collaborators for every route.
type Handler struct {
	store    Store
	cache    Cache
	mailer   Mailer
	payments payment.Provider
	cfg      *configuration.Config
}

func New(store Store, cache Cache, mailer Mailer, payments payment.Provider, cfg *configuration.Config) *Handler {
	return &Handler{
		store:    store,
		cache:    cache,
		mailer:   mailer,
		payments: payments,
		cfg:      cfg,
	}
}
