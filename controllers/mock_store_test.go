package controllers

import (
	"github.com/stretchr/testify/mock"

	"github.com/LokeshAnde180/docspot/models"
)

// MockStore is a testify mock of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) UserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UserExists(username, email string) (bool, error) {
	args := m.Called(username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListUsers() ([]models.User, error) {
	args := m.Called()
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ApproveDoctor(userID uint) (*models.User, *models.DoctorProfile, error) {
	args := m.Called(userID)
	var user *models.User
	var profile *models.DoctorProfile
	if u := args.Get(0); u != nil {
		user = u.(*models.User)
	}
	if p := args.Get(1); p != nil {
		profile = p.(*models.DoctorProfile)
	}
	return user, profile, args.Error(2)
}

func (m *MockStore) DeleteUserCascade(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) CreateProfile(profile *models.DoctorProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockStore) ProfileByUserID(userID uint) (*models.DoctorProfile, error) {
	args := m.Called(userID)
	if p := args.Get(0); p != nil {
		return p.(*models.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UpdateProfile(profile *models.DoctorProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockStore) ListApprovedDoctors() ([]models.DoctorListing, error) {
	args := m.Called()
	if l := args.Get(0); l != nil {
		return l.([]models.DoctorListing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateAppointment(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockStore) AppointmentByID(id uint) (*models.Appointment, error) {
	args := m.Called(id)
	if a := args.Get(0); a != nil {
		return a.(*models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveAppointment(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockStore) AppointmentsByCustomer(customerID uint) ([]models.AppointmentWithDoctor, error) {
	args := m.Called(customerID)
	if a := args.Get(0); a != nil {
		return a.([]models.AppointmentWithDoctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) AppointmentsByDoctor(doctorID uint) ([]models.AppointmentWithCustomer, error) {
	args := m.Called(doctorID)
	if a := args.Get(0); a != nil {
		return a.([]models.AppointmentWithCustomer), args.Error(1)
	}
	return nil, args.Error(1)
}
