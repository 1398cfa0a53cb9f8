// Package storage is the persistence service behind the route handlers. It is
// constructed from an open GORM handle and injected into the handler set, so
// nothing in the application reaches for a package-level connection.
package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/LokeshAnde180/docspot/models"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserExists reports whether an account already uses the username or email.
func (s *Store) UserExists(username, email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveDoctor flips the approval flag on the user and the profile in one
// transaction so the two records can never diverge.
func (s *Store) ApproveDoctor(userID uint) (*models.User, *models.DoctorProfile, error) {
	var user models.User
	var profile models.DoctorProfile

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return translate(err)
		}
		user.IsApproved = true
		profile.IsApproved = true
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}

// DeleteUserCascade removes the user together with everything hanging off the
// account: the doctor profile for doctors, and every appointment where the
// user is the doctor or the customer. All-or-nothing.
func (s *Store) DeleteUserCascade(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		switch user.Role {
		case models.RoleDoctor:
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.DoctorProfile{}).Error; err != nil {
				return err
			}
			if err := tx.Where("doctor_id = ?", user.ID).Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		case models.RoleCustomer:
			if err := tx.Where("customer_id = ?", user.ID).Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
}

func (s *Store) CreateProfile(profile *models.DoctorProfile) error {
	return s.db.Create(profile).Error
}

func (s *Store) ProfileByUserID(userID uint) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *Store) UpdateProfile(profile *models.DoctorProfile) error {
	return s.db.Save(profile).Error
}

// ListApprovedDoctors returns every approved profile joined with the owning
// user's identity.
func (s *Store) ListApprovedDoctors() ([]models.DoctorListing, error) {
	var profiles []models.DoctorProfile
	if err := s.db.Where("is_approved = ?", true).Find(&profiles).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
	}
	users, err := s.usersByID(userIDs)
	if err != nil {
		return nil, err
	}

	listings := make([]models.DoctorListing, 0, len(profiles))
	for _, p := range profiles {
		listings = append(listings, models.DoctorListing{
			DoctorProfile: p,
			User:          users[p.UserID],
		})
	}
	return listings, nil
}

func (s *Store) CreateAppointment(appointment *models.Appointment) error {
	return s.db.Create(appointment).Error
}

func (s *Store) AppointmentByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (s *Store) SaveAppointment(appointment *models.Appointment) error {
	return s.db.Save(appointment).Error
}

// AppointmentsByCustomer lists a customer's bookings, most recent first.
func (s *Store) AppointmentsByCustomer(customerID uint) ([]models.AppointmentWithDoctor, error) {
	var appointments []models.Appointment
	err := s.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	doctorIDs := make([]uint, 0, len(appointments))
	for _, a := range appointments {
		doctorIDs = append(doctorIDs, a.DoctorID)
	}
	doctors, err := s.usersByID(doctorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.AppointmentWithDoctor, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, models.AppointmentWithDoctor{
			Appointment: a,
			Doctor:      doctors[a.DoctorID],
		})
	}
	return out, nil
}

// AppointmentsByDoctor lists a doctor's queue in chronological order. The
// emergency flag does not enter the ordering here; emergency-first sorting is
// a presentation concern.
func (s *Store) AppointmentsByDoctor(doctorID uint) ([]models.AppointmentWithCustomer, error) {
	var appointments []models.Appointment
	err := s.db.Where("doctor_id = ?", doctorID).
		Order("date ASC, time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uint, 0, len(appointments))
	for _, a := range appointments {
		customerIDs = append(customerIDs, a.CustomerID)
	}
	customers, err := s.usersByID(customerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.AppointmentWithCustomer, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, models.AppointmentWithCustomer{
			Appointment: a,
			Customer:    customers[a.CustomerID],
		})
	}
	return out, nil
}

func (s *Store) usersByID(ids []uint) (map[uint]models.UserSummary, error) {
	summaries := make(map[uint]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		summaries[u.ID] = u.Summary()
	}
	return summaries, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
