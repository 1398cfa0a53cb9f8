package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LokeshAnde180/docspot/configuration"
	"github.com/LokeshAnde180/docspot/controllers"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/payment"
	"github.com/LokeshAnde180/docspot/routes"
	"github.com/LokeshAnde180/docspot/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is a map-backed Store so the full HTTP surface runs without a
// database.
type memStore struct {
	users        map[uint]*models.User
	profiles     map[uint]*models.DoctorProfile
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uint]*models.User),
		profiles:     make(map[uint]*models.DoctorProfile),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (s *memStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) CreateUser(user *models.User) error {
	user.ID = s.id()
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *memStore) UserByID(id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memStore) UserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) UserExists(username, email string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListUsers() ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) ApproveDoctor(userID uint) (*models.User, *models.DoctorProfile, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, nil, storage.ErrNotFound
	}
	var profile *models.DoctorProfile
	for _, p := range s.profiles {
		if p.UserID == userID {
			profile = p
			break
		}
	}
	if profile == nil {
		return nil, nil, storage.ErrNotFound
	}
	user.IsApproved = true
	profile.IsApproved = true
	return user, profile, nil
}

func (s *memStore) DeleteUserCascade(user *models.User) error {
	switch user.Role {
	case models.RoleDoctor:
		for id, p := range s.profiles {
			if p.UserID == user.ID {
				delete(s.profiles, id)
			}
		}
		for id, a := range s.appointments {
			if a.DoctorID == user.ID {
				delete(s.appointments, id)
			}
		}
	case models.RoleCustomer:
		for id, a := range s.appointments {
			if a.CustomerID == user.ID {
				delete(s.appointments, id)
			}
		}
	}
	delete(s.users, user.ID)
	return nil
}

func (s *memStore) CreateProfile(profile *models.DoctorProfile) error {
	profile.ID = s.id()
	profile.CreatedAt = time.Now()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memStore) ProfileByUserID(userID uint) (*models.DoctorProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) UpdateProfile(profile *models.DoctorProfile) error {
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memStore) ListApprovedDoctors() ([]models.DoctorListing, error) {
	out := make([]models.DoctorListing, 0, len(s.profiles))
	for _, p := range s.profiles {
		if !p.IsApproved {
			continue
		}
		listing := models.DoctorListing{DoctorProfile: *p}
		if u, ok := s.users[p.UserID]; ok {
			listing.User = u.Summary()
		}
		out = append(out, listing)
	}
	return out, nil
}

func (s *memStore) CreateAppointment(appointment *models.Appointment) error {
	appointment.ID = s.id()
	appointment.CreatedAt = time.Now()
	s.appointments[appointment.ID] = appointment
	return nil
}

func (s *memStore) AppointmentByID(id uint) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memStore) SaveAppointment(appointment *models.Appointment) error {
	s.appointments[appointment.ID] = appointment
	return nil
}

func (s *memStore) AppointmentsByCustomer(customerID uint) ([]models.AppointmentWithDoctor, error) {
	out := make([]models.AppointmentWithDoctor, 0, len(s.appointments))
	for _, a := range s.appointments {
		if a.CustomerID != customerID {
			continue
		}
		item := models.AppointmentWithDoctor{Appointment: *a}
		if u, ok := s.users[a.DoctorID]; ok {
			item.Doctor = u.Summary()
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) AppointmentsByDoctor(doctorID uint) ([]models.AppointmentWithCustomer, error) {
	out := make([]models.AppointmentWithCustomer, 0, len(s.appointments))
	for _, a := range s.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		item := models.AppointmentWithCustomer{Appointment: *a}
		if u, ok := s.users[a.CustomerID]; ok {
			item.Customer = u.Summary()
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func testRouter(store controllers.Store) *gin.Engine {
	cfg := &configuration.Config{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		DoctorEmailDomain: "@chetan.doctor",
		ConsultationFee:   50000,
		AllowedOrigins:    []string{"http://localhost:3000"},
	}
	h := controllers.New(store, nil, nil, payment.Mock{}, cfg)
	return routes.Setup(h, cfg)
}

type client struct {
	t *testing.T
	r *gin.Engine
}

func (c *client) do(method, path, token, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedAdmin(t *testing.T, store *memStore) *models.User {
	t.Helper()
	admin := &models.User{Username: "admin", Email: "admin@docspot.local", Role: models.RoleAdmin, IsApproved: true}
	require.NoError(t, admin.SetPassword("admin-pass"))
	require.NoError(t, store.CreateUser(admin))
	return admin
}

func loginAdmin(t *testing.T, c *client) string {
	t.Helper()
	w := c.do(http.MethodPost, "/auth/login", "",
		`{"email":"admin@docspot.local","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	return decode(t, w)["token"].(string)
}

func TestLiveness(t *testing.T) {
	c := &client{t: t, r: testRouter(newMemStore())}
	w := c.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API is running...", w.Body.String())
}

// The full lifecycle over the real router: doctor registers unapproved, admin
// approves, customer books and pays, doctor completes.
func TestAppointmentLifecycle(t *testing.T) {
	store := newMemStore()
	c := &client{t: t, r: testRouter(store)}
	seedAdmin(t, store)

	// Doctor registers through the reserved domain: doctor role, unapproved.
	w := c.do(http.MethodPost, "/auth/register", "",
		`{"username":"drjones","email":"doc@chetan.doctor","password":"secret99"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "doctor", resp["role"])
	doctorToken := resp["token"].(string)

	doctor, err := store.UserByEmail("doc@chetan.doctor")
	require.NoError(t, err)
	assert.False(t, doctor.IsApproved)

	// Customer registers and sees no doctors yet.
	w = c.do(http.MethodPost, "/auth/register", "",
		`{"username":"ravi","email":"ravi@gmail.com","password":"secret99"}`)
	require.Equal(t, http.StatusOK, w.Code)
	customerToken := decode(t, w)["token"].(string)

	w = c.do(http.MethodGet, "/customer/doctors", customerToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	// Admin approval flips user and profile together.
	adminToken := loginAdmin(t, c)
	w = c.do(http.MethodPut, fmt.Sprintf("/admin/doctors/%d/approve", doctor.ID), adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	doctor, err = store.UserByEmail("doc@chetan.doctor")
	require.NoError(t, err)
	profile, err := store.ProfileByUserID(doctor.ID)
	require.NoError(t, err)
	assert.True(t, doctor.IsApproved)
	assert.True(t, profile.IsApproved)

	// Customer books: pending and unpaid.
	w = c.do(http.MethodPost, "/customer/appointments", customerToken,
		fmt.Sprintf(`{"doctorId":%d,"date":"2026-09-01","time":"10:30","isEmergency":false}`, doctor.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	appointment := decode(t, w)["appointment"].(map[string]any)
	appointmentID := uint(appointment["id"].(float64))
	assert.Equal(t, "pending", appointment["status"])
	assert.Equal(t, "pending", appointment["paymentStatus"])

	// Paying promotes the request to scheduled.
	w = c.do(http.MethodPost, fmt.Sprintf("/customer/appointments/%d/pay", appointmentID),
		customerToken, `{"paymentMethod":"card"}`)
	require.Equal(t, http.StatusOK, w.Code)
	paid := decode(t, w)["appointment"].(map[string]any)
	assert.Equal(t, "scheduled", paid["status"])
	assert.Equal(t, "paid", paid["paymentStatus"])

	// Doctor sees the booking in the queue and completes it.
	w = c.do(http.MethodGet, "/doctor/appointments", doctorToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.AppointmentWithCustomer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Len(t, queue, 1)
	assert.Equal(t, "ravi", queue[0].Customer.Username)

	w = c.do(http.MethodPut, fmt.Sprintf("/doctor/appointments/%d/status", appointmentID),
		doctorToken, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	final, err := store.AppointmentByID(appointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
	assert.Equal(t, models.PaymentPaid, final.PaymentStatus)

	// A completed appointment cannot be cancelled.
	w = c.do(http.MethodPut, fmt.Sprintf("/customer/appointments/%d/cancel", appointmentID),
		customerToken, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Role gates on the admin surface return the exact denial body.
	w = c.do(http.MethodGet, "/admin/users", customerToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"msg":"Access denied, not an admin"}`, w.Body.String())
}

// An admin passes the customer gate but not the doctor gate.
func TestAdminGateCrossover(t *testing.T) {
	store := newMemStore()
	c := &client{t: t, r: testRouter(store)}
	seedAdmin(t, store)
	adminToken := loginAdmin(t, c)

	w := c.do(http.MethodGet, "/customer/doctors", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/doctor/appointments", adminToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"msg":"Access denied, not a doctor"}`, w.Body.String())
}

// Deleting a doctor removes exactly that doctor's profile and appointments.
func TestDeleteDoctorCascadeScoped(t *testing.T) {
	store := newMemStore()
	c := &client{t: t, r: testRouter(store)}
	seedAdmin(t, store)

	doomed := &models.User{Username: "drdoom", Email: "doom@chetan.doctor", Role: models.RoleDoctor, IsApproved: true}
	require.NoError(t, doomed.SetPassword("pw123456"))
	require.NoError(t, store.CreateUser(doomed))
	require.NoError(t, store.CreateProfile(&models.DoctorProfile{UserID: doomed.ID, Specialty: "ENT", IsApproved: true}))

	other := &models.User{Username: "drsafe", Email: "safe@chetan.doctor", Role: models.RoleDoctor, IsApproved: true}
	require.NoError(t, other.SetPassword("pw123456"))
	require.NoError(t, store.CreateUser(other))
	require.NoError(t, store.CreateProfile(&models.DoctorProfile{UserID: other.ID, Specialty: "GP", IsApproved: true}))

	customer := &models.User{Username: "ravi", Email: "ravi@gmail.com", Role: models.RoleCustomer, IsApproved: true}
	require.NoError(t, customer.SetPassword("pw123456"))
	require.NoError(t, store.CreateUser(customer))

	require.NoError(t, store.CreateAppointment(&models.Appointment{CustomerID: customer.ID, DoctorID: doomed.ID, Date: "2026-09-01", Time: "09:00"}))
	require.NoError(t, store.CreateAppointment(&models.Appointment{CustomerID: customer.ID, DoctorID: other.ID, Date: "2026-09-01", Time: "10:00"}))

	adminToken := loginAdmin(t, c)
	w := c.do(http.MethodDelete, fmt.Sprintf("/admin/users/%d", doomed.ID), adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	_, err := store.UserByID(doomed.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.ProfileByUserID(doomed.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	remaining, err := store.AppointmentsByDoctor(other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	kept, err := store.ProfileByUserID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "GP", kept.Specialty)
}

// Customer history comes back most recent first with the doctor joined in.
func TestMyAppointmentsOrdering(t *testing.T) {
	store := newMemStore()
	c := &client{t: t, r: testRouter(store)}

	doctor := &models.User{Username: "drjones", Email: "doc@chetan.doctor", Role: models.RoleDoctor, IsApproved: true}
	require.NoError(t, doctor.SetPassword("pw123456"))
	require.NoError(t, store.CreateUser(doctor))
	require.NoError(t, store.CreateProfile(&models.DoctorProfile{UserID: doctor.ID, Specialty: "GP", IsApproved: true}))

	w := c.do(http.MethodPost, "/auth/register", "",
		`{"username":"ravi","email":"ravi@gmail.com","password":"secret99"}`)
	require.Equal(t, http.StatusOK, w.Code)
	customerToken := decode(t, w)["token"].(string)
	customer, err := store.UserByEmail("ravi@gmail.com")
	require.NoError(t, err)

	first := &models.Appointment{CustomerID: customer.ID, DoctorID: doctor.ID, Date: "2026-09-01", Time: "09:00"}
	require.NoError(t, store.CreateAppointment(first))
	first.CreatedAt = first.CreatedAt.Add(-time.Hour)
	require.NoError(t, store.SaveAppointment(first))
	second := &models.Appointment{CustomerID: customer.ID, DoctorID: doctor.ID, Date: "2026-08-01", Time: "09:00"}
	require.NoError(t, store.CreateAppointment(second))

	w = c.do(http.MethodGet, "/customer/appointments/me", customerToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.AppointmentWithDoctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, "drjones", history[0].Doctor.Username)
}
