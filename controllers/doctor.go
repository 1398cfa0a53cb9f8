package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/storage"
)

type profileInput struct {
	Specialty  string `json:"specialty"`
	ClinicName string `json:"clinicName"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

// UpsertProfile updates the caller's profile in place, or creates it
// unapproved when none exists. The approval flag is never touched here.
func (h *Handler) UpsertProfile(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	var input profileInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	profile, err := h.store.ProfileByUserID(claims.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.WithError(err).Error("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if profile != nil {
		profile.Specialty = input.Specialty
		profile.ClinicName = input.ClinicName
		profile.Address = input.Address
		profile.Phone = input.Phone
		if err := h.store.UpdateProfile(profile); err != nil {
			logrus.WithError(err).Error("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		h.invalidateDoctorCache(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"msg": "Doctor profile updated", "profile": profile})
		return
	}

	profile = &models.DoctorProfile{
		UserID:     claims.ID,
		Specialty:  input.Specialty,
		ClinicName: input.ClinicName,
		Address:    input.Address,
		Phone:      input.Phone,
		IsApproved: false,
	}
	if err := h.store.CreateProfile(profile); err != nil {
		logrus.WithError(err).Error("profile create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Doctor profile created", "profile": profile})
}

// MyProfile returns the caller's profile with the owning user's identity and
// approval state joined in.
func (h *Handler) MyProfile(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	profile, err := h.store.ProfileByUserID(claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Doctor profile not found"})
			return
		}
		logrus.WithError(err).Error("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	user, err := h.store.UserByID(claims.ID)
	if err != nil {
		logrus.WithError(err).Error("profile owner lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"user": gin.H{
			"username":   user.Username,
			"email":      user.Email,
			"isApproved": user.IsApproved,
		},
	})
}

// Appointments returns the caller's queue in chronological order, customer
// identity joined in. Emergency-first ordering is applied by the frontend.
func (h *Handler) Appointments(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	appointments, err := h.store.AppointmentsByDoctor(claims.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to list doctor appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

type appointmentUpdateInput struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// UpdateAppointment serves both status changes and rescheduling. Whatever
// fields arrive are applied independently: any status is settable from any
// other, and date changes carry no past-date check.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	var input appointmentUpdateInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Appointment not found"})
		return
	}

	appointment, err := h.store.AppointmentByID(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Appointment not found"})
			return
		}
		logrus.WithError(err).Error("appointment lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if appointment.DoctorID != claims.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized to update this appointment"})
		return
	}

	if input.Status != "" {
		status, err := models.ParseAppointmentStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid status"})
			return
		}
		appointment.Status = status
	}
	if input.Date != "" {
		appointment.Date = input.Date
	}
	if input.Time != "" {
		appointment.Time = input.Time
	}

	if err := h.store.SaveAppointment(appointment); err != nil {
		logrus.WithError(err).Error("appointment update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":         "Appointment updated successfully",
		"appointment": appointment,
	})
}
