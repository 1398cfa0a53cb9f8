package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/payment"
	"github.com/LokeshAnde180/docspot/storage"
)

const (
	approvedDoctorsKey = "doctors:approved"
	approvedDoctorsTTL = 5 * time.Minute
)

// ListDoctors returns every approved doctor joined with the owning user's
// identity. The listing is served from Redis when a cached copy exists; a
// cache error falls through to the database.
func (h *Handler) ListDoctors(c *gin.Context) {
	if h.cache != nil {
		if raw, err := h.cache.Get(c.Request.Context(), approvedDoctorsKey); err == nil {
			var cached []models.DoctorListing
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	doctors, err := h.store.ListApprovedDoctors()
	if err != nil {
		logrus.WithError(err).Error("failed to list approved doctors")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(doctors); err == nil {
			if err := h.cache.Set(c.Request.Context(), approvedDoctorsKey, raw, approvedDoctorsTTL); err != nil {
				logrus.WithError(err).Warn("failed to cache doctor listing")
			}
		}
	}
	c.JSON(http.StatusOK, doctors)
}

type bookingInput struct {
	DoctorID    uint     `json:"doctorId" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Documents   []string `json:"documents"`
	Notes       string   `json:"notes"`
	IsEmergency bool     `json:"isEmergency"`
}

// BookAppointment creates a pending, unpaid appointment against an approved
// doctor. There is no slot-conflict detection: the booking model is
// permissive and two customers may request the same slot.
func (h *Handler) BookAppointment(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	var input bookingInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all the mandatory fields"})
		return
	}

	profile, err := h.store.ProfileByUserID(input.DoctorID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.WithError(err).Error("booking: doctor lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if profile == nil || !profile.IsApproved {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Doctor not found or not yet approved."})
		return
	}

	appointment := models.Appointment{
		CustomerID:    claims.ID,
		DoctorID:      input.DoctorID,
		Date:          input.Date,
		Time:          input.Time,
		Documents:     input.Documents,
		Notes:         input.Notes,
		IsEmergency:   input.IsEmergency,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}
	if err := h.store.CreateAppointment(&appointment); err != nil {
		logrus.WithError(err).Error("booking: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":         `Appointment requested successfully! Proceed to "My Appointments" to pay.`,
		"appointment": appointment,
	})
}

// MyAppointments lists the caller's bookings, most recent first.
func (h *Handler) MyAppointments(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	appointments, err := h.store.AppointmentsByCustomer(claims.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to list customer appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment moves a pending or scheduled appointment to cancelled.
// Completed and already-cancelled appointments are terminal for this path.
// Payment status is untouched; no refund logic exists.
func (h *Handler) CancelAppointment(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	appointment, ok := h.loadOwnAppointment(c, claims.ID, "Not authorized to cancel this appointment")
	if !ok {
		return
	}

	if appointment.Status == models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Cannot cancel a completed appointment."})
		return
	}
	if appointment.Status == models.StatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Appointment is already cancelled."})
		return
	}

	appointment.Status = models.StatusCancelled
	if err := h.store.SaveAppointment(appointment); err != nil {
		logrus.WithError(err).Error("cancel: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":         "Appointment cancelled successfully",
		"appointment": appointment,
	})
}

type payInput struct {
	PaymentMethod string `json:"paymentMethod"`
}

// PayAppointment charges the consultation fee through the configured
// provider. A successful payment promotes a pending request to scheduled.
// Paying twice is refused; a declined charge marks the payment failed and
// leaves the booking status unchanged.
func (h *Handler) PayAppointment(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	var input payInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	appointment, ok := h.loadOwnAppointment(c, claims.ID, "Not authorized to pay for this appointment")
	if !ok {
		return
	}

	if appointment.Status != models.StatusPending && appointment.Status != models.StatusScheduled {
		c.JSON(http.StatusBadRequest, gin.H{"msg": fmt.Sprintf("Cannot pay for an appointment with status: %s", appointment.Status)})
		return
	}
	if appointment.PaymentStatus == models.PaymentPaid {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Payment has already been made for this appointment."})
		return
	}

	result, err := h.payments.Charge(c.Request.Context(), payment.Request{
		AppointmentID: appointment.ID,
		Method:        input.PaymentMethod,
		Amount:        h.cfg.ConsultationFee,
	})
	if err != nil {
		logrus.WithError(err).Error("payment gateway failure")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !result.Succeeded {
		appointment.PaymentStatus = models.PaymentFailed
		if err := h.store.SaveAppointment(appointment); err != nil {
			logrus.WithError(err).Error("payment: save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Payment failed. Please try again."})
		return
	}

	appointment.PaymentStatus = models.PaymentPaid
	if appointment.Status == models.StatusPending {
		appointment.Status = models.StatusScheduled
	}
	if err := h.store.SaveAppointment(appointment); err != nil {
		logrus.WithError(err).Error("payment: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Courtesy mail only; a slow SMTP server must not delay the payment
	// response.
	go h.sendReceipt(claims.ID, appointment, result)

	c.JSON(http.StatusOK, gin.H{
		"msg":         fmt.Sprintf("Payment successful via %s! Appointment is now %s.", input.PaymentMethod, appointment.Status),
		"appointment": appointment,
		"receipt":     result.ReceiptID,
	})
}

// loadOwnAppointment fetches the path-parameter appointment and enforces the
// customer ownership check shared by cancel and pay.
func (h *Handler) loadOwnAppointment(c *gin.Context, customerID uint, denyMsg string) (*models.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Appointment not found"})
		return nil, false
	}

	appointment, err := h.store.AppointmentByID(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Appointment not found"})
			return nil, false
		}
		logrus.WithError(err).Error("appointment lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return nil, false
	}

	if appointment.CustomerID != customerID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": denyMsg})
		return nil, false
	}
	return appointment, true
}

// sendReceipt emails a PDF receipt for a paid appointment. Best-effort: a
// failure is logged and the payment response is unaffected.
func (h *Handler) sendReceipt(customerID uint, appointment *models.Appointment, result payment.Result) {
	if h.mailer == nil {
		return
	}

	customer, err := h.store.UserByID(customerID)
	if err != nil {
		logrus.WithError(err).Warn("receipt: customer lookup failed")
		return
	}
	doctorName := ""
	if doctor, err := h.store.UserByID(appointment.DoctorID); err == nil {
		doctorName = doctor.Username
	}

	pdf, err := generateReceiptPDF(appointment, customer, doctorName, result.ReceiptID)
	if err != nil {
		logrus.WithError(err).Warn("receipt: pdf generation failed")
		return
	}

	body := fmt.Sprintf("Your appointment on %s at %s is confirmed. Receipt %s is attached.",
		appointment.Date, appointment.Time, result.ReceiptID)
	if err := h.mailer.Send("Payment confirmation", customer.Email, body, "receipt.pdf", pdf); err != nil {
		logrus.WithError(err).Warn("receipt: email failed")
	}
}

// invalidateDoctorCache drops the cached approved-doctor listing after any
// write that changes it.
func (h *Handler) invalidateDoctorCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Del(ctx, approvedDoctorsKey); err != nil {
		logrus.WithError(err).Warn("failed to invalidate doctor cache")
	}
}
