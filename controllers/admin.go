package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/storage"
)

// ListUsers returns every account, credentials excluded.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers()
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ApproveDoctor flips the approval flag on the doctor user and their profile
// together. The store runs the dual write in one transaction.
func (h *Handler) ApproveDoctor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Doctor not found or not a doctor role"})
		return
	}

	user, err := h.store.UserByID(uint(id))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.WithError(err).Error("approve: user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if user == nil || user.Role != models.RoleDoctor {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Doctor not found or not a doctor role"})
		return
	}

	user, profile, err := h.store.ApproveDoctor(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Doctor profile not found"})
			return
		}
		logrus.WithError(err).Error("approve: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	h.invalidateDoctorCache(c.Request.Context())
	go h.notifyApproval(user)

	c.JSON(http.StatusOK, gin.H{
		"msg":           "Doctor approved successfully",
		"user":          user,
		"doctorProfile": profile,
	})
}

// DeleteUser removes an account and everything that hangs off it. Admin
// accounts and the caller's own account are protected.
func (h *Handler) DeleteUser(c *gin.Context) {
	claims, _ := authentication.CurrentClaims(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	target, err := h.store.UserByID(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		logrus.WithError(err).Error("delete: user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if target.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Cannot delete an admin user."})
		return
	}
	if target.ID == claims.ID {
		c.JSON(http.StatusForbidden, gin.H{"msg": "You cannot delete your own account."})
		return
	}

	if err := h.store.DeleteUserCascade(target); err != nil {
		logrus.WithError(err).Error("delete: cascade failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if target.Role == models.RoleDoctor {
		h.invalidateDoctorCache(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User and associated data removed"})
}

// notifyApproval mails the doctor that their account went live. Best-effort.
func (h *Handler) notifyApproval(user *models.User) {
	if h.mailer == nil {
		return
	}
	body := fmt.Sprintf("Hello %s,\n\nYour doctor account has been approved. Customers can now find you and book appointments.", user.Username)
	if err := h.mailer.Send("Your account has been approved", user.Email, body, "", nil); err != nil {
		logrus.WithError(err).Warn("approval email failed")
	}
}
