package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/storage"
)

type registerInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates an account. The role is derived from the email domain:
// the reserved doctor domain registers as an unapproved doctor with a
// placeholder profile, everyone else as an approved customer.
func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all the mandatory fields"})
		return
	}

	exists, err := h.store.UserExists(input.Username, input.Email)
	if err != nil {
		logrus.WithError(err).Error("register: duplicate check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exists"})
		return
	}

	role := models.DeriveRole(input.Email, h.cfg.DoctorEmailDomain)
	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Role:     role,
		// Doctors stay unapproved until an admin signs off.
		IsApproved: role != models.RoleDoctor,
	}
	if err := user.SetPassword(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if err := h.store.CreateUser(&user); err != nil {
		logrus.WithError(err).Error("register: failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if role == models.RoleDoctor {
		profile := models.DoctorProfile{
			UserID:     user.ID,
			Specialty:  "Not specified",
			IsApproved: false,
		}
		if err := h.store.CreateProfile(&profile); err != nil {
			logrus.WithError(err).Error("register: failed to create doctor profile")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
	}

	token, err := authentication.GenerateToken(&user, []byte(h.cfg.JWTSecret), h.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"msg":   "Registration successful!",
		"role":  user.Role,
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password return the same body so accounts cannot be enumerated.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all the mandatory fields"})
		return
	}

	user, err := h.store.UserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Credentials"})
			return
		}
		logrus.WithError(err).Error("login: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if err := user.CheckPassword(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Credentials"})
		return
	}

	token, err := authentication.GenerateToken(user, []byte(h.cfg.JWTSecret), h.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"msg":   "Login successful!",
		"role":  user.Role,
		"user": gin.H{
			"id":         user.ID,
			"role":       user.Role,
			"username":   user.Username,
			"isApproved": user.IsApproved,
		},
	})
}

// CurrentUser returns the caller's account, password excluded. The row is
// read fresh from the store rather than echoed from the token claims.
func (h *Handler) CurrentUser(c *gin.Context) {
	claims, ok := authentication.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	user, err := h.store.UserByID(claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, user)
}
