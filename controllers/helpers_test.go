package controllers

import (
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/configuration"
	"github.com/LokeshAnde180/docspot/models"
	"github.com/LokeshAnde180/docspot/payment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *configuration.Config {
	return &configuration.Config{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		DoctorEmailDomain: "@chetan.doctor",
		ConsultationFee:   50000,
	}
}

func newTestHandler(store Store) *Handler {
	return New(store, nil, nil, payment.Mock{}, testConfig())
}

// asRole fakes an authenticated identity, standing in for the Authenticate
// middleware so handler tests exercise only the handler under test.
func asRole(id uint, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authentication.ClaimsKey, &authentication.Claims{
			ID:       id,
			Role:     role,
			Username: "tester",
		})
		c.Next()
	}
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
