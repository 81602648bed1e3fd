package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/investkaro/backend/internal/domain/shared"
)

func TestBaseHandlerHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"invalid state", shared.NewDomainError("INVALID_STATE", "payment is already verified"), http.StatusConflict, "INVALID_STATE"},
		{"window expired", shared.ErrWindowExpired, http.StatusGone, "WINDOW_EXPIRED"},
		{"plain error hides internals", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
			if tt.code == "INTERNAL_ERROR" {
				assert.NotContains(t, w.Body.String(), "pq:")
			}
		})
	}
}

func TestBaseHandlerPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := h.pathID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
