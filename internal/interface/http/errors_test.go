package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-todo-api/internal/application"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "validation", err: fmt.Errorf("%w: title is required", application.ErrValidation), status: http.StatusBadRequest, message: "title is required"},
		{name: "credentials", err: application.ErrInvalidCredentials, status: http.StatusUnauthorized, message: "invalid credentials"},
		{name: "owner", err: application.ErrNotOwner, status: http.StatusForbidden, message: "not your todo"},
		{name: "todo missing", err: application.ErrTodoNotFound, status: http.StatusNotFound, message: "todo not found"},
		{name: "user missing", err: application.ErrUserNotFound, status: http.StatusNotFound, message: "user not found"},
		{name: "email taken", err: application.ErrEmailTaken, status: http.StatusConflict, message: "email already in use"},
		{name: "attachments off", err: application.ErrAttachmentsOff, status: http.StatusServiceUnavailable, message: "attachments are not configured"},
		{name: "unknown", err: errors.New("pq: connection reset"), status: http.StatusInternalServerError, message: "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, logger, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, w.Body.String(), "pq:")

			if tt.status == http.StatusInternalServerError {
				require.Len(t, hook.Entries, 1)
			} else {
				assert.Empty(t, hook.Entries)
			}
		})
	}
}

func TestHealth_Unavailable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewHealthHandler(func(ctx context.Context) error { return errors.New("dial tcp: refused") }, logger)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
}
