package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/internal/application"
	"github.com/oksasatya/go-ddd-todo-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-todo-api/pkg/response"
)

var errorStatuses = []struct {
	kind   error
	status int
}{
	{application.ErrValidation, http.StatusBadRequest},
	{application.ErrUnauthenticated, http.StatusUnauthorized},
	{application.ErrForbidden, http.StatusForbidden},
	{application.ErrNotFound, http.StatusNotFound},
	{application.ErrConflict, http.StatusConflict},
	{application.ErrUnavailable, http.StatusServiceUnavailable},
}

// respondError maps service errors onto HTTP statuses. Anything outside the
// taxonomy is logged and reported as a bare 500.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.kind) {
			response.Error(c, e.status, strings.TrimPrefix(err.Error(), e.kind.Error()+": "), nil)
			return
		}
	}
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.GetString(response.RequestIDKey),
	})
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}
