package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/internal/application"
	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-todo-api/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-todo-api/pkg/response"
	"github.com/oksasatya/go-ddd-todo-api/pkg/validation"
)

type TodoHandler struct {
	Svc            *application.TodoService
	Logger         logrus.FieldLogger
	MaxUploadBytes int64
}

func NewTodoHandler(svc *application.TodoService, logger logrus.FieldLogger, maxUploadBytes int64) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type createTodoRequest struct {
	Title       string  `json:"title" binding:"required,title"`
	Description *string `json:"description"`
}

// Absent fields stay nil and are left unchanged.
type updateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func requester(c *gin.Context) (entity.Requester, bool) {
	who, ok := middleware.RequesterFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthenticated", nil)
	}
	return who, ok
}

func (h *TodoHandler) Create(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), application.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	}, who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, t)
}

func (h *TodoHandler) List(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	todos, err := h.Svc.ListMine(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, todos)
}

// Search handles GET /todos/search?q=<text>&limit=<n>.
func (h *TodoHandler) Search(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = n
	}

	todos, err := h.Svc.Search(c.Request.Context(), c.Query("q"), limit, who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, todos)
}

func (h *TodoHandler) Get(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	t, err := h.Svc.GetOne(c.Request.Context(), c.Param("id"), who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

func (h *TodoHandler) Update(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}, who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Svc.Remove(c.Request.Context(), id, who); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// Attach stores the multipart "file" field as the todo's attachment.
func (h *TodoHandler) Attach(c *gin.Context) {
	who, ok := requester(c)
	if !ok {
		return
	}
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	t, err := h.Svc.AttachFile(c.Request.Context(), c.Param("id"), application.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, who)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}
