package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type signupShape struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type patchShape struct {
	Title     *string `json:"title" binding:"omitempty,title"`
	Completed *bool   `json:"completed"`
}

func bind(t *testing.T, body string, dst any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dst)
}

func TestToDetails_UsesJSONFieldNames(t *testing.T) {
	var req signupShape
	err := bind(t, `{"email":"nope","password":"123"}`, &req)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters long", details["password"])
}

func TestToDetails_Required(t *testing.T) {
	var req signupShape
	err := bind(t, `{}`, &req)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}

func TestToDetails_EmptyBody(t *testing.T) {
	var req signupShape
	err := bind(t, ``, &req)

	assert.Equal(t, map[string]string{"payload": "request body is required"}, ToDetails(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var req signupShape
	err := bind(t, `{"email":`, &req)

	assert.Contains(t, ToDetails(err), "payload")
}

func TestToDetails_WrongType(t *testing.T) {
	var req patchShape
	err := bind(t, `{"completed":"yes"}`, &req)

	assert.Equal(t, "must be of type bool", ToDetails(err)["completed"])
}

func TestToDetails_EmptyTitlePointer(t *testing.T) {
	var req patchShape
	err := bind(t, `{"title":""}`, &req)

	assert.Equal(t, "must be between 1 and 255 characters long", ToDetails(err)["title"])
}

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
