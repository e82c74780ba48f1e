package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"omitempty,min=18"`
}

func testContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValidate(t *testing.T) {
	c, _ := testContext(`{"email":"jane@example.com","age":30}`)
	var p samplePayload
	assert.True(t, BindAndValidate(c, &p))
	assert.Equal(t, "jane@example.com", p.Email)
}

func TestBindAndValidateRejectsInvalidField(t *testing.T) {
	c, w := testContext(`{"email":"not-an-email"}`)
	var p samplePayload
	assert.False(t, BindAndValidate(c, &p))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email check")
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	c, w := testContext(`{"email":`)
	var p samplePayload
	assert.False(t, BindAndValidate(c, &p))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDescribeValidationError(t *testing.T) {
	err := validate.Struct(samplePayload{Email: "bad", Age: 12})
	assert.Error(t, err)

	msg := describeValidationError(err)
	assert.Contains(t, msg, "Email failed the email check")
	assert.Contains(t, msg, "Age failed the min=18 check")
}
