package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func OKWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func OKPaginated(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// BadRequest reports a binding failure. Validator errors are broken out into a
// field->message list; anything else (malformed JSON, type mismatch) becomes a
// bare message.
func BadRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   fieldName(fe),
				Message: fieldMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: "Validation errors",
			Errors:  fieldErrors,
		})
		return
	}
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Invalid request payload: " + err.Error(),
	})
}

func fieldName(fe validator.FieldError) string {
	// Namespace looks like "SubmitCartRequest.Items[0].Quantity"; drop the
	// leading struct name and lower-case the first rune of each segment so the
	// reported field matches the JSON-ish casing clients sent.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " in length or value"
	case "max":
		return "must be at most " + fe.Param() + " in length or value"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid id"
	case "alphanum":
		return "may only contain letters and numbers"
	default:
		return "is invalid"
	}
}
