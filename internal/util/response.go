package util

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// FormError collects per-field validation messages for one request.
type FormError struct {
	Errors  map[string]string
	Message string
}

func NewFormError(message string) *FormError {
	return &FormError{
		Message: message,
		Errors:  map[string]string{},
	}
}

// Add records msg for field unless the field already failed.
func (e *FormError) Add(field, msg string) {
	if _, ok := e.Errors[field]; !ok {
		e.Errors[field] = msg
	}
}

func (e *FormError) Has(field string) bool {
	_, ok := e.Errors[field]
	return ok
}

func (e *FormError) Empty() bool {
	return len(e.Errors) == 0
}

func (e *FormError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("form error: %s (%s)", e.Message, strings.Join(fields, ", "))
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes the standard error envelope. Outside production the
// cause is echoed as dev_message, plus a stack trace for server errors.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}

	body := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
		Details: params.Details,
	}
	if config.LoadAppConfig().Env != "production" {
		body.DevMessage = params.DevMessage
		if body.DevMessage == "" && len(errs) > 0 && errs[0] != nil {
			body.DevMessage = errs[0].Error()
		}
		body.Trace = params.Trace
		if body.Trace == "" && code >= fiber.StatusInternalServerError {
			body.Trace = string(debug.Stack())
		}
	}
	return c.Status(code).JSON(body)
}
