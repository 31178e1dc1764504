package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Problem types as URI references.
const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeForbidden    = "/problems/forbidden"
	TypeUnauthorized = "/problems/unauthorized"
	TypeInvalidState = "/problems/invalid-state"
	TypeVerification = "/problems/verification-failed"
	TypeConflict     = "/problems/conflict"
	TypeUnavailable  = "/problems/upstream-unavailable"
	TypeBadRequest   = "/problems/bad-request"
	TypeInternal     = "/problems/internal-error"
)

var (
	ProblemValidation   = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	ProblemNotFound     = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ProblemForbidden    = ProblemDetail{Type: TypeForbidden, Title: "Forbidden", Status: http.StatusForbidden}
	ProblemUnauthorized = ProblemDetail{Type: TypeUnauthorized, Title: "Unauthorized", Status: http.StatusUnauthorized}
	ProblemInvalidState = ProblemDetail{Type: TypeInvalidState, Title: "Invalid State", Status: http.StatusConflict}
	ProblemVerification = ProblemDetail{
		Type:   TypeVerification,
		Title:  "Verification Failed",
		Status: http.StatusUnprocessableEntity,
	}
	ProblemConflict    = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	ProblemUnavailable = ProblemDetail{Type: TypeUnavailable, Title: "Service Unavailable", Status: http.StatusServiceUnavailable}
	ProblemBadRequest  = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ProblemInternal    = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// problemFor maps an error kind to its problem response. Internal errors never
// leak their message.
func problemFor(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return ProblemUnauthorized.WithDetail(err.Error())
	case errs.IsValidation(err):
		return ProblemValidation.WithDetail(err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return ProblemNotFound.WithDetail(err.Error())
	case errors.Is(err, errs.ErrPermissionDenied):
		return ProblemForbidden.WithDetail(err.Error())
	case errors.Is(err, errs.ErrInvalidState):
		return ProblemInvalidState.WithDetail(err.Error())
	case errors.Is(err, errs.ErrVerificationFailed):
		return ProblemVerification.WithDetail(err.Error())
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return ProblemConflict.WithDetail(err.Error()).WithExtension("retryable", true)
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		return ProblemUnavailable.WithExtension("retryable", true)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ProblemDetail{
			Type:   TypeBadRequest,
			Title:  http.StatusText(httpErr.Code),
			Status: httpErr.Code,
			Detail: fmt.Sprint(httpErr.Message),
		}
	}

	return ProblemInternal
}

// ErrorHandler renders every error returned by a handler as application/problem+json.
// Server side failures are logged with their cause.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		problem := problemFor(err).WithInstance(c.Request().URL.Path)
		if problem.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", problem.Status,
				"error", err,
			)
		}

		c.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
		if writeErr := c.JSON(problem.Status, problem); writeErr != nil {
			logger.Error("failed to write problem response", "error", writeErr)
		}
	}
}
