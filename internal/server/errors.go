package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	businessdomain "github.com/kabisa/ebmbridge/internal/business/domain"
	invoicingdomain "github.com/kabisa/ebmbridge/internal/invoicing/domain"
	reportdomain "github.com/kabisa/ebmbridge/internal/report/domain"
	"github.com/kabisa/ebmbridge/internal/transform"
	vsdcdomain "github.com/kabisa/ebmbridge/internal/vsdc/domain"
	wadomain "github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                      `json:"type"`
	Code    string                      `json:"code,omitempty"`
	Message string                      `json:"message"`
	Errors  []transform.ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var vErr *transform.ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "document cannot be fiscalized",
			Errors:  vErr.Errors,
		}
	}

	var apiErr *vsdcdomain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus(), errorPayload{
			Type:    "vsdc_rejection",
			Code:    apiErr.Code,
			Message: apiErr.Reason(),
		}
	}

	if isMalformedPayload(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_payload",
			Message: "request body is not a valid webhook payload",
		}
	}

	switch {
	case errors.Is(err, vsdcdomain.ErrUnavailable):
		return http.StatusBadGateway, errorPayload{
			Type:    "vsdc_unavailable",
			Message: "tax device is unreachable",
		}
	case errors.Is(err, vsdcdomain.ErrTimeout):
		return http.StatusGatewayTimeout, errorPayload{
			Type:    "vsdc_timeout",
			Message: "tax device did not answer in time",
		}
	case errors.Is(err, invoicingdomain.ErrDuplicateDelivery):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_delivery",
			Message: "document was already fiscalized",
		}
	case errors.Is(err, businessdomain.ErrDuplicate),
		errors.Is(err, reportdomain.ErrDayClosed):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isInvalidRequestError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// isMalformedPayload catches JSON decode failures from webhook bodies.
func isMalformedPayload(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, businessdomain.ErrNotFound),
		errors.Is(err, wadomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isInvalidRequestError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, businessdomain.ErrInvalidName),
		errors.Is(err, businessdomain.ErrInvalidTIN),
		errors.Is(err, businessdomain.ErrInvalidID),
		errors.Is(err, reportdomain.ErrInvalidTIN),
		errors.Is(err, reportdomain.ErrInvalidDate),
		errors.Is(err, wadomain.ErrInvalidDocument),
		errors.Is(err, wadomain.ErrInvalidPageToken):
		return true
	default:
		return false
	}
}

// classifyErrorForLog feeds the request logger's error fields.
func classifyErrorForLog(err error) (string, string) {
	var apiErr *vsdcdomain.APIError
	if errors.As(err, &apiErr) {
		return "vsdc_rejection", apiErr.Code
	}
	var vErr *transform.ValidationErrors
	if errors.As(err, &vErr) {
		return "validation_error", ""
	}
	switch {
	case errors.Is(err, vsdcdomain.ErrTimeout):
		return "vsdc_timeout", ""
	case errors.Is(err, vsdcdomain.ErrUnavailable):
		return "vsdc_unavailable", ""
	case errors.Is(err, invoicingdomain.ErrDuplicateDelivery):
		return "duplicate_delivery", ""
	default:
		return "error", ""
	}
}
