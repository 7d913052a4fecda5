package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport-level failures reaching the VSDC
	// endpoint (connection refused, DNS, non-200 HTTP, bad JSON).
	ErrUnavailable = errors.New("vsdc_unavailable")
	// ErrTimeout wraps deadline expiry on the VSDC call.
	ErrTimeout = errors.New("vsdc_timeout")
)

// APIError is a business rejection from the VSDC endpoint: HTTP 200 with a
// non-000 resultCd. Unknown codes keep the raw code attached.
type APIError struct {
	Code     string
	Message  string
	Response *Response
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vsdc rejected submission: code=%s msg=%s", e.Code, e.Message)
}

// Reason returns the operator-facing description for known result codes,
// or the raw upstream message otherwise.
func (e *APIError) Reason() string {
	if reason, ok := knownResultCodes[e.Code]; ok {
		return reason.message
	}
	return e.Message
}

// HTTPStatus maps the result code onto the status returned to the webhook
// caller. Unknown codes default to 422.
func (e *APIError) HTTPStatus() int {
	if reason, ok := knownResultCodes[e.Code]; ok {
		return reason.status
	}
	return http.StatusUnprocessableEntity
}

type resultReason struct {
	message string
	status  int
}

var knownResultCodes = map[string]resultReason{
	"881": {"purchase code is mandatory", http.StatusBadRequest},
	"882": {"purchase code is invalid", http.StatusBadRequest},
	"883": {"purchase code already used", http.StatusConflict},
	"884": {"invalid customer TIN", http.StatusBadRequest},
	"885": {"original invoice not found", http.StatusBadRequest},
	"886": {"credit note already exists for this invoice", http.StatusConflict},
	"901": {"device is not valid", http.StatusUnauthorized},
	"910": {"request parameter error", http.StatusBadRequest},
	"921": {"sales data cannot be received", http.StatusUnprocessableEntity},
	"922": {"sales invoice data can be received after sales data", http.StatusUnprocessableEntity},
	"923": {"refund amount exceeds original invoice", http.StatusBadRequest},
	"994": {"duplicate data", http.StatusConflict},
}
