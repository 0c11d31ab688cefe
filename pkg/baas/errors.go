package baas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSession is returned by calls that need a signed-in user when neither
	// the context nor the client carries an access token.
	ErrNoSession = errors.New("auth session missing")
)

// CodeNoRows is the table API code for a single-row request that matched
// no rows.
const CodeNoRows = "PGRST116"

// Auth API error codes.
const (
	CodeUserAlreadyExists  = "user_already_exists"
	CodeEmailExists        = "email_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeEmailNotConfirmed  = "email_not_confirmed"
	CodeWeakPassword       = "weak_password"

	// CodeInvalidGrant is the OAuth-style code older auth servers send for
	// every failed password grant; the description tells the cases apart.
	CodeInvalidGrant = "invalid_grant"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("baas: status %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("baas: status %d: %s", e.Status, e.Message)
}

// IsNoRows reports whether err is a single-row request that matched nothing.
func IsNoRows(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNoRows
}

// HasCode reports whether err is an *APIError carrying one of the codes.
func HasCode(err error, codes ...string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code == "" {
		return false
	}
	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}
	return false
}

// IsStatus reports whether err is an *APIError with one of the given statuses.
func IsStatus(err error, statuses ...int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}

// decodeAPIError understands both services' error bodies: the table API sends
// {code, message, details, hint}, the auth API {error, error_description} or
// {code, error_code, msg}.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	apiErr.Code = firstString(raw, "error_code", "code")
	if apiErr.Code == "" && firstString(raw, "error_description") != "" {
		apiErr.Code = firstString(raw, "error")
	}
	apiErr.Message = firstString(raw, "message", "msg", "error_description", "error")
	apiErr.Details = firstString(raw, "details")
	apiErr.Hint = firstString(raw, "hint")
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func firstString(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
