package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tour-server/api"
	"tour-server/logger"
	"tour-server/models"
	"tour-server/validation"
)

const (
	MSG_TIMEOUT   = "요청 시간이 초과되었습니다. 잠시 후 다시 시도해주세요."
	MSG_NOT_FOUND = "요청한 데이터를 찾을 수 없습니다."
	MSG_GENERIC   = "관광지 정보를 불러오는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MSG_NETWORK   = "네트워크 연결을 확인해주세요."
	MSG_UNKNOWN   = "알 수 없는 에러가 발생했습니다."
)

var networkMarkers = []string{"fetch", "network", "Network"}

// ErrorClassifier turns failures into the uniform error envelope. Outside
// development mode the envelope carries only user-safe messages.
type ErrorClassifier struct {
	development bool
	logger      logger.Logger
}

func NewErrorClassifier(development bool, log logger.Logger) *ErrorClassifier {
	return &ErrorClassifier{development: development, logger: logger.Component(log, "ErrorClassifier")}
}

// Classify returns the HTTP status and body for err.
func (c *ErrorClassifier) Classify(err error) (int, models.ErrorResponse) {
	body := models.ErrorResponse{Success: false, Tours: []models.TourItem{}}

	var validationErr *validation.ValidationError
	var upstream *api.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		body.Error = validationErr.Error()
		body.StatusCode = http.StatusBadRequest
		return http.StatusBadRequest, body

	case errors.As(err, &upstream):
		status := upstream.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		body.StatusCode = upstream.StatusCode
		body.ErrorCode = upstream.ErrorCode
		body.Error = c.upstreamMessage(upstream)
		return status, body
	}

	if isNetworkError(err) {
		body.Error = MSG_NETWORK
		body.ErrorType = models.ErrorTypeNetwork
	} else {
		body.ErrorType = models.ErrorTypeUnknown
		body.Error = MSG_GENERIC
		if c.development {
			body.Error = MSG_UNKNOWN
			if err != nil {
				body.Error = err.Error()
			}
		}
	}
	return http.StatusInternalServerError, body
}

func (c *ErrorClassifier) upstreamMessage(upstream *api.UpstreamError) string {
	if c.development && upstream.Message != "" {
		return upstream.Message
	}
	switch upstream.StatusCode {
	case http.StatusRequestTimeout:
		return MSG_TIMEOUT
	case http.StatusNotFound:
		return MSG_NOT_FOUND
	}
	return MSG_GENERIC
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WriteError classifies err, logs it and writes the envelope.
func (c *ErrorClassifier) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := c.Classify(err)
	fields := map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	}
	if c.development {
		fields["query"] = r.URL.RawQuery
		c.logger.WithError(err).Error("request failed", fields)
	} else {
		fields["errorCode"] = body.ErrorCode
		fields["errorType"] = body.ErrorType
		c.logger.Warn("request failed", fields)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure writes a plain error envelope for failures detected by the
// handler itself (bad input, missing session).
func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{
		Success:    false,
		Error:      msg,
		StatusCode: status,
		Tours:      []models.TourItem{},
	})
}
