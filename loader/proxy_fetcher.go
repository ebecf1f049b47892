package loader

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tour-server/api"
	"tour-server/models"
)

const TOURS_ENDPOINT = "/tours"

// ResponseError is a success:false body returned by the list endpoint.
type ResponseError struct {
	Message    string
	StatusCode int
	ErrorCode  string
	// Network is set when the server classified the failure as a network error.
	Network bool
}

func (e *ResponseError) Error() string {
	return e.Message
}

// ProxyFetcher reads pages from the GET /tours endpoint.
type ProxyFetcher struct {
	*api.HTTPClient
}

func NewProxyFetcher(baseURL string, timeout time.Duration) *ProxyFetcher {
	return &ProxyFetcher{HTTPClient: api.NewHTTPClient(baseURL, timeout)}
}

type toursEnvelope struct {
	Success    bool              `json:"success"`
	Error      string            `json:"error"`
	StatusCode int               `json:"statusCode"`
	ErrorCode  string            `json:"errorCode"`
	ErrorType  string            `json:"errorType"`
	Tours      []models.TourItem `json:"tours"`
	TotalCount int               `json:"totalCount"`
}

func (e *toursEnvelope) responseError(status int) *ResponseError {
	if e.StatusCode != 0 {
		status = e.StatusCode
	}
	msg := e.Error
	if msg == "" {
		msg = "failed to load tours"
	}
	return &ResponseError{
		Message:    msg,
		StatusCode: status,
		ErrorCode:  e.ErrorCode,
		Network:    e.ErrorType == models.ErrorTypeNetwork,
	}
}

func (f *ProxyFetcher) FetchPage(ctx context.Context, filter models.FilterContext, pageNo, numOfRows int) (*Page, error) {
	query := filter.ToValues()
	query.Set("pageNo", strconv.Itoa(pageNo))
	query.Set("numOfRows", strconv.Itoa(numOfRows))

	var env toursEnvelope
	err := f.Request(ctx, http.MethodGet, TOURS_ENDPOINT, query, nil, nil, &env)

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		var failed toursEnvelope
		if jsonErr := json.Unmarshal(statusErr.Body, &failed); jsonErr == nil && !failed.Success {
			return nil, failed.responseError(statusErr.StatusCode)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.responseError(http.StatusOK)
	}
	return &Page{Items: env.Tours, TotalCount: env.TotalCount}, nil
}
