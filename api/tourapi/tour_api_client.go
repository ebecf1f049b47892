package tourapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"tour-server/api"
	"tour-server/config"
	"tour-server/logger"
	"tour-server/metrics"
	"tour-server/models"
)

const (
	AREA_CODE_ENDPOINT       = "/areaCode2"
	AREA_BASED_LIST_ENDPOINT = "/areaBasedList2"
	SEARCH_KEYWORD_ENDPOINT  = "/searchKeyword2"
	DETAIL_COMMON_ENDPOINT   = "/detailCommon2"
	DETAIL_INTRO_ENDPOINT    = "/detailIntro2"
	DETAIL_IMAGE_ENDPOINT    = "/detailImage2"
	DETAIL_PET_TOUR_ENDPOINT = "/detailPetTour2"

	defaultListRows     = 10
	defaultAreaCodeRows = 100
)

// ErrKeywordRequired is returned by SearchKeyword for a blank keyword.
var ErrKeywordRequired = &api.UpstreamError{StatusCode: http.StatusBadRequest, Message: "keyword is required"}

// TourApiClient calls KorService2 through the retry policy and a circuit breaker.
type TourApiClient struct {
	*api.HTTPClient
	serviceKey string
	mobileApp  string
	retry      api.RetryPolicy
	breaker    *gobreaker.CircuitBreaker[*envelope]
	logger     logger.Logger
}

// Options tune the client; zero values fall back to the package defaults.
type Options struct {
	ServiceKey         string
	MobileApp          string
	MaxRetries         int
	RetryBackoff       []time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// NewTourApiClient creates a client on top of httpClient.
func NewTourApiClient(httpClient *api.HTTPClient, opts Options, log logger.Logger) *TourApiClient {
	if opts.MobileApp == "" {
		opts.MobileApp = config.TOUR_API_MOBILE_APP
	}
	if opts.RetryBackoff == nil {
		opts.RetryBackoff = config.DefaultRetryBackoff
	}
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 5
	}

	c := &TourApiClient{
		HTTPClient: httpClient,
		serviceKey: opts.ServiceKey,
		mobileApp:  opts.MobileApp,
		logger:     logger.Component(log, "TourApiClient"),
	}

	c.retry = api.DefaultRetryPolicy(opts.MaxRetries, opts.RetryBackoff)
	c.retry.Retryable = func(err error) bool {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false
		}
		return api.IsRetryable(err)
	}

	c.breaker = gobreaker.NewCircuitBreaker[*envelope](gobreaker.Settings{
		Name:    "tour-api",
		Timeout: opts.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerMaxFailures
		},
		// Client errors say nothing about upstream health; timeouts do.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if errors.Is(err, api.ErrTimeout) {
				return false
			}
			status := api.StatusCodeOf(err)
			return status >= 400 && status < 500 && status != http.StatusRequestTimeout
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return c
}

func (c *TourApiClient) GetAreaCode(ctx context.Context, params models.AreaCodeParams) ([]models.AreaCode, error) {
	if params.NumOfRows == 0 {
		params.NumOfRows = defaultAreaCodeRows
	}
	env, err := c.call(ctx, AREA_CODE_ENDPOINT, params.ToValues())
	if err != nil {
		return nil, err
	}
	return itemsOf[models.AreaCode](env)
}

func (c *TourApiClient) GetAreaBasedList(ctx context.Context, params models.TourListParams) (*TourListResult, error) {
	params.Keyword = ""
	params = withListDefaults(params)
	env, err := c.call(ctx, AREA_BASED_LIST_ENDPOINT, params.ToValues())
	if err != nil {
		return nil, err
	}
	return listResultOf(env, params.PageNo, params.NumOfRows)
}

func (c *TourApiClient) SearchKeyword(ctx context.Context, params models.TourListParams) (*TourListResult, error) {
	params.Keyword = strings.TrimSpace(params.Keyword)
	if params.Keyword == "" {
		return nil, ErrKeywordRequired
	}
	params = withListDefaults(params)
	env, err := c.call(ctx, SEARCH_KEYWORD_ENDPOINT, params.ToValues())
	if err != nil {
		return nil, err
	}
	return listResultOf(env, params.PageNo, params.NumOfRows)
}

func (c *TourApiClient) GetDetailCommon(ctx context.Context, contentID string) (*models.TourDetail, error) {
	env, err := c.call(ctx, DETAIL_COMMON_ENDPOINT, url.Values{"contentId": {contentID}})
	if err != nil {
		return nil, err
	}
	items, err := itemsOf[models.TourDetail](env)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, notFound(contentID)
	}
	return &items[0], nil
}

func (c *TourApiClient) GetDetailIntro(ctx context.Context, contentID, contentTypeID string) (*models.TourIntro, error) {
	env, err := c.call(ctx, DETAIL_INTRO_ENDPOINT, url.Values{
		"contentId":     {contentID},
		"contentTypeId": {contentTypeID},
	})
	if err != nil {
		return nil, err
	}
	items, err := itemsOf[models.TourIntro](env)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (c *TourApiClient) GetDetailImage(ctx context.Context, contentID string) ([]models.TourImage, error) {
	env, err := c.call(ctx, DETAIL_IMAGE_ENDPOINT, url.Values{
		"contentId": {contentID},
		"imageYN":   {"Y"},
	})
	if err != nil {
		return nil, err
	}
	return itemsOf[models.TourImage](env)
}

func (c *TourApiClient) GetDetailPetTour(ctx context.Context, contentID string) (*models.PetTourInfo, error) {
	env, err := c.call(ctx, DETAIL_PET_TOUR_ENDPOINT, url.Values{"contentId": {contentID}})
	if err != nil {
		return nil, err
	}
	items, err := itemsOf[models.PetTourInfo](env)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

// call runs one operation through retry and the breaker and records its outcome.
func (c *TourApiClient) call(ctx context.Context, endpoint string, params url.Values) (*envelope, error) {
	operation := strings.TrimPrefix(endpoint, "/")
	policy := c.retry
	policy.OnRetry = func(attempt int, err error) {
		metrics.UpstreamRetriesTotal.WithLabelValues(operation).Inc()
		c.logger.WithError(err).Warn("retrying tour api call", map[string]interface{}{
			"operation": operation,
			"attempt":   attempt,
		})
	}

	env, err := api.Retry(ctx, policy, func(ctx context.Context) (*envelope, error) {
		env, err := c.breaker.Execute(func() (*envelope, error) {
			return c.fetch(ctx, endpoint, params)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &api.UpstreamError{
				StatusCode: http.StatusServiceUnavailable,
				Message:    "tour api temporarily unavailable",
				Err:        err,
			}
		}
		return env, err
	})
	metrics.RecordUpstream(operation, err)
	if err != nil {
		c.logger.WithError(err).Debug("tour api call failed", map[string]interface{}{"operation": operation})
		return nil, err
	}
	return env, nil
}

func (c *TourApiClient) fetch(ctx context.Context, endpoint string, params url.Values) (*envelope, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("serviceKey", c.serviceKey)
	query.Set("MobileOS", config.TOUR_API_MOBILE_OS)
	query.Set("MobileApp", c.mobileApp)
	query.Set("_type", "json")

	raw, err := c.RequestRaw(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return nil, toUpstreamError(err)
	}
	return decodeEnvelope(raw)
}

func toUpstreamError(err error) error {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &api.UpstreamError{
			StatusCode: statusErr.StatusCode,
			Message:    "tour api request failed: " + statusErr.Status,
			Err:        err,
		}
	case errors.Is(err, api.ErrTimeout):
		return &api.UpstreamError{
			StatusCode: http.StatusRequestTimeout,
			Message:    "tour api request timed out",
			Err:        err,
		}
	}
	return err
}

func notFound(contentID string) error {
	return &api.UpstreamError{StatusCode: http.StatusNotFound, Message: "place not found: " + contentID}
}

func withListDefaults(p models.TourListParams) models.TourListParams {
	if p.PageNo <= 0 {
		p.PageNo = 1
	}
	if p.NumOfRows <= 0 {
		p.NumOfRows = defaultListRows
	}
	return p
}
