package tourapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"tour-server/api"
	"tour-server/models"
)

const resultCodeOK = "0000"

type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      json.RawMessage `json:"items"`
			NumOfRows  int             `json:"numOfRows"`
			PageNo     int             `json:"pageNo"`
			TotalCount int             `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// decodeEnvelope parses a KorService2 response and checks its result code.
func decodeEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &api.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "failed to parse tour api response",
			Err:        err,
		}
	}

	code := env.Response.Header.ResultCode
	if code == "" {
		return nil, &api.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "unexpected tour api response structure",
		}
	}
	if code != resultCodeOK {
		msg := env.Response.Header.ResultMsg
		if msg == "" {
			msg = "error code " + code
		}
		return nil, &api.UpstreamError{
			StatusCode: http.StatusBadGateway,
			ErrorCode:  code,
			Message:    "tour api error: " + msg,
		}
	}
	return &env, nil
}

// decodeItems normalizes body.items, which is "" when empty and holds either
// a single object or an array under "item".
func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] == '"' {
		return []T{}, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	item := bytes.TrimSpace(wrapper.Item)
	if len(item) == 0 || bytes.Equal(item, []byte("null")) {
		return []T{}, nil
	}

	if item[0] == '[' {
		var out []T
		if err := json.Unmarshal(item, &out); err != nil {
			return nil, fmt.Errorf("failed to parse item array: %w", err)
		}
		return out, nil
	}

	var single T
	if err := json.Unmarshal(item, &single); err != nil {
		return nil, fmt.Errorf("failed to parse item: %w", err)
	}
	return []T{single}, nil
}

func itemsOf[T any](env *envelope) ([]T, error) {
	items, err := decodeItems[T](env.Response.Body.Items)
	if err != nil {
		return nil, &api.UpstreamError{StatusCode: http.StatusBadGateway, Message: "failed to parse tour api items", Err: err}
	}
	return items, nil
}

func listResultOf(env *envelope, pageNo, numOfRows int) (*TourListResult, error) {
	items, err := itemsOf[models.TourItem](env)
	if err != nil {
		return nil, err
	}
	result := &TourListResult{
		Items:      items,
		TotalCount: env.Response.Body.TotalCount,
		PageNo:     env.Response.Body.PageNo,
		NumOfRows:  env.Response.Body.NumOfRows,
	}
	if result.TotalCount == 0 {
		result.TotalCount = len(result.Items)
	}
	if result.PageNo == 0 {
		result.PageNo = pageNo
	}
	if result.NumOfRows == 0 {
		result.NumOfRows = numOfRows
	}
	return result, nil
}
