// Package kakao searches places with the Kakao Local API.
package kakao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/config"
	"github.com/at-ishikawa/imjang/internal/place"
)

const (
	DefaultBaseURL = "https://dapi.kakao.com"
	keywordPath    = "/v2/local/search/keyword.json"
	maxPage        = 45
)

type Client struct {
	httpClient       *resty.Client
	apiKey           string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

func NewClient(cfg config.KakaoConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "KakaoAK "+cfg.RESTAPIKey)
	client.SetTimeout(10 * time.Second)

	return &Client{
		httpClient:       client,
		apiKey:           cfg.RESTAPIKey,
		maxRetryAttempts: cfg.MaxRetryAttempts,
		retryDelay:       200 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Document is one place returned by keyword search. X is the longitude and Y the latitude, as strings.
type Document struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryName      string `json:"category_name"`
	CategoryGroupCode string `json:"category_group_code"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	PlaceURL          string `json:"place_url"`
}

// PlaceInput converts the document into the input of place.Service.SavePlace.
func (d Document) PlaceInput() place.PlaceInput {
	return place.PlaceInput{
		KakaoID:     d.ID,
		Name:        d.PlaceName,
		X:           d.X,
		Y:           d.Y,
		Address:     d.AddressName,
		RoadAddress: d.RoadAddressName,
	}
}

type Meta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

type SearchResponse struct {
	Meta      Meta       `json:"meta"`
	Documents []Document `json:"documents"`
}

// ResponseError is a non-2xx answer of the Kakao API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("kakao response error %d: %s", e.StatusCode, e.Body)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode >= http.StatusInternalServerError || respErr.StatusCode == http.StatusTooManyRequests
	}
	// transport failures
	return true
}

// SearchKeyword searches places matching query. page starts at 1.
func (client *Client) SearchKeyword(ctx context.Context, query string, page int) (SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResponse{}, apperr.Validation("query is required")
	}
	if page < 1 || page > maxPage {
		return SearchResponse{}, apperr.Validation("page must be between 1 and %d", maxPage)
	}
	if client.apiKey == "" {
		return SearchResponse{}, fmt.Errorf("kakao rest api key is not configured")
	}

	var result SearchResponse
	if err := retry.Do(
		func() error {
			response, err := client.searchKeyword(ctx, query, page)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Debug("retry kakao search", "query", query, "error", err)
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return SearchResponse{}, fmt.Errorf("search keyword %q: %w", query, err)
	}
	return result, nil
}

func (client *Client) searchKeyword(ctx context.Context, query string, page int) (SearchResponse, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&SearchResponse{}).
		Get(keywordPath)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return SearchResponse{}, &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	body, ok := response.Result().(*SearchResponse)
	if !ok || body == nil {
		return SearchResponse{}, fmt.Errorf("empty response body: %s", response.String())
	}
	if body.Documents == nil {
		body.Documents = []Document{}
	}
	return *body, nil
}
