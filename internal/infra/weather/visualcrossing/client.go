package visualcrossing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/advisor"
)

const (
	defaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client fetches daily forecasts from the Visual Crossing timeline API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. A zero timeout selects the default.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the forecast for location on date and flattens the first day entry.
func (c *Client) Fetch(ctx context.Context, location, date string) (advisor.WeatherRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(location, date), nil)
	if err != nil {
		return advisor.WeatherRecord{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return advisor.WeatherRecord{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return advisor.WeatherRecord{}, fmt.Errorf("read weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return advisor.WeatherRecord{}, &advisor.UpstreamWeatherError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw timelineResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return advisor.WeatherRecord{}, fmt.Errorf("decode weather response: %w", err)
	}

	day := dayEntry{}
	if len(raw.Days) > 0 {
		day = raw.Days[0]
	}
	return normalizeDay(day), nil
}

func (c *Client) endpoint(location, date string) string {
	query := url.Values{}
	query.Set("unitGroup", "metric")
	query.Set("key", c.apiKey)
	query.Set("contentType", "json")
	// date stays unescaped so a "start/end" range reaches the timeline API as two segments.
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, url.PathEscape(location), date, query.Encode())
}

type timelineResponse struct {
	Days []dayEntry `json:"days"`
}

// dayEntry holds the metrics read from a timeline day. JSON nulls decode as zero.
type dayEntry struct {
	TempMin     float64 `json:"tempmin"`
	Temp        float64 `json:"temp"`
	TempMax     float64 `json:"tempmax"`
	FeelsLike   float64 `json:"feelslike"`
	PrecipProb  float64 `json:"precipprob"`
	Precip      float64 `json:"precip"`
	WindGust    float64 `json:"windgust"`
	WindSpeed   float64 `json:"windspeed"`
	WindDir     float64 `json:"winddir"`
	Humidity    float64 `json:"humidity"`
	Dew         float64 `json:"dew"`
	Pressure    float64 `json:"pressure"`
	UVIndex     float64 `json:"uvindex"`
	CloudCover  float64 `json:"cloudcover"`
	Visibility  float64 `json:"visibility"`
	Description string  `json:"description"`
}

func normalizeDay(day dayEntry) advisor.WeatherRecord {
	return advisor.WeatherRecord{
		MinTemp:         round1(day.TempMin),
		AvgTemp:         round1(day.Temp),
		MaxTemp:         round1(day.TempMax),
		FeelsLike:       round1(day.FeelsLike),
		RainProbability: round1(day.PrecipProb),
		TotalRainfallMM: round1(day.Precip),
		MaxWindGustKMH:  round1(day.WindGust),
		AvgWindSpeedKMH: round1(day.WindSpeed),
		WindDirection:   round1(day.WindDir),
		Humidity:        round1(day.Humidity),
		DewPoint:        round1(day.Dew),
		PressureHPA:     round1(day.Pressure),
		UVIndex:         round1(day.UVIndex),
		CloudCover:      round1(day.CloudCover),
		VisibilityKM:    round1(day.Visibility),
		Description:     day.Description,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
