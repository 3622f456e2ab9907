package advisor

import (
	"encoding/json"
	"fmt"
)

// UnknownRequester is reported when the caller does not name itself.
const UnknownRequester = "Unknown"

// Request is the payload accepted by POST /get/weather. Pointer fields
// distinguish an absent (or null) key from an empty string.
type Request struct {
	Token         *string `json:"token"`
	Location      *string `json:"location"`
	Date          *string `json:"date"`
	RequesterName *string `json:"requester_name"`
}

// Response is serialized back to API consumers.
type Response struct {
	RequesterName   string         `json:"requester_name"`
	Timestamp       string         `json:"timestamp"`
	Location        string         `json:"location"`
	Date            string         `json:"date"`
	Weather         WeatherRecord  `json:"weather"`
	Recommendations Recommendation `json:"ai_recommendations"`
}

// WeatherRecord is the flat, one-decimal snapshot of a day's forecast.
// Metrics missing upstream are reported as zero.
type WeatherRecord struct {
	MinTemp         float64 `json:"min_temp"`
	AvgTemp         float64 `json:"avg_temp"`
	MaxTemp         float64 `json:"max_temp"`
	FeelsLike       float64 `json:"feels_like"`
	RainProbability float64 `json:"rain_probability"`
	TotalRainfallMM float64 `json:"total_rainfall_mm"`
	MaxWindGustKMH  float64 `json:"max_wind_gust_kmh"`
	AvgWindSpeedKMH float64 `json:"avg_wind_speed_kmh"`
	WindDirection   float64 `json:"wind_direction"`
	Humidity        float64 `json:"humidity"`
	DewPoint        float64 `json:"dew_point"`
	PressureHPA     float64 `json:"pressure_hpa"`
	UVIndex         float64 `json:"uv_index"`
	CloudCover      float64 `json:"cloud_cover"`
	VisibilityKM    float64 `json:"visibility_km"`
	Description     string  `json:"description"`
}

// RecommendationKind tags which shape a Recommendation carries.
type RecommendationKind string

const (
	// KindStructured is a reply that parsed as JSON; it is returned as sent.
	KindStructured RecommendationKind = "structured"
	// KindRawText wraps a reply that was not valid JSON.
	KindRawText RecommendationKind = "raw_text"
	// KindDegraded reports that the generation call itself failed.
	KindDegraded RecommendationKind = "degraded"
)

// Recommendation is the outcome of the generation step. Exactly one shape
// is populated, selected by Kind.
type Recommendation struct {
	Kind RecommendationKind

	Payload json.RawMessage

	Text string

	Message string
	Detail  string
}

// Structured builds a KindStructured result around an already valid JSON document.
func Structured(payload json.RawMessage) Recommendation {
	return Recommendation{Kind: KindStructured, Payload: payload}
}

// RawText builds a KindRawText result.
func RawText(text string) Recommendation {
	return Recommendation{Kind: KindRawText, Text: text}
}

// Degraded builds a KindDegraded result from the failure that caused it.
func Degraded(err error) Recommendation {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return Recommendation{Kind: KindDegraded, Message: degradedMessage, Detail: detail}
}

// MarshalJSON renders the wire shape matching Kind.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindStructured:
		if !json.Valid(r.Payload) {
			return nil, fmt.Errorf("structured recommendation holds invalid json")
		}
		return r.Payload, nil
	case KindRawText:
		return json.Marshal(struct {
			Recommendation string `json:"recommendation"`
		}{Recommendation: r.Text})
	case KindDegraded:
		return json.Marshal(struct {
			ClothingRecommendation string `json:"clothing_recommendation"`
			Warnings               string `json:"warnings"`
		}{
			ClothingRecommendation: r.Message,
			Warnings:               errorPrefix + r.Detail,
		})
	default:
		return nil, fmt.Errorf("unknown recommendation kind %q", r.Kind)
	}
}

// Config wires runtime dependencies for the advisor domain.
type Config struct {
	Token       string
	Model       string
	Temperature float32
}
