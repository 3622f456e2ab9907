package advisor

import "fmt"

// UpstreamWeatherError is returned when the weather provider answers with a
// non-success status. Body holds the provider's raw response text.
type UpstreamWeatherError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamWeatherError) Error() string {
	return fmt.Sprintf("weather provider returned status %d: %s", e.StatusCode, e.Body)
}
