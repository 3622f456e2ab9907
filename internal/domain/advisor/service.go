package advisor

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
	"github.com/yanqian/weather-advisor/pkg/util"
)

// Service answers weather + outfit advice requests.
type Service interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

// WeatherClient fetches one day's forecast as a flat record. Non-success
// provider responses are reported as *UpstreamWeatherError.
type WeatherClient interface {
	Fetch(ctx context.Context, location, date string) (WeatherRecord, error)
}

type service struct {
	cfg         Config
	weather     WeatherClient
	recommender Recommender
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires up the advisor domain.
func NewService(cfg Config, weather WeatherClient, recommender Recommender, logger *slog.Logger) Service {
	return &service{
		cfg:         cfg,
		weather:     weather,
		recommender: recommender,
		logger:      logger.With("component", "advisor.service"),
		now:         util.NowUTC,
	}
}

type validRequest struct {
	location      string
	date          string
	requesterName string
}

func (s *service) Advise(ctx context.Context, req Request) (Response, error) {
	in, err := s.validate(req)
	if err != nil {
		return Response{}, err
	}

	record, err := s.weather.Fetch(ctx, in.location, in.date)
	if err != nil {
		var upstream *UpstreamWeatherError
		if errors.As(err, &upstream) {
			return Response{}, err
		}
		return Response{}, apperrors.Wrap(apperrors.CodeWeatherUnavailable, "weather provider unavailable", err)
	}
	s.logger.Info("weather fetched", "location", in.location, "date", in.date)

	recommendation := s.recommender.Recommend(ctx, record, in.location)

	return Response{
		RequesterName:   in.requesterName,
		Timestamp:       util.FormatTimestamp(s.now()),
		Location:        in.location,
		Date:            in.date,
		Weather:         record,
		Recommendations: recommendation,
	}, nil
}

// validate applies the checks in order; the first failure wins.
func (s *service) validate(req Request) (validRequest, error) {
	if req.Token == nil {
		return validRequest{}, apperrors.MissingField("token")
	}
	if subtle.ConstantTimeCompare([]byte(*req.Token), []byte(s.cfg.Token)) != 1 {
		return validRequest{}, apperrors.Wrap(apperrors.CodeUnauthorized, "wrong API token", nil)
	}
	if req.Location == nil {
		return validRequest{}, apperrors.MissingField("location")
	}
	if req.Date == nil {
		return validRequest{}, apperrors.MissingField("date")
	}
	name := UnknownRequester
	if req.RequesterName != nil {
		name = *req.RequesterName
	}
	return validRequest{location: *req.Location, date: *req.Date, requesterName: name}, nil
}
