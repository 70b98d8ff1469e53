package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"music_hub/infrastructure/auth"
	"music_hub/infrastructure/config"
	"music_hub/infrastructure/metrics"
	"music_hub/infrastructure/token_manager"
	"music_hub/internal/core/domain"
	"music_hub/internal/core/ports"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	"google.golang.org/api/youtube/v3"
)

const userAgent = "Music-Hub-App/1.0"

type youtubeProvider struct {
	cfg          *config.Config
	tokenService token_manager.TokenService
	log          ports.LoggerPort
	service      *youtube.Service
	mu           sync.Mutex
}

func NewYoutubeProvider(cfg *config.Config, tokenService token_manager.TokenService, logger ports.LoggerPort) ports.YoutubePort {
	return &youtubeProvider{
		cfg:          cfg,
		tokenService: tokenService,
		log:          logger,
	}
}

func (s *youtubeProvider) getYoutubeService(ctx context.Context) (*youtube.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service, nil
	}

	opts, err := s.clientOptions(ctx)
	if err != nil {
		return nil, err
	}

	client, _, err := htransport.NewClient(context.WithoutCancel(ctx), opts...)
	if err != nil {
		s.log.Error("error while create youtube http client", err)
		return nil, fmt.Errorf("error while create youtube http client: %w", err)
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client = &http.Client{Transport: &rawBodyTransport{base: base}}

	serviceOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.cfg.YouTubeEndpoint != "" {
		serviceOpts = append(serviceOpts, option.WithEndpoint(s.cfg.YouTubeEndpoint))
	}

	service, err := youtube.NewService(ctx, serviceOpts...)
	if err != nil {
		s.log.Error("error while create youtube service", err)
		return nil, fmt.Errorf("error while create youtube service: %w", err)
	}
	service.UserAgent = userAgent

	s.service = service
	s.log.Info("Create youtube service completed")

	return service, nil
}

// clientOptions returns the credential options for the authenticated http client.
func (s *youtubeProvider) clientOptions(ctx context.Context) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	switch {
	case s.cfg.HasAPIKey():
		opts = append(opts, option.WithAPIKey(s.cfg.YouTubeAPIKey))
	case s.tokenService != nil && s.cfg.ClientSecretFile != "":
		src, err := auth.NewTokenSource(context.WithoutCancel(ctx), s.cfg.ClientSecretFile, s.tokenService, s.log)
		if err != nil {
			s.log.Error("error while create token source", err)
			return nil, fmt.Errorf("error while create token source: %w", err)
		}
		opts = append(opts, option.WithTokenSource(src))
	case s.tokenService != nil:
		token, err := s.tokenService.LoadToken()
		if err != nil {
			s.log.Error("error while load token", err)
			return nil, fmt.Errorf("error while load token: %w", err)
		}
		s.log.Info("Load token completed")
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	default:
		return nil, domain.ErrAPIKeyNotConfigured
	}

	return opts, nil
}

func (s *youtubeProvider) SearchMusic(ctx context.Context, query string) (*ports.SearchListing, error) {
	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()
	ctx, raw := withRawBody(ctx)

	call := service.Search.List([]string{"snippet"}).
		Q(query + " music").
		Type("video").
		VideoCategoryId(s.cfg.CategoryID).
		MaxResults(s.cfg.MaxResults).
		Context(ctx)

	start := time.Now()
	response, err := call.Do()
	s.observe("search", start, err)
	if err != nil {
		s.log.Error("error while call youtube search", err)
		return nil, translateError(err)
	}

	return &ports.SearchListing{SearchListResponse: response, Raw: raw.data}, nil
}

func (s *youtubeProvider) TrendingMusic(ctx context.Context) (*ports.VideoListing, error) {
	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()
	ctx, raw := withRawBody(ctx)

	call := service.Videos.List([]string{"snippet", "contentDetails"}).
		Chart("mostPopular").
		RegionCode(s.cfg.RegionCode).
		VideoCategoryId(s.cfg.CategoryID).
		MaxResults(s.cfg.MaxResults).
		Context(ctx)

	start := time.Now()
	response, err := call.Do()
	s.observe("trending", start, err)
	if err != nil {
		s.log.Error("error while call youtube videos", err)
		return nil, translateError(err)
	}

	return &ports.VideoListing{VideoListResponse: response, Raw: raw.data}, nil
}

func (s *youtubeProvider) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			status = strconv.Itoa(apiErr.Code)
		}
	}
	metrics.UpstreamDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

// translateError keeps the upstream error message so it can be shown to the client.
func translateError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return fmt.Errorf("error in call youtube api: %w", err)
}
