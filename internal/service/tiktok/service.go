// Package tiktok fetches TikTok profile pages and maps their embedded
// rehydration payload into domain.ProfileRecord.
package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// PageFetcher downloads the profile page for a normalized handle.
type PageFetcher interface {
	Fetch(ctx context.Context, handle string) (*FetchResult, error)
}

// Service runs the fetch, extract and map pipeline. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	fetcher PageFetcher
	timeout time.Duration
	logger  *zap.Logger

	// extract is replaceable for testing.
	extract func(html string) (*Payload, error)
}

func NewService(fetcher PageFetcher, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = constants.TikTokConfig.RequestTimeout
	}
	return &Service{
		fetcher: fetcher,
		timeout: timeout,
		logger:  logger,
		extract: Extract,
	}
}

// Lookup resolves raw user input to a profile record. Errors carry one of the
// codes INVALID_HANDLE, NETWORK_ERROR, NOT_FOUND, EXTRACTION_FAILED or
// NO_SUCH_ACCOUNT.
func (s *Service) Lookup(ctx context.Context, raw string) (*domain.ProfileRecord, error) {
	handle := domain.NormalizeHandle(raw)
	if handle == "" {
		return nil, errors.NewInvalidHandleError(raw)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.fetcher.Fetch(fetchCtx, handle)
	if err != nil {
		if errors.CodeOf(err) == "" {
			err = errors.NewNetworkError("fetch failed", "", 0, err)
		}
		return nil, err
	}

	switch {
	case result.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError(handle)
	case result.StatusCode < 200 || result.StatusCode >= 300:
		return nil, errors.NewNetworkError(fmt.Sprintf("unexpected status code: %d", result.StatusCode), result.URL, result.StatusCode, nil)
	}

	payload, err := s.extract(result.Body)
	if err != nil {
		s.logger.Warn("Profile data extraction failed",
			zap.String("handle", handle),
			zap.String("reason", errors.ExtractionReason(err)),
			zap.Error(err))
		return nil, err
	}

	return MapProfile(payload)
}
