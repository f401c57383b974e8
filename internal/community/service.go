package community

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/pkg/utils"
)

// IntroRecorder persists intro requests.
type IntroRecorder interface {
	RecordIntroRequest(ctx context.Context, res *models.IntroRequestResult) error
}

// Service answers community requests against the live snapshot.
type Service struct {
	holder      *dataset.Holder
	homeCompany string
	circle      models.TrustedCircle
	recorder    IntroRecorder
	now         func() time.Time
	logger      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder logs every intro request to r.
func WithRecorder(r IntroRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides the time used to stamp intro requests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service for the given home company and circle.
func NewService(holder *dataset.Holder, homeCompany string, circle models.TrustedCircle, opts ...Option) *Service {
	s := &Service{
		holder:      holder,
		homeCompany: homeCompany,
		circle:      circle,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = utils.OrNop(s.logger)
	return s
}

// Circle returns the trusted circle descriptor.
func (s *Service) Circle() models.TrustedCircle {
	return s.circle
}

// PersonSignals returns the signals for personID, never nil.
func (s *Service) PersonSignals(personID string) []models.CommunitySignal {
	signals := Signals(s.holder.Current(), personID, s.homeCompany)
	if signals == nil {
		return []models.CommunitySignal{}
	}
	return signals
}

// CompanySignals returns the signals for a company name.
func (s *Service) CompanySignals(name string) []models.CommunitySignal {
	return SignalsForCompany(name)
}

// Path returns the community path to targetID, if one exists.
func (s *Service) Path(targetID string) (models.CommunityPath, bool) {
	return Path(s.holder.Current(), targetID)
}

// RequestIntro computes the intro outcome for targetID and records it when a
// recorder is configured. The outcome does not depend on the dataset.
func (s *Service) RequestIntro(ctx context.Context, targetID string) (*models.IntroRequestResult, error) {
	res := RequestIntro(targetID)
	res.RequestedAt = s.now().UTC()

	if s.recorder != nil {
		if err := s.recorder.RecordIntroRequest(ctx, &res); err != nil {
			return nil, fmt.Errorf("failed to record intro request: %w", err)
		}
	}
	s.logger.Info("community intro requested",
		zap.String("target", targetID),
		zap.String("status", string(res.Status)))
	return &res, nil
}
