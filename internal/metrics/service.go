package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rentledger/internal/caching"
	"rentledger/internal/store"
)

const cacheTTL = 10 * time.Minute

// Service computes metrics over the live store, caching results until the
// next mutation. It subscribes to the store and drops every cached metric
// whenever the state changes.
type Service struct {
	store  *store.Store
	cache  caching.CacheService
	logger zerolog.Logger
}

func NewService(st *store.Store, cache caching.CacheService, logger zerolog.Logger) *Service {
	s := &Service{store: st, cache: cache, logger: logger}
	st.Subscribe(func() {
		if err := s.cache.InvalidateMetrics(context.Background()); err != nil {
			s.logger.Warn().Err(err).Msg("metrics cache invalidation failed")
		}
	})
	return s
}

func (s *Service) RentRoll(ctx context.Context, month time.Time) (RentRoll, error) {
	key := caching.MetricsKey("rentroll", month.UTC().Format("2006-01"))
	var roll RentRoll
	if err := s.cache.GetJSON(ctx, key, &roll); err == nil {
		return roll, nil
	} else if !errors.Is(err, caching.ErrMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache read failed")
	}

	roll = ComputeRentRoll(s.store.State(), month)
	if err := s.cache.SetJSON(ctx, key, roll, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache write failed")
	}
	return roll, nil
}

func (s *Service) ProfitLoss(ctx context.Context, from, to time.Time) (ProfitLoss, error) {
	key := caching.MetricsKey("pnl", from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	var pl ProfitLoss
	if err := s.cache.GetJSON(ctx, key, &pl); err == nil {
		return pl, nil
	} else if !errors.Is(err, caching.ErrMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache read failed")
	}

	pl = ComputeProfitLoss(s.store.State(), from, to)
	if err := s.cache.SetJSON(ctx, key, pl, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache write failed")
	}
	return pl, nil
}

func (s *Service) Occupancy(ctx context.Context, asOf time.Time) (Occupancy, error) {
	key := caching.MetricsKey("occupancy", asOf.UTC().Format("2006-01-02"))
	var occ Occupancy
	if err := s.cache.GetJSON(ctx, key, &occ); err == nil {
		return occ, nil
	} else if !errors.Is(err, caching.ErrMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache read failed")
	}

	occ = ComputeOccupancy(s.store.State(), asOf)
	if err := s.cache.SetJSON(ctx, key, occ, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache write failed")
	}
	return occ, nil
}

func (s *Service) Reliability(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (Reliability, error) {
	key := caching.MetricsKey("reliability", tenantID.String(), asOf.UTC().Format("2006-01"))
	var rel Reliability
	if err := s.cache.GetJSON(ctx, key, &rel); err == nil {
		return rel, nil
	} else if !errors.Is(err, caching.ErrMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache read failed")
	}

	rel = ComputeReliability(s.store.State(), tenantID, asOf)
	if err := s.cache.SetJSON(ctx, key, rel, cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("metrics cache write failed")
	}
	return rel, nil
}
