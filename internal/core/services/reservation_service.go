package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports"
	"github.com/lanvy-atelier/dress-rental/internal/platform/clock"
)

// HoldTTL is how long an unconfirmed hold survives, measured from reserved_at.
const HoldTTL = 15 * time.Minute

const availabilityCacheTTL = 30 * time.Second

type ReserveRequest struct {
	ModelID   string `json:"model_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ReserveResponse struct {
	InstanceID string `json:"instance_id"`
	ReservedAt string `json:"reserved_at"`
	ExpiresAt  string `json:"expires_at"`
}

type AvailableInstance struct {
	InstanceID string `json:"instance_id"`
	ModelID    string `json:"model_id"`
}

type ReservationService struct {
	instanceRepo ports.InstanceRepository
	cache        *redis.Client
	clock        clock.Clock
	logger       *slog.Logger
	holdTTL      time.Duration
}

func NewReservationService(instanceRepo ports.InstanceRepository, cache *redis.Client, clk clock.Clock, logger *slog.Logger, opts ...ReservationOption) *ReservationService {
	svc := &ReservationService{
		instanceRepo: instanceRepo,
		cache:        cache,
		clock:        clk,
		logger:       logger,
		holdTTL:      HoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationOption func(*ReservationService)

// WithHoldTTL overrides the default hold TTL.
func WithHoldTTL(d time.Duration) ReservationOption {
	return func(s *ReservationService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResponse, error) {
	modelID, err := uuid.Parse(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("%w: model id", domain.ErrInvalidID)
	}

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	inst, err := s.instanceRepo.ReserveOldestAvailable(ctx, modelID, start, end, now)
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, modelID)

	s.logger.Info("instance reserved",
		"instance_id", inst.ID.String(),
		"model_id", modelID.String(),
		"expires_at", now.Add(s.holdTTL).Format(time.RFC3339),
	)

	return &ReserveResponse{
		InstanceID: inst.ID.String(),
		ReservedAt: now.Format(time.RFC3339),
		ExpiresAt:  now.Add(s.holdTTL).Format(time.RFC3339),
	}, nil
}

// Release is idempotent: releasing an instance that is already AVAILABLE or
// RENTED is a no-op so retries and late client cleanup calls are harmless.
func (s *ReservationService) Release(ctx context.Context, instanceID string) error {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return fmt.Errorf("%w: instance id", domain.ErrInvalidID)
	}

	inst, err := s.instanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	released, err := s.instanceRepo.Release(ctx, id)
	if err != nil {
		return err
	}

	if released {
		s.invalidateAvailability(ctx, inst.ModelID)
		s.logger.Info("hold released", "instance_id", id.String())
	}

	return nil
}

// SweepExpired releases every hold older than the TTL. It runs at the start
// of every checkout attempt, on explicit check-now calls, and optionally on
// a timer; correctness never depends on the timer.
func (s *ReservationService) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.holdTTL)

	modelIDs, err := s.instanceRepo.ReleaseExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, modelID := range dedupe(modelIDs) {
		s.invalidateAvailability(ctx, modelID)
	}

	if len(modelIDs) > 0 {
		s.logger.Info("expired holds swept", "released", len(modelIDs))
	}

	return int64(len(modelIDs)), nil
}

func (s *ReservationService) ListAvailable(ctx context.Context, modelID string) ([]AvailableInstance, error) {
	id, err := uuid.Parse(modelID)
	if err != nil {
		return nil, fmt.Errorf("%w: model id", domain.ErrInvalidID)
	}

	cacheKey := availabilityKey(id)

	if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
		var out []AvailableInstance
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("availability cache read failed", "error", err)
	}

	instances, err := s.instanceRepo.ListAvailableByModel(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]AvailableInstance, 0, len(instances))
	for _, inst := range instances {
		out = append(out, AvailableInstance{
			InstanceID: inst.ID.String(),
			ModelID:    inst.ModelID.String(),
		})
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, availabilityCacheTTL).Err(); err != nil {
			s.logger.Warn("availability cache write failed", "error", err)
		}
	}

	return out, nil
}

// RunBackgroundSweep proactively sweeps on a ticker until ctx is cancelled.
func (s *ReservationService) RunBackgroundSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("background sweeper started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("background sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(ctx); err != nil {
				s.logger.Error("background sweep failed", "error", err)
			}
		}
	}
}

func (s *ReservationService) invalidateAvailability(ctx context.Context, modelID uuid.UUID) {
	if err := s.cache.Del(ctx, availabilityKey(modelID)).Err(); err != nil {
		s.logger.Warn("availability cache invalidation failed", "model_id", modelID.String(), "error", err)
	}
}

func availabilityKey(modelID uuid.UUID) string {
	return fmt.Sprintf("instances:%s", modelID.String())
}

func parseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date", domain.ErrInvalidWindow)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date", domain.ErrInvalidWindow)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", domain.ErrInvalidWindow)
	}
	return start, end, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
