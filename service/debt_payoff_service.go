package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"debt-planner/advice"
	"debt-planner/domain"
	"debt-planner/repository"
)

type DebtPayoffService struct {
	debts   repository.DebtRepository
	cache   repository.CacheRepository
	advisor advice.Advisor
	ttl     time.Duration
}

func NewDebtPayoffService(
	debts repository.DebtRepository,
	cache repository.CacheRepository,
	advisor advice.Advisor,
	ttl time.Duration,
) *DebtPayoffService {
	if ttl <= 0 {
		ttl = DefaultProjectionTTL
	}
	return &DebtPayoffService{
		debts:   debts,
		cache:   cache,
		advisor: advisor,
		ttl:     ttl,
	}
}

// Project validates the request and returns its payoff projection with advice.
func (s *DebtPayoffService) Project(
	ctx context.Context,
	req domain.PayoffRequest,
) (domain.DebtProjection, error) {

	if err := validatePayoffRequest(req); err != nil {
		return domain.DebtProjection{}, err
	}

	projection := s.simulate(ctx, req)
	projection.Advice = s.advisor.Advise(ctx, projection)
	return projection, nil
}

// ProjectForUser projects the stored debts of a user.
func (s *DebtPayoffService) ProjectForUser(
	ctx context.Context,
	userID string,
	extra decimal.Decimal,
	strategy domain.Strategy,
) (domain.DebtProjection, error) {

	debts, err := s.debts.List(ctx, userID)
	if err != nil {
		return domain.DebtProjection{}, errors.Wrapf(err, "loading debts of user %s", userID)
	}

	return s.Project(ctx, domain.PayoffRequest{
		Debts:               debts,
		ExtraMonthlyPayment: extra,
		Strategy:            strategy,
	})
}

// simulate runs CalculateDebtPayoff behind the projection cache. The request
// must already be valid.
func (s *DebtPayoffService) simulate(ctx context.Context, req domain.PayoffRequest) domain.DebtProjection {
	key, err := projectionKey(req)
	if err != nil {
		log.Printf("Warning: failed to build projection cache key: %v", err)
		return CalculateDebtPayoff(req.Debts, req.ExtraMonthlyPayment, req.Strategy)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		var projection domain.DebtProjection
		if err := json.Unmarshal([]byte(cached), &projection); err == nil {
			return projection
		}
		log.Printf("Warning: discarding unreadable cached projection %s", key)
	}

	projection := CalculateDebtPayoff(req.Debts, req.ExtraMonthlyPayment, req.Strategy)

	// Guardar en caché (no crítico si falla)
	if data, err := json.Marshal(projection); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			log.Printf("Warning: failed to cache projection: %v", err)
		}
	}

	return projection
}

func projectionKey(req domain.PayoffRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "marshal payoff request")
	}
	return "projection:" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
