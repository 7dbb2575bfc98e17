package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	MinDestinationQueryLength = 3
	DefaultDestinationLimit   = 10
	maxDestinationLimit       = 50
	DefaultShippingWeight     = 1000

	destinationCacheTTL = 24 * time.Hour
	costCacheTTL        = time.Hour
)

var courierNames = map[string]string{
	"jne":      "JNE",
	"sicepat":  "SiCepat",
	"jnt":      "J&T Express",
	"pos":      "POS Indonesia",
	"tiki":     "TIKI",
	"anteraja": "AnterAja",
	"ninja":    "Ninja Xpress",
	"lion":     "Lion Parcel",
	"ide":      "ID Express",
	"sap":      "SAP Express",
	"wahana":   "Wahana",
}

type ShippingServiceImpl struct {
	aggregator ShippingAggregator
	cache      repository.CacheRepository
	config     *config.Config
}

func CreateShippingService(aggregator ShippingAggregator, cache repository.CacheRepository, config *config.Config) ShippingService {
	return &ShippingServiceImpl{
		aggregator: aggregator,
		cache:      cache,
		config:     config,
	}
}

// SearchDestinations never calls the aggregator for queries shorter than
// MinDestinationQueryLength.
func (s *ShippingServiceImpl) SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error) {
	search = strings.TrimSpace(search)
	if len([]rune(search)) < MinDestinationQueryLength {
		return []domain.Destination{}, nil
	}

	if limit <= 0 {
		limit = DefaultDestinationLimit
	}
	if limit > maxDestinationLimit {
		limit = maxDestinationLimit
	}
	if offset < 0 {
		offset = 0
	}

	key := fmt.Sprintf("%srajaongkir:destinations:%s:%d:%d", s.config.CacheConfig.KeyPrefix, strings.ToLower(search), limit, offset)

	var destinations []domain.Destination
	if s.readCache(ctx, key, &destinations) {
		return destinations, nil
	}

	destinations, err := s.aggregator.SearchDestinations(ctx, search, limit, offset)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchDestinations").Str("search", search).Msg("")
		return nil, err
	}

	if len(destinations) > 0 {
		s.writeCache(ctx, key, destinations, destinationCacheTTL)
	}

	return destinations, nil
}

// CalculateShipping quotes every configured courier from the configured
// origin. Options come back cheapest first.
func (s *ShippingServiceImpl) CalculateShipping(ctx context.Context, destinationID string, weight int) ([]domain.ShippingOption, error) {
	destinationID = strings.TrimSpace(destinationID)
	if destinationID == "" {
		return nil, fmt.Errorf("destination id is required: %w", errs.ErrValidation)
	}
	if weight <= 0 {
		weight = DefaultShippingWeight
	}

	req := dto.CostRequest{
		Origin:      s.config.RajaOngkirConfig.OriginID,
		Destination: destinationID,
		Weight:      weight,
		Couriers:    s.config.RajaOngkirConfig.Couriers,
	}

	key := fmt.Sprintf("%srajaongkir:cost:%s:%s:%d:%s", s.config.CacheConfig.KeyPrefix, req.Origin, req.Destination, req.Weight, strings.Join(req.Couriers, ":"))

	var options []domain.ShippingOption
	if s.readCache(ctx, key, &options) {
		return options, nil
	}

	options, err := s.aggregator.CalculateCost(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CalculateShipping").Str("destination_id", destinationID).Msg("")
		return nil, err
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost < options[j].Cost
	})

	if len(options) > 0 {
		s.writeCache(ctx, key, options, costCacheTTL)
	}

	return options, nil
}

func (s *ShippingServiceImpl) GetCouriers() []domain.Courier {
	couriers := make([]domain.Courier, 0, len(s.config.RajaOngkirConfig.Couriers))
	for _, code := range s.config.RajaOngkirConfig.Couriers {
		name, ok := courierNames[code]
		if !ok {
			name = strings.ToUpper(code)
		}
		couriers = append(couriers, domain.Courier{Code: code, Name: name})
	}

	return couriers
}

// Cache failures only cost an extra aggregator call.
func (s *ShippingServiceImpl) readCache(ctx context.Context, key string, dst interface{}) bool {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil || !found {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "ShippingCache").Str("key", key).Msg("discarding unreadable entry")
		return false
	}

	return true
}

func (s *ShippingServiceImpl) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ShippingCache").Msg("")
		return
	}

	_ = s.cache.Set(ctx, key, raw, ttl)
}
