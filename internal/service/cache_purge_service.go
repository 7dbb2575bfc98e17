package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	PurgePageSize       = 1000
	scheduledPurgeLimit = 5 * time.Minute
	aggregatorNamespace = "rajaongkir:"
	bearerPrefix        = "Bearer "
)

var purgeSecret = config.CachePurgeSecret

type CachePurgeServiceImpl struct {
	cache  repository.CacheRepository
	config *config.Config
	secret func() string
}

func CreateCachePurgeService(cache repository.CacheRepository, config *config.Config) CachePurgeService {
	return &CachePurgeServiceImpl{
		cache:  cache,
		config: config,
		secret: purgeSecret,
	}
}

// Authorize checks a bearer token against the secret as configured right
// now. An unset secret rejects everyone.
func (s *CachePurgeServiceImpl) Authorize(authorization string) error {
	secret := s.secret()
	if secret == "" {
		log.Warn().Str("component", "CachePurgeAuthorize").Msg("purge secret is not configured")
		return errs.ErrUnauthorized
	}

	if !strings.HasPrefix(authorization, bearerPrefix) {
		return errs.ErrUnauthorized
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))

	if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return errs.ErrUnauthorized
	}

	return nil
}

// Purge deletes every key under prefix except session keys, one scan page at a time. On failure
// the keys of earlier pages stay deleted.
func (s *CachePurgeServiceImpl) Purge(ctx context.Context, prefix string) (int64, error) {
	namespace := s.config.CacheConfig.KeyPrefix
	if prefix == "" {
		prefix = namespace
	}
	sessions := s.config.SessionConfig.KeyPrefix
	if !strings.HasPrefix(prefix, namespace) || (sessions != "" && strings.HasPrefix(prefix, sessions)) {
		return 0, errs.ErrInvalidPrefix
	}

	match := escapeGlob(prefix) + "*"

	var (
		cursor uint64
		total  int64
	)
	for {
		keys, next, err := s.cache.ScanKeys(ctx, match, cursor, PurgePageSize)
		if err != nil {
			return total, fmt.Errorf("scanning %q: %w", prefix, errs.ErrInternalServer)
		}

		// session keys share the match when the namespaces overlap
		if sessions != "" && strings.HasPrefix(sessions, prefix) {
			keys = withoutPrefix(keys, sessions)
		}

		if len(keys) > 0 {
			deleted, err := s.cache.DeleteKeys(ctx, keys...)
			total += deleted
			if err != nil {
				return total, fmt.Errorf("deleting keys under %q: %w", prefix, errs.ErrInternalServer)
			}
		}

		if next == 0 {
			break
		}
		cursor = next
	}

	log.Ctx(ctx).Info().Str("component", "CachePurge").Str("prefix", prefix).Int64("purged_keys", total).Msg("cache purged")

	return total, nil
}

// PurgeAggregatorCache runs from the scheduler.
func (s *CachePurgeServiceImpl) PurgeAggregatorCache() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledPurgeLimit)
	defer cancel()

	log.Info().Str("component", "PurgeAggregatorCache").Msg("cron starts")
	if _, err := s.Purge(ctx, s.config.CacheConfig.KeyPrefix+aggregatorNamespace); err != nil {
		log.Error().Err(err).Str("component", "PurgeAggregatorCache").Msg("")
	}
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func withoutPrefix(keys []string, prefix string) []string {
	kept := keys[:0]
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			kept = append(kept, key)
		}
	}
	return kept
}
