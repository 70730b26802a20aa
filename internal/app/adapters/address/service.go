package address

import (
	"github.com/cespare/xxhash/v2"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	domain "github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"strconv"
	"time"
)

// Service parses address texts with the configured parser and remembers the
// results. A nil cache disables caching.
type Service struct {
	log    logger.Logger
	parser *domain.Parser
	cache  *storage.Cache[domain.FieldSet]
}

func New(log logger.Logger, cfg config.Parser, cache *storage.Cache[domain.FieldSet]) *Service {
	opts := []domain.Option{domain.WithDefaultStrategy(cfg.Strategy)}
	if len(cfg.Mandatory) > 0 {
		opts = append(opts, domain.WithMandatory(cfg.Mandatory...))
	}

	return &Service{
		log:    log,
		parser: domain.NewParser(opts...),
		cache:  cache,
	}
}

func (s *Service) Detect(text string) (domain.Script, bool) {
	return domain.DetectScript(text), domain.HasMixedScript(text)
}

func (s *Service) Transliterate(text string) string {
	return domain.Transliterate(text)
}

func (s *Service) Resolve(text string, strategy domain.Strategy) domain.Strategy {
	return s.parser.Resolve(text, strategy)
}

func (s *Service) Mandatory() []domain.FieldKey {
	return s.parser.Mandatory()
}

func (s *Service) Parse(text string, strategy domain.Strategy) domain.FieldSet {
	key := cacheKey(text, strategy)
	if s.cache != nil {
		if set, ok := s.cache.Get(key); ok {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			s.log.Trace("Parse cache hit", "key", key)
			return set
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	set := s.parser.Parse(text, strategy)
	elapsed := time.Since(start)

	metrics.ParseDuration.Observe(elapsed.Seconds())
	metrics.ParsesTotal.WithLabelValues(strategy.String(), set.Script.String()).Inc()
	for _, f := range set.Fields {
		if f.Empty() {
			continue
		}
		metrics.FieldsExtracted.WithLabelValues(f.Key.String(), strconv.FormatBool(f.Guessed)).Inc()
	}

	s.log.Debug("Address parsed",
		"strategy", strategy.String(),
		"script", set.Script.String(),
		"fields", len(set.Fields),
		"mixed", set.MixedScript,
		"elapsed", elapsed,
	)

	if s.cache != nil {
		s.cache.Set(key, set)
	}
	return set
}

func cacheKey(text string, strategy domain.Strategy) string {
	return strconv.FormatUint(xxhash.Sum64String(strategy.String()+"\x00"+text), 16)
}
