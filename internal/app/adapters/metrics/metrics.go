package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParsesTotal - количество разборов по стратегии и итоговой письменности.
	ParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addr_parses_total",
			Help: "Total number of parsed address texts per strategy and script",
		},
		[]string{"strategy", "script"},
	)

	// FieldsExtracted - сколько непустых полей каждого типа найдено.
	FieldsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addr_fields_extracted_total",
			Help: "Total number of non-empty fields per key, split by guessed flag",
		},
		[]string{"key", "guessed"},
	)

	// ParseDuration - время разбора одного текста.
	ParseDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "addr_parse_duration_seconds",
			Help:    "Time to parse one address text",
			Buckets: prometheus.ExponentialBuckets(0.00005, 1.5, 25),
		},
	)

	// CacheRequests - попадания и промахи кэша разборов.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addr_parse_cache_requests_total",
			Help: "Parse cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	// SessionsActive - открытые сессии редактирования.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "addr_sessions_active",
		Help: "Number of edit sessions currently held in memory",
	})

	// EditsApplied - применённые правки по типу операции.
	EditsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addr_edits_applied_total",
			Help: "Total number of edits applied to sessions per operation",
		},
		[]string{"op"},
	)

	// AddressesCommitted - сохранённые адреса.
	AddressesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "addr_committed_total",
		Help: "Total number of committed addresses",
	})

	// HTTPRequests - запросы к API по маршруту и коду ответа.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addr_http_requests_total",
			Help: "Total number of HTTP requests per method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// WSConnections - открытые websocket-соединения предпросмотра.
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "addr_ws_connections",
		Help: "Number of open live preview websocket connections",
	})
)
