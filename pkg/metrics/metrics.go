package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PayloadsGenerated counts relation payloads built, by HA mode.
	PayloadsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charm_ha_payloads_generated_total",
			Help: "Total number of HA relation payloads generated by mode (vip or dns)",
		},
		[]string{"mode"},
	)

	// BlockedErrors counts blocking configuration failures, by reason.
	BlockedErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charm_ha_blocked_errors_total",
			Help: "Total number of blocking configuration errors by reason",
		},
		[]string{"reason"},
	)

	// VIPFallbacks counts VIPs whose interface or netmask came from
	// configured fallback values rather than discovery.
	VIPFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "charm_ha_vip_fallbacks_total",
			Help: "Total number of VIPs configured from fallback interface/netmask settings",
		},
	)

	// PublishesTotal counts relation writes, by outcome.
	PublishesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charm_ha_publishes_total",
			Help: "Total number of relation publish attempts by outcome (published or unchanged)",
		},
		[]string{"outcome"},
	)
)

// Blocking error reasons.
const (
	ReasonUnsupportedRelease = "unsupported_release"
	ReasonBadHostnameSetting = "bad_hostname_setting"
	ReasonEmptyHostnameGroup = "empty_hostname_group"
)

// Publish outcomes.
const (
	OutcomePublished = "published"
	OutcomeUnchanged = "unchanged"
)

func init() {
	prometheus.MustRegister(
		PayloadsGenerated,
		BlockedErrors,
		VIPFallbacks,
		PublishesTotal,
	)
}

// Handler returns the HTTP handler exposing registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
