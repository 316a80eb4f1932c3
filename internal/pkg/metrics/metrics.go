package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// TransfersTotal counts executed transfers by terminal outcome.
	TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletctl_transfers_total",
			Help: "Number of transfer invocations by terminal outcome.",
		},
		[]string{"outcome"},
	)

	// TransferPollTicksTotal counts status reloads performed while waiting
	// for transfers to settle.
	TransferPollTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "walletctl_transfer_poll_ticks_total",
			Help: "Number of transfer status reloads performed.",
		},
	)

	// WalletsCreatedTotal counts successfully created wallets.
	WalletsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "walletctl_wallets_created_total",
			Help: "Number of wallets created through this tool.",
		},
	)

	// CustodyRequestsTotal counts custody API requests by operation and result.
	CustodyRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletctl_custody_requests_total",
			Help: "Number of custody API requests by operation and result.",
		},
		[]string{"operation", "result"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		TransfersTotal,
		TransferPollTicksTotal,
		WalletsCreatedTotal,
		CustodyRequestsTotal,
	)
}
