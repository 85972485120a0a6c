package kitties

import (
	"github.com/iov-one/kitties/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an EventSink exposing the registry activity as prometheus
// metrics.
type Metrics struct {
	created     prometheus.Counter
	transferred prometheus.Counter
	supply      prometheus.Gauge
	rejected    *prometheus.CounterVec
}

var _ EventSink = (*Metrics)(nil)

// NewMetrics returns metrics that are not registered with any registry yet.
func NewMetrics() *Metrics {
	return &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kitties_created_total",
			Help: "Number of kitties minted.",
		}),
		transferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kitties_transferred_total",
			Help: "Number of kitty transfers.",
		}),
		supply: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kitties_supply",
			Help: "Number of kitties in existence.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kitties_rejected_total",
			Help: "Number of rejected operations by operation and reason.",
		}, []string{"op", "reason"}),
	}
}

// Register adds all metrics to the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.created, m.transferred, m.supply, m.rejected} {
		if err := reg.Register(c); err != nil {
			return errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return nil
}

func (m *Metrics) Created(e *CreatedEvent) {
	m.created.Inc()
	m.Supply(e.Count)
}

func (m *Metrics) Supply(count uint64) {
	m.supply.Set(float64(count))
}

func (m *Metrics) Transferred(*TransferredEvent) {
	m.transferred.Inc()
}

func (m *Metrics) Rejected(op string, err error) {
	m.rejected.WithLabelValues(op, rejectReason(err)).Inc()
}

var rejectReasons = []struct {
	err    *errors.Error
	reason string
}{
	{ErrDuplicateToken, "duplicate"},
	{ErrTooManyOwned, "too_many_owned"},
	{ErrNoSuchToken, "no_such_token"},
	{ErrNotOwner, "not_owner"},
	{ErrTransferToSelf, "transfer_to_self"},
	{errors.ErrOverflow, "overflow"},
}

func rejectReason(err error) string {
	for _, r := range rejectReasons {
		if r.err.Is(err) {
			return r.reason
		}
	}
	return "other"
}
