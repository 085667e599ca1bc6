package tellergo

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	// Metrics
	serviceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tellergo_service_requests_total",
		Help: "How many service requests were handled, by method and outcome.",
	}, []string{"method", "outcome"})

	serviceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "tellergo_service_request_duration_seconds",
		Help: "Service request latency, by method.",
	}, []string{"method"})
)

// metricsMiddleware records a counter and latency observation per
// operation. Outcome is "ok" or "error"; domain refusals count as errors
// here since the caller was not served what it asked for.
type metricsMiddleware struct {
	next Service
}

var (
	_ Service = (*metricsMiddleware)(nil)
)

func NewMetricsMiddleware() Middleware {
	return func(next Service) Service {
		return &metricsMiddleware{next: next}
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *metricsMiddleware) observe(method string, begin time.Time, err error) {
	serviceDuration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
	serviceRequests.WithLabelValues(method, outcome(err)).Inc()
}

func (m *metricsMiddleware) CreateAccount(req CreateAccountReq) (*Account, error) {
	begin := time.Now()
	acct, err := m.next.CreateAccount(req)
	m.observe("create_account", begin, err)
	return acct, err
}

func (m *metricsMiddleware) Deposit(req ChargeReq) (*decimal.Decimal, error) {
	begin := time.Now()
	bal, err := m.next.Deposit(req)
	m.observe("deposit", begin, err)
	return bal, err
}

func (m *metricsMiddleware) Withdraw(req ChargeReq) (*decimal.Decimal, error) {
	begin := time.Now()
	bal, err := m.next.Withdraw(req)
	m.observe("withdraw", begin, err)
	return bal, err
}

func (m *metricsMiddleware) Balance(req BalanceReq) (*decimal.Decimal, error) {
	begin := time.Now()
	bal, err := m.next.Balance(req)
	m.observe("balance", begin, err)
	return bal, err
}

func (m *metricsMiddleware) Transactions() ([]Transaction, error) {
	begin := time.Now()
	txns, err := m.next.Transactions()
	m.observe("transactions", begin, err)
	return txns, err
}

func (m *metricsMiddleware) Statement(w io.Writer, req StatementReq) error {
	begin := time.Now()
	err := m.next.Statement(w, req)
	m.observe("statement", begin, err)
	return err
}
