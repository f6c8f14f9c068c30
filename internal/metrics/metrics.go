package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the process-wide counters served on /metrics.
type Registry struct {
	Requests       Counter
	ServerErrors   Counter
	RequestMillis  Counter
	CartMutations  Counter
	OrdersPlaced   Counter
	OrdersCanceled Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

type Snapshot struct {
	Requests       uint64 `json:"requests"`
	ServerErrors   uint64 `json:"server_errors"`
	RequestMillis  uint64 `json:"request_millis_total"`
	CartMutations  uint64 `json:"cart_mutations"`
	OrdersPlaced   uint64 `json:"orders_placed"`
	OrdersCanceled uint64 `json:"orders_cancelled"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Requests:       r.Requests.Load(),
		ServerErrors:   r.ServerErrors.Load(),
		RequestMillis:  r.RequestMillis.Load(),
		CartMutations:  r.CartMutations.Load(),
		OrdersPlaced:   r.OrdersPlaced.Load(),
		OrdersCanceled: r.OrdersCanceled.Load(),
	}
}

func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(r.Snapshot())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests, 5xx responses and total handling time.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		timer := StartTimer()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, req)

		r.Requests.Inc()
		r.RequestMillis.Add(uint64(timer.Duration().Milliseconds()))
		if sw.status >= http.StatusInternalServerError {
			r.ServerErrors.Inc()
		}
	})
}
