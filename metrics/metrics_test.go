package metrics_test

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cluedesc/clueapi-sub000/metrics"
)

var _ = Describe("Metrics", func() {
	It("serves its counters on its own handler", func() {
		m := metrics.New("test")
		m.PoolSize.Set(4)
		m.Accepted.Inc()
		m.ObserveRequest("/users/{id}", 204)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/metrics", nil)

		m.Handler().ServeHTTP(rr, req)

		Expect(rr.Code).To(Equal(200))
		Expect(rr.Body.String()).To(ContainSubstring("clueapi_conn_pool_size"))
		Expect(rr.Body.String()).To(ContainSubstring("clueapi_requests_total"))
	})
})
