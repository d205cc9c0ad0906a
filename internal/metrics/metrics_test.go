package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(sales)
	SaleRecorded()
	SaleRecorded()
	assert.Equal(t, before+2, testutil.ToFloat64(sales))

	before = testutil.ToFloat64(productsCreated)
	ProductCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(productsCreated))

	before = testutil.ToFloat64(sellersDeleted)
	SellerDeleted()
	assert.Equal(t, before+1, testutil.ToFloat64(sellersDeleted))
}

func TestObserveRequest(t *testing.T) {
	counter := httpRequests.WithLabelValues("GET", "/api/products", "200")
	before := testutil.ToFloat64(counter)

	ObserveRequest("GET", "/api/products", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandlerExposesRegistry(t *testing.T) {
	ProductCreated()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "marketplace_products_created_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
