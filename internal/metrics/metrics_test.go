package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordRequest("GET", "/products", 200, 5*time.Millisecond)
	c.RecordRequest("GET", "/products", 200, 7*time.Millisecond)
	c.RecordRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordAIFallback(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordAIFallback()
	c.RecordAIFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.aiFailure))
}
