package router

import (
	"os"
	"testing"

	"github.com/xiebiao/library-inventory/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}
