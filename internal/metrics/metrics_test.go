package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_RecordsAndServes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCallSuccess("account.get")
	c.RecordCallSuccess("account.get")
	c.RecordCallFailure("documents.create", "network")
	c.RecordCallLatency("account.get", 120*time.Millisecond)
	c.RecordCartAlert()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("metrics endpoint: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, want := range []string{
		`yaakai_remote_call_success_total{operation="account.get"} 2`,
		`yaakai_remote_call_fail_total{operation="documents.create",reason="network"} 1`,
		`yaakai_cart_alerts_total 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
