package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCountersAndGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)

	metrics.IncMutation("add")
	metrics.IncMutation("add")
	metrics.IncPersistFailure("clear")
	metrics.SetTotalItems(5)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "op", "add"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected mutations=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_persist_failures_total", "op", "clear"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "cart_total_items"); err != nil {
		t.Fatalf("fetch gauge: %v", err)
	} else if got != 5 {
		t.Fatalf("expected total items 5, got %f", got)
	}
}

func TestCartMetricsNilSafe(t *testing.T) {
	var metrics *CartMetrics
	metrics.IncMutation("add")
	metrics.IncPersistFailure("add")
	metrics.SetTotalItems(1)

	empty := NewCartMetrics(nil)
	empty.IncMutation("add")
	empty.SetTotalItems(1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		return metric.GetGauge().GetValue(), nil
	}
	return 0, fmt.Errorf("metric %q has no samples", name)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
