package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "tm1_get_dimension",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "tm1_get_dimension",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordRequest(tt.tool, tt.duration, tt.success)

			counter, err := RequestsTotal.GetMetricWithLabelValues(tt.tool, tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}

			var m dto.Metric
			if err := counter.Write(&m); err != nil {
				t.Fatalf("failed to write metric: %v", err)
			}

			if m.Counter.GetValue() < 1 {
				t.Error("expected counter to be incremented")
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name       string
		object     string
		action     string
		success    bool
		wantStatus string
	}{
		{
			name:       "successful dimension create",
			object:     "dimension",
			action:     "create",
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed hierarchy update",
			object:     "hierarchy",
			action:     "update",
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPICall(tt.object, tt.action, 0.1, tt.success)

			counter, err := APIRequestsTotal.GetMetricWithLabelValues(tt.object, tt.action, tt.wantStatus)
			if err != nil {
				t.Fatalf("failed to get metric: %v", err)
			}

			var m dto.Metric
			if err := counter.Write(&m); err != nil {
				t.Fatalf("failed to write metric: %v", err)
			}

			if m.Counter.GetValue() < 1 {
				t.Error("expected counter to be incremented")
			}
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", 200, 0.05)

	counter, err := HTTPRequestsTotal.GetMetricWithLabelValues("GET", "200")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if m.Counter.GetValue() < 1 {
		t.Error("expected counter to be incremented")
	}
}

func TestRecordHTTPRequest_FailedStatusZero(t *testing.T) {
	RecordHTTPRequest("POST", 0, 1.5)

	counter, err := HTTPRequestsTotal.GetMetricWithLabelValues("POST", "0")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if m.Counter.GetValue() < 1 {
		t.Error("expected counter to be incremented for status 0")
	}
}
