package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mercator-hq/themisto/pkg/audit"
)

func TestParseTimeRange(t *testing.T) {
	since, until, err := parseTimeRange("2026-08-01T00:00:00Z/2026-08-30T00:00:00Z")
	if err != nil {
		t.Fatalf("parseTimeRange() error = %v, want nil", err)
	}
	if want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC); !since.Equal(want) {
		t.Errorf("since = %v, want %v", since, want)
	}
	if want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC); !until.Equal(want) {
		t.Errorf("until = %v, want %v", until, want)
	}
}

func TestParseTimeRange_Invalid(t *testing.T) {
	cases := []string{
		"2026-08-01T00:00:00Z",
		"not-a-time/2026-08-30T00:00:00Z",
		"2026-08-01T00:00:00Z/not-a-time",
		"",
	}
	for _, in := range cases {
		if _, _, err := parseTimeRange(in); err == nil {
			t.Errorf("parseTimeRange(%q) error = nil, want error", in)
		}
	}
}

func TestBuildAuditQuery(t *testing.T) {
	saved := auditFlags
	defer func() { auditFlags = saved }()

	auditFlags.subject = "alice"
	auditFlags.outcome = "denied"
	auditFlags.timeRange = "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z"
	auditFlags.limit = 25
	auditFlags.offset = 50

	query, err := buildAuditQuery()
	if err != nil {
		t.Fatalf("buildAuditQuery() error = %v, want nil", err)
	}
	if query.Subject != "alice" {
		t.Errorf("query subject = %q, want %q", query.Subject, "alice")
	}
	if query.Outcome != "denied" {
		t.Errorf("query outcome = %q, want %q", query.Outcome, "denied")
	}
	if query.Since.IsZero() || query.Until.IsZero() {
		t.Error("query time window not set from --time-range")
	}
	if query.Limit != 25 || query.Offset != 50 {
		t.Errorf("query limit/offset = %d/%d, want 25/50", query.Limit, query.Offset)
	}
}

func TestWriteAuditText(t *testing.T) {
	records := []*audit.Record{
		{
			ID:         "rec-1",
			RecordedAt: time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			Subject:    "alice",
			ActionID:   "urn:themisto:names:authz:2.0:action:id-purgeObject",
			PID:        "demo:1",
			Mode:       "enforce-policies",
			Outcome:    "denied",
			Denies:     1,
			Batch:      2,
		},
	}

	var buf bytes.Buffer
	if err := writeAuditText(&buf, records); err != nil {
		t.Fatalf("writeAuditText() error = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{"rec-1", "alice", "demo:1", "denied", "Batch size: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteAuditText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeAuditText(&buf, nil); err != nil {
		t.Fatalf("writeAuditText() error = %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "No records found.") {
		t.Errorf("empty output = %q, want no-records notice", buf.String())
	}
}

func TestWriteAuditJSON(t *testing.T) {
	records := []*audit.Record{
		{ID: "rec-1", Outcome: "permitted"},
		{ID: "rec-2", Outcome: "denied"},
	}

	var buf bytes.Buffer
	if err := writeAuditJSON(&buf, records); err != nil {
		t.Fatalf("writeAuditJSON() error = %v, want nil", err)
	}

	var decoded struct {
		TotalRecords int             `json:"total_records"`
		Records      []*audit.Record `json:"records"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalRecords != 2 {
		t.Errorf("total_records = %d, want 2", decoded.TotalRecords)
	}
	if len(decoded.Records) != 2 || decoded.Records[1].Outcome != "denied" {
		t.Errorf("records round-trip = %+v, want 2 records with outcomes", decoded.Records)
	}
}
