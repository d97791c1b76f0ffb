package hermes

import (
	"encoding/json"
	"testing"
)

func TestAnalysisRequestedParsing(t *testing.T) {
	raw := `{
		"request_id": "req-001",
		"url": "https://youtu.be/dQw4w9WgXcQ",
		"chunk_duration": 15
	}`

	var req AnalysisRequested
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("failed to parse AnalysisRequested: %v", err)
	}

	if req.RequestID != "req-001" {
		t.Errorf("expected request_id 'req-001', got '%s'", req.RequestID)
	}
	if req.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("expected url, got '%s'", req.URL)
	}
	if req.VideoID != "" {
		t.Errorf("expected empty video_id, got '%s'", req.VideoID)
	}
	if req.ChunkDuration == nil || *req.ChunkDuration != 15 {
		t.Errorf("expected chunk_duration 15, got %v", req.ChunkDuration)
	}
}

func TestAnalysisCompletedFields(t *testing.T) {
	evt := AnalysisCompleted{
		RequestID:          "req-rt",
		AnalysisID:         "7d0c8a3e-0000-0000-0000-000000000000",
		VideoID:            "dQw4w9WgXcQ",
		VideoTitle:         "Never Gonna",
		SegmentCount:       21,
		OverallScore:       -4,
		OverallComparative: -0.05,
		OverallLabel:       "negative",
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	for _, key := range []string{"request_id", "analysis_id", "video_id", "video_title", "segment_count", "overall_score", "overall_comparative", "overall_label"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("expected key %q in payload %s", key, data)
		}
	}
	if fields["overall_label"] != "negative" {
		t.Errorf("expected overall_label 'negative', got %v", fields["overall_label"])
	}
}

func TestAnalysisFailedOmitsEmptyVideoID(t *testing.T) {
	data, err := json.Marshal(AnalysisFailed{RequestID: "r", Code: "invalid_request", Error: "no video"})
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	json.Unmarshal(data, &fields)
	if _, ok := fields["video_id"]; ok {
		t.Errorf("expected video_id omitted, got %s", data)
	}
	if fields["code"] != "invalid_request" {
		t.Errorf("expected code invalid_request, got %v", fields["code"])
	}
}
