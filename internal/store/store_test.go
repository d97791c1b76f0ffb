package store

import (
	"strings"
	"testing"
)

func TestSchema_Idempotent(t *testing.T) {
	for i, stmt := range schema {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("schema statement %d is not idempotent: %s", i, stmt)
		}
	}
}

func TestSegmentColumns_MatchSchema(t *testing.T) {
	var table string
	for _, stmt := range schema {
		if strings.Contains(stmt, "TABLE IF NOT EXISTS analysis_segments") {
			table = stmt
		}
	}
	if table == "" {
		t.Fatal("analysis_segments table missing from schema")
	}
	for _, col := range segmentColumns {
		if !strings.Contains(table, "\t"+col+" ") {
			t.Errorf("column %q not declared in analysis_segments", col)
		}
	}
}
