package briza

import (
	"errors"
	"testing"
)

func TestWriteMode_String(t *testing.T) {
	tests := []struct {
		mode     WriteMode
		expected string
	}{
		{WriteReplace, "REPLACE"},
		{WriteAppend, "APPEND"},
		{WriteMode(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("WriteMode(%d).String() = %q, expected %q", tt.mode, got, tt.expected)
		}
	}
}

func TestDirectoryResult_Counters(t *testing.T) {
	result := &DirectoryResult{Entries: []DirectoryEntry{
		{File: "a.csv", Result: &LoadResult{Table: "a_raw", RowsLoaded: 10}},
		{File: "b.csv", Result: &LoadResult{Table: "b_raw", Skipped: true}},
		{File: "c.csv", Err: errors.New("copy rejected")},
		{File: "d.csv", Result: &LoadResult{Table: "d_raw", RowsLoaded: 5}},
	}}

	if got := result.Loaded(); got != 2 {
		t.Errorf("Loaded() = %d, expected 2", got)
	}
	if got := result.Skipped(); got != 1 {
		t.Errorf("Skipped() = %d, expected 1", got)
	}
	if got := result.Failed(); got != 1 {
		t.Errorf("Failed() = %d, expected 1", got)
	}
}

func TestDirectoryResult_Empty(t *testing.T) {
	result := &DirectoryResult{}
	if result.Loaded()+result.Skipped()+result.Failed() != 0 {
		t.Error("empty result should count nothing")
	}
}
