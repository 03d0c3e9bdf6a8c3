package export

import (
	"bytes"
	"testing"
)

func TestLoadJSON_RoundTrip(t *testing.T) {
	original := sampleLevel()
	data, err := ExportJSON(original)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	loaded, err := LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	if !loaded.Grid.Equal(original.Grid) {
		t.Error("grid did not survive the round trip")
	}
	if loaded.Spawn != original.Spawn || loaded.Goal != original.Goal {
		t.Error("spawn or goal did not survive the round trip")
	}
	if len(loaded.Coins) != len(original.Coins) || len(loaded.Enemies) != len(original.Enemies) {
		t.Error("entity lists did not survive the round trip")
	}

	// Re-export must reproduce the exact bytes.
	again, err := ExportJSON(loaded)
	if err != nil {
		t.Fatalf("ExportJSON after load: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("export-load-export is not byte-stable")
	}
}

func TestLoadJSON_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"zero dimensions", `{"width":0,"height":0,"grid":[]}`},
		{"row count mismatch", `{"width":2,"height":2,"grid":[[0,0]]}`},
		{"row width mismatch", `{"width":2,"height":1,"grid":[[0]]}`},
		{"bad cell value", `{"width":2,"height":1,"grid":[[0,7]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSON([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
