package helpers

import "testing"

func TestParseKeyValueString(t *testing.T) {
	data := ParseKeyValueString(`name="Mario Kart" min=2 max=8`)

	if data["name"] != "Mario Kart" {
		t.Errorf("name = %q, want %q", data["name"], "Mario Kart")
	}
	if data["min"] != "2" || data["max"] != "8" {
		t.Errorf("min/max = %q/%q, want 2/8", data["min"], data["max"])
	}
}

func TestParseKeyValueStringSkipsMalformed(t *testing.T) {
	data := ParseKeyValueString("emoji=🏎️ junk name=Valheim")

	if len(data) != 2 {
		t.Fatalf("%d entries, want 2: %v", len(data), data)
	}
	if data["emoji"] != "🏎️" || data["name"] != "Valheim" {
		t.Fatalf("unexpected map: %v", data)
	}
}
