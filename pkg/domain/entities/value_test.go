package entities

import (
	"encoding/json"
	"testing"
)

func TestValue_States(t *testing.T) {
	missing := Missing[float64]()
	if missing.IsValid() || missing.State() != Absent {
		t.Errorf("Expected absent value, got %s", missing.State())
	}
	if got := missing.OrElse(50); got != 50 {
		t.Errorf("Expected fallback 50, got %g", got)
	}

	unparsed := Unparsed[float64]("n/a")
	if unparsed.IsValid() || unparsed.State() != Invalid {
		t.Errorf("Expected invalid value, got %s", unparsed.State())
	}
	if unparsed.Raw() != "n/a" {
		t.Errorf("Expected raw text n/a, got %q", unparsed.Raw())
	}

	known := Known(12.5)
	v, ok := known.Get()
	if !ok || v != 12.5 {
		t.Errorf("Expected valid 12.5, got %g (valid=%v)", v, ok)
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	payload := struct {
		A Value[float64] `json:"a"`
		B Value[float64] `json:"b"`
		C Value[float64] `json:"c"`
	}{Known(3.5), Missing[float64](), Unparsed[float64]("x")}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	expected := `{"a":3.5,"b":null,"c":null}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestMaterialAndResource_Validation(t *testing.T) {
	if _, err := NewMaterial("", Known(3.0)); err == nil || err.Error() != "material id cannot be empty" {
		t.Errorf("Expected material id error, got %v", err)
	}
	if _, err := NewResource("", "P1", Known(80.0)); err == nil || err.Error() != "resource id cannot be empty" {
		t.Errorf("Expected resource id error, got %v", err)
	}

	m, err := NewMaterial("MAT-1", Missing[float64]())
	if err != nil {
		t.Fatalf("Expected valid material creation to succeed: %v", err)
	}
	if m.CoverageDays.IsValid() {
		t.Errorf("Expected coverage to be unknown")
	}
}
