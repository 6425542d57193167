package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse_StrictDecoding(t *testing.T) {
	data := []byte(`{
		"name": "Test",
		"items": {},
		"chapters": {},
		"scenes": {},
		"opening_chapter": "ch1",
		"opening_scene": "sc1",
		"not_a_field": true
	}`)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("Expected unknown field to be rejected")
	}
	if !strings.Contains(err.Error(), "not_a_field") {
		t.Errorf("Expected error to name the unknown field, got: %v", err)
	}
}

func TestSolution_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Solution
		wantErr  bool
	}{
		{
			name:     "string form",
			data:     `"12080"`,
			expected: Solution{Value: "12080"},
		},
		{
			name:     "array form",
			data:     `["heart", "lung", "liver"]`,
			expected: Solution{Values: []string{"heart", "lung", "liver"}, IsList: true},
		},
		{
			name:     "empty array",
			data:     `[]`,
			expected: Solution{Values: []string{}, IsList: true},
		},
		{
			name:    "number is rejected",
			data:    `12080`,
			wantErr: true,
		},
		{
			name:    "object is rejected",
			data:    `{"value": "12080"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Solution
			err := json.Unmarshal([]byte(tt.data), &s)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.IsList != tt.expected.IsList || s.Value != tt.expected.Value {
				t.Errorf("Expected %+v, got %+v", tt.expected, s)
			}
			if len(s.Values) != len(tt.expected.Values) {
				t.Fatalf("Expected values %v, got %v", tt.expected.Values, s.Values)
			}
			for i := range s.Values {
				if s.Values[i] != tt.expected.Values[i] {
					t.Errorf("Expected values %v, got %v", tt.expected.Values, s.Values)
					break
				}
			}
		})
	}
}

func TestSolution_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Answer("reflect"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `"reflect"` {
		t.Errorf("Expected string form, got %s", data)
	}

	data, err = json.Marshal(AnswerList("a", "b"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("Expected array form, got %s", data)
	}
}

func TestHotspot_Contains(t *testing.T) {
	rect := Hotspot{ID: "bed", Shape: ShapeRect, Coords: []float64{0.1, 0.2, 0.5, 0.6}}
	tri := Hotspot{ID: "vent", Shape: ShapePoly, Coords: []float64{0.0, 0.0, 1.0, 0.0, 0.0, 1.0}}

	tests := []struct {
		name     string
		hotspot  Hotspot
		x, y     float64
		expected bool
	}{
		{"rect inside", rect, 0.3, 0.4, true},
		{"rect on edge", rect, 0.1, 0.2, true},
		{"rect outside", rect, 0.6, 0.4, false},
		{"poly inside", tri, 0.2, 0.2, true},
		{"poly outside", tri, 0.9, 0.9, false},
		{"rect with bad coords", Hotspot{Shape: ShapeRect, Coords: []float64{0.1}}, 0.1, 0.1, false},
		{"unknown shape", Hotspot{Shape: "circle", Coords: []float64{0.5, 0.5}}, 0.5, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hotspot.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestScene_Lookups(t *testing.T) {
	scene := &Scene{
		Hotspots: []Hotspot{{ID: "door"}},
		Events:   []Event{{ID: "open_door"}},
		Puzzles:  []Puzzle{{ID: "door_code"}},
	}

	if _, ok := scene.Hotspot("door"); !ok {
		t.Error("Expected hotspot lookup to succeed")
	}
	if _, ok := scene.Event("open_door"); !ok {
		t.Error("Expected event lookup to succeed")
	}
	if _, ok := scene.Puzzle("door_code"); !ok {
		t.Error("Expected puzzle lookup to succeed")
	}
	if _, ok := scene.Hotspot("window"); ok {
		t.Error("Expected unknown hotspot lookup to fail")
	}
}
