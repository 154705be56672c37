package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTagListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want TagList
	}{
		{"array form", `["nlp","vision"]`, TagList{"nlp", "vision"}},
		{"empty array", `[]`, TagList{}},
		{"comma string", `"nlp, vision"`, TagList{"nlp", "vision"}},
		{"array literal string", `"{nlp,vision}"`, TagList{"nlp", "vision"}},
		{"quoted literal entries", `"{\"nlp\",\"computer vision\"}"`, TagList{"nlp", "computer vision"}},
		{"single name string", `"nlp"`, TagList{"nlp"}},
		{"empty string", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.json, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.json, got, tt.want)
			}
		})
	}
}

func TestTagListUnmarshalJSONRejectsOtherTypes(t *testing.T) {
	var got TagList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("Unmarshal(42) succeeded, want error")
	}
}

func TestParseTagNames(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"{tag1,tag2}", []string{"tag1", "tag2"}},
		{"tag1, tag2", []string{"tag1", "tag2"}},
		{"  tag1 ,, tag2  ", []string{"tag1", "tag2"}},
		{`{"machine learning","nlp"}`, []string{"machine learning", "nlp"}},
		{"{}", nil},
		{"", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		got := ParseTagNames(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTagNames(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		list TagList
		want []string
	}{
		{"case collapse", TagList{"NLP", "nlp", " Nlp "}, []string{"nlp"}},
		{"order preserved", TagList{"vision", "nlp", "vision"}, []string{"vision", "nlp"}},
		{"empties dropped", TagList{"", "  ", "nlp"}, []string{"nlp"}},
		{"legacy delimited element", TagList{"{NLP, Vision}"}, []string{"nlp", "vision"}},
		{"empty list", TagList{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Normalized(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalized() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
