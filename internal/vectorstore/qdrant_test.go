package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestNewQdrantStore(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid URL with port",
			url:     "http://localhost:6333",
			wantErr: false,
		},
		{
			name:    "valid URL without port",
			url:     "http://qdrant-host",
			wantErr: false,
		},
		{
			name:    "empty URL defaults to localhost",
			url:     "",
			wantErr: false,
		},
		{
			name:    "invalid URL",
			url:     "http://[::1]:namedport",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewQdrantStore(tt.url)

			if tt.wantErr {
				if err == nil {
					t.Error("NewQdrantStore() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("NewQdrantStore() unexpected error: %v", err)
				return
			}
			if store == nil {
				t.Error("NewQdrantStore() returned nil store")
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{
			name:  "string value",
			value: &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: "Attention Is All You Need"}},
			want:  "Attention Is All You Need",
		},
		{
			name:  "integer value",
			value: &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 42}},
			want:  int64(42),
		},
		{
			name:  "double value",
			value: &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.25}},
			want:  0.25,
		},
		{
			name:  "bool value",
			value: &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: true}},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertValue(tt.value); got != tt.want {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	str := func(s string) *qdrant.Value {
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}}
	}
	payload := map[string]*qdrant.Value{
		"text":   str("Paper Title: X\n\nchunk body"),
		"source": str("1706.03762.pdf"),
		"title":  str("X"),
		"nil":    nil,
	}

	got := convertPayloadToMap(payload)

	if len(got) != 3 {
		t.Errorf("convertPayloadToMap() has %d keys, want 3 (nil dropped)", len(got))
	}
	if got["source"] != "1706.03762.pdf" {
		t.Errorf("source = %v, want filename", got["source"])
	}
}
