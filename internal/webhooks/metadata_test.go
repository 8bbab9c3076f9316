package webhooks

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseCustomData(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   map[string]string
	}{
		{name: "empty", tokens: nil, want: map[string]string{}},
		{name: "pairs", tokens: []string{"message=Hi", "link="}, want: map[string]string{"message": "Hi", "link": ""}},
		{name: "first equals splits", tokens: []string{"link=https://x.io/?a=b=c"}, want: map[string]string{"link": "https://x.io/?a=b=c"}},
		{name: "no equals", tokens: []string{"flag"}, want: map[string]string{"flag": ""}},
		{name: "later duplicate wins", tokens: []string{"message=one", "message=two"}, want: map[string]string{"message": "two"}},
		{name: "empty key", tokens: []string{"=v"}, want: map[string]string{"": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCustomData(tt.tokens); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCustomData(%q) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestDecodeCustomData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "token array", raw: `["message=Hi","link=https://x.io"]`, want: map[string]string{"message": "Hi", "link": "https://x.io"}},
		{name: "array with non strings", raw: `["message=Hi",3,null]`, want: map[string]string{"message": "Hi"}},
		{name: "object", raw: `{"message":"Hi","link":"","n":5}`, want: map[string]string{"message": "Hi", "link": ""}},
		{name: "null", raw: `null`, want: map[string]string{}},
		{name: "number", raw: `42`, want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeCustomData(json.RawMessage(tt.raw)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeCustomData(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
