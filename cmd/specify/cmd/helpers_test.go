package cmd

import (
	"reflect"
	"testing"
)

func TestSplitAgentFlags(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"claude"}, []string{"claude"}},
		{[]string{"claude,copilot"}, []string{"claude", "copilot"}},
		{[]string{"claude", "copilot,gemini"}, []string{"claude", "copilot", "gemini"}},
		{[]string{" claude , copilot "}, []string{"claude", "copilot"}},
		{[]string{",,"}, nil},
	}
	for _, tt := range tests {
		if got := splitAgentFlags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAgentFlags(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken(""); got != "" {
		t.Errorf("maskToken(empty) = %q", got)
	}
	if got := maskToken("short"); got != "********" {
		t.Errorf("maskToken(short) = %q", got)
	}
	if got := maskToken("ghp_1234567890abcdef"); got != "ghp_...cdef" {
		t.Errorf("maskToken(long) = %q", got)
	}
}
