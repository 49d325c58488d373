package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptDays(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		def          int
		max          int
		want         int
		wantReprompt bool
	}{
		{"blank line accepts default", "\n", 1, 31, 1, false},
		{"parses value", "7\n", 1, 31, 7, false},
		{"strips whitespace", "  14  \n", 1, 31, 14, false},
		{"reprompts on junk", "abc\n5\n", 1, 31, 5, true},
		{"reprompts on zero", "0\n3\n", 1, 31, 3, true},
		{"reprompts on negative", "-2\n3\n", 1, 31, 3, true},
		{"reprompts beyond max", "45\n31\n", 1, 31, 31, true},
		{"keeps reprompting", "x\ny\n12\n", 1, 31, 12, true},
		{"default on end of input", "", 2, 31, 2, false},
		{"value at end without newline", "9", 1, 31, 9, false},
		{"default after invalid at end", "nope", 1, 31, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := promptDays(strings.NewReader(tt.input), &out, tt.def, tt.max)

			if got != tt.want {
				t.Errorf("promptDays(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Days of history") {
				t.Error("prompt label missing")
			}
			reprompted := strings.Contains(out.String(), "Enter a whole number")
			if reprompted != tt.wantReprompt {
				t.Errorf("reprompted = %v, want %v\noutput: %q", reprompted, tt.wantReprompt, out.String())
			}
		})
	}
}

func TestResolveDays(t *testing.T) {
	tests := []struct {
		name        string
		flagDays    int
		interactive bool
		input       string
		want        int
		wantErr     bool
	}{
		{"flag wins over prompt", 7, true, "3\n", 7, false},
		{"flag beyond max rejected", 45, false, "", 0, true},
		{"negative flag rejected", -1, false, "", 0, true},
		{"non-interactive default", 0, false, "", 1, false},
		{"interactive prompts", 0, true, "5\n", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := resolveDays(tt.flagDays, 1, 31, tt.interactive, strings.NewReader(tt.input), &out)

			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("resolveDays = %d, want %d", got, tt.want)
			}
		})
	}
}
