package cmdargs

import (
	"errors"
	"testing"
)

func TestParseQuoteStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    QuoteStyle
		wantErr bool
	}{
		{input: "shell", want: QuoteShell},
		{input: "", wantErr: true},
		{input: "single", wantErr: true},
		{input: "SHELL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuoteStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuoteStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var qe *QuoteStyleError
				if !errors.As(err, &qe) {
					t.Fatalf("expected QuoteStyleError, got %T", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseQuoteStyle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuoteStyle_Apply(t *testing.T) {
	tests := []struct {
		name  string
		style QuoteStyle
		input string
		want  string
	}{
		{name: "none passes through", style: QuoteNone, input: "a b", want: "a b"},
		{name: "shell plain word unchanged", style: QuoteShell, input: "plain", want: "plain"},
		{name: "shell embedded space", style: QuoteShell, input: "a b", want: "'a b'"},
		{name: "shell empty string", style: QuoteShell, input: "", want: "''"},
		{name: "shell glob", style: QuoteShell, input: "*.c", want: "'*.c'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.style.Apply(tt.input)
			if err != nil {
				t.Fatalf("Apply(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyFormat(t *testing.T) {
	if got := applyFormat("--args={}", "v"); got != "--args=v" {
		t.Errorf("applyFormat() = %q", got)
	}
	// A single substitution point: later braces stay literal.
	if got := applyFormat("{}={}", "x"); got != "x={}" {
		t.Errorf("applyFormat() = %q", got)
	}
}
