package input

import "testing"

var testCommands = []PromptCommand{
	{Name: "/plan", Args: "<request>", Description: "Fill free slots"},
	{Name: "/export", Args: "[pdf|ics|json]", Description: "Export the day"},
	{Name: "/eval", Description: "Review the day"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "plan", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "slash_only", input: "/", want: 3},
		{name: "full", input: "/plan", want: 1},
		{name: "shared_prefix", input: "/e", want: 2},
		{name: "case_insensitive", input: "/EX", want: 1},
		{name: "with_space", input: "/plan x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/p", testCommands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/plan " {
		t.Fatalf("value = %q, want %q", value, "/plan ")
	}

	if _, ok := PromptAutocomplete("/zzz", testCommands); ok {
		t.Fatal("expected no autocomplete for unknown prefix")
	}
}

func TestParsePromptCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArg  string
	}{
		{"/plan  write report ", "/plan", "write report"},
		{"/Export", "/export", ""},
		{"  lunch at noon", "", "lunch at noon"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, arg := ParsePromptCommand(tt.input)
		if name != tt.wantName || arg != tt.wantArg {
			t.Errorf("ParsePromptCommand(%q) = (%q, %q), want (%q, %q)", tt.input, name, arg, tt.wantName, tt.wantArg)
		}
	}
}
