package textcmd

import (
	"testing"
)

func TestParse(t *testing.T) {
	r := New(nil, "?")

	tests := []struct {
		name     string
		content  string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"warn with mention", "?warn <@123> being rude", "warn", []string{"<@123>", "being", "rude"}, true},
		{"uppercase command", "?WARN <@123> spam", "warn", []string{"<@123>", "spam"}, true},
		{"deletewarning", "?deletewarning 42", "deletewarning", []string{"42"}, true},
		{"trusted alias", "?t 123456", "t", []string{"123456"}, true},
		{"bare command", "?warnings <@123>", "warnings", []string{"<@123>"}, true},
		{"no prefix", "warn <@123> spam", "", nil, false},
		{"prefix only", "?", "", nil, false},
		{"prefix with spaces", "?   ", "", nil, false},
		{"plain message", "hello there", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := r.Parse(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %q, want %q", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestParseCustomPrefix(t *testing.T) {
	r := New(nil, "!!")

	name, args, ok := r.Parse("!!warn 123 spam")
	if !ok {
		t.Fatal("Expected a prefix command")
	}
	if name != "warn" || len(args) != 2 {
		t.Errorf("Unexpected parse result: %q %v", name, args)
	}

	if _, _, ok := r.Parse("?warn 123 spam"); ok {
		t.Error("Did not expect the default prefix to match")
	}
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		token  string
		wantID string
		wantOK bool
	}{
		{"<@123456789>", "123456789", true},
		{"<@!123456789>", "123456789", true},
		{"123456789", "123456789", true},
		{"<@>", "", false},
		{"<@abc>", "", false},
		{"not-an-id", "", false},
		{"", "", false},
		{"<#123456789>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			id, ok := ParseUserID(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}
