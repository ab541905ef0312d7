package repository

import "testing"

func TestSanitizeSymbolLowercases(t *testing.T) {
	if got := SanitizeSymbol("AAPL"); got != "aapl" {
		t.Fatalf("expected aapl, got %q", got)
	}
	if SanitizeSymbol("AAPL") != SanitizeSymbol("aapl") {
		t.Fatalf("case variants must map to the same key")
	}
}

func TestSanitizeSymbolKeepsAllowedChars(t *testing.T) {
	if got := SanitizeSymbol("brk-b.us"); got != "brk-b.us" {
		t.Fatalf("expected brk-b.us, got %q", got)
	}
}

func TestSanitizeSymbolBlocksPathInjection(t *testing.T) {
	got := SanitizeSymbol("../../etc/passwd")
	for _, r := range got {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
		default:
			t.Fatalf("unexpected char %q in %q", r, got)
		}
	}
	if got != ".._.._etc_passwd" {
		t.Fatalf("unexpected sanitized key %q", got)
	}
}
