package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"session_cookie", "abc", "url", "https://en.wikipedia.org/wiki/Go", "API_KEY", "k", "dangling"})
	want := []interface{}{"session_cookie", "[REDACTED]", "url", "https://en.wikipedia.org/wiki/Go", "API_KEY", "[REDACTED]", "dangling"}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kv[%d]=%v want %v", i, got[i], want[i])
		}
	}
}

func TestNopLoggerIsUsable(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", 1)
	l.Sync()
}
