package utils

import (
	"regexp"
	"testing"
)

func TestGenerateTransactionIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-\d+-[A-Z0-9]{7}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := GenerateTransactionID()
		if !pattern.MatchString(id) {
			t.Fatalf("transaction ID %q does not match %s", id, pattern)
		}
		if seen[id] {
			t.Fatalf("duplicate transaction ID %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateFailedTransactionIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-FAIL-\d+$`)

	id := GenerateFailedTransactionID()
	if !pattern.MatchString(id) {
		t.Fatalf("failed transaction ID %q does not match %s", id, pattern)
	}
}
