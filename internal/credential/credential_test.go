package credential

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	passwords := []string{"Passw0rd", "Zażółć1Gęślą", "A1b2C3d4E5"}
	for _, p := range passwords {
		record := Hash(p)
		if len(record) != recordHexLength {
			t.Fatalf("record length = %d, want %d", len(record), recordHexLength)
		}
		ok, err := Verify(p, record)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if !ok {
			t.Fatalf("Verify(%q, Hash(%q)) = false, want true", p, p)
		}
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	record := Hash("Passw0rd")
	ok, err := Verify("Passw0rd2", record)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("Verify accepted a different password")
	}
}

func TestHash_SaltIsRandom(t *testing.T) {
	a := Hash("Passw0rd")
	b := Hash("Passw0rd")
	if a == b {
		t.Fatal("two hashes of the same password are identical; salt is not random")
	}
	for _, record := range []string{a, b} {
		ok, err := Verify("Passw0rd", record)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if !ok {
			t.Fatal("record with fresh salt did not verify")
		}
	}
}

func TestVerify_MalformedRecord(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"empty", ""},
		{"too short", "abcd"},
		{"non-hex", strings.Repeat("z", recordHexLength)},
		{"truncated", Hash("Passw0rd")[:recordHexLength-2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Verify("Passw0rd", tt.record); err == nil {
				t.Fatal("expected an error for a malformed record")
			}
		})
	}
}
