package shared

import (
	"bytes"
	"testing"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("lengths: %d, %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatal("two random arrays are identical")
	}
}

func TestWipeByteArray(t *testing.T) {
	secret := []byte("sensitive")
	WipeByteArray(secret)
	for i, v := range secret {
		if v != 0 {
			t.Fatalf("byte %d not wiped", i)
		}
	}

	WipeByteArray(nil) // must not panic
}
