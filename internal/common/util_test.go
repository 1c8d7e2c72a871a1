package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	a, err := MakeRandHexString(SessionTokenBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(SessionTokenBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two %d-byte random strings are identical: %s", SessionTokenBytes, a)
	}
}

// ---------- NormalizeEmail ----------

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice@example.com", "alice@example.com"},
		{"  Alice@Example.COM ", "alice@example.com"},
		{"\tBOB@x.io\n", "bob@x.io"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------- BearerToken ----------

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"bearer with spaces", "Bearer   abc123  ", "abc123"},
		{"other scheme", "Basic dXNlcjpwYXNz", ""},
		{"lowercase scheme", "bearer abc", ""},
		{"prefix only", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BearerToken(tt.header); got != tt.want {
				t.Fatalf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
