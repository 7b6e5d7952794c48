package recorder

import (
	"bytes"
	"testing"
)

func TestHashContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"empty", nil, ""},
		{"abc", []byte("abc"), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashContent(tt.content); got != tt.want {
				t.Errorf("HashContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHashContent_Truncates(t *testing.T) {
	large := bytes.Repeat([]byte("x"), MaxHashSize+10)
	prefix := large[:MaxHashSize]

	if HashContent(large) != HashContent(prefix) {
		t.Error("expected content beyond MaxHashSize to be ignored")
	}
}
