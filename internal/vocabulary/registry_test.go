package vocabulary

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		list List
		word string
		want bool
	}{
		{ListText, "the", true},
		{ListText, "because", true},
		{ListText, "algebra", false},
		{ListText, "dog", false},
		{ListFilename, "pdf", true},
		{ListFilename, "final", true},
		{ListFilename, "math", false},
		{ListFilename, "worksheet", false},
	}

	for _, tt := range tests {
		if got := r.IsStopWord(tt.list, tt.word); got != tt.want {
			t.Errorf("IsStopWord(%s, %q) = %v, want %v", tt.list, tt.word, got, tt.want)
		}
	}
}

func TestRegistry_Words(t *testing.T) {
	r := MustNewRegistry()

	words, err := r.Words(ListFilename)
	if err != nil {
		t.Fatalf("Words() error = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("Words() returned an empty list")
	}
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Errorf("Words() not sorted at %d: %q >= %q", i, words[i-1], words[i])
		}
	}

	if _, err := r.Words(List("nope")); err == nil {
		t.Error("Words(unknown) expected error")
	}
}
