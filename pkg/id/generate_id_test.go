package id

import (
	"regexp"
	"testing"
)

var reUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

func TestNewRequestID_Format(t *testing.T) {
	got := NewRequestID()
	if !reUUID.MatchString(got) {
		t.Fatalf("not a lowercase uuid: %q", got)
	}
}

func TestNewRequestID_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewRequestID()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
