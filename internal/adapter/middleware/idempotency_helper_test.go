package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"
	"time"
)

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	got := bodyHash(data)

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

func Test_buildKey(t *testing.T) {
	got := buildKey("POST", "/employees", "dev123", "req456")
	want := "pos:idemp:post:/employees:dev123:req456"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func Test_validReqID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"  AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA  ", true}, // trimmed + lowered
		{"6f9619ff-8b86-4d01-b42d-00cf4fc964ff", true},
		{"not-an-id", false},
		{"", false},
	}
	for _, c := range cases {
		if got := validReqID(c.in); got != c.want {
			t.Fatalf("validReqID(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func Test_parsePosRequestAt(t *testing.T) {
	now := time.Now().UTC()

	// epoch seconds
	got, err := parsePosRequestAt(strconv.FormatInt(now.Unix(), 10))
	if err != nil {
		t.Fatalf("seconds: %v", err)
	}
	if got.Unix() != now.Unix() {
		t.Fatalf("seconds: got %v want %v", got, now)
	}

	// epoch milliseconds
	got, err = parsePosRequestAt(strconv.FormatInt(now.UnixMilli(), 10))
	if err != nil {
		t.Fatalf("millis: %v", err)
	}
	if got.UnixMilli() != now.UnixMilli() {
		t.Fatalf("millis: got %v want %v", got, now)
	}

	// RFC3339 with zone
	got, err = parsePosRequestAt(now.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("rfc3339: not normalized to UTC: %v", got.Location())
	}

	// rejects naive local timestamps and garbage
	for _, bad := range []string{"", "2025-09-05T10:00:00", "yesterday"} {
		if _, err := parsePosRequestAt(bad); err == nil {
			t.Fatalf("parsePosRequestAt(%q) accepted", bad)
		}
	}
}

func Test_redisHelpers_RoundTrip(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	ctx := context.Background()

	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		RequestID:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   nowUTC(),
	}
	key := buildKey("POST", "/employees", "dev", entry.RequestID)

	ok, err := provisionalSet(ctx, rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet: ok=%v err=%v", ok, err)
	}
	// second SetNX on the same key must fail
	ok, err = provisionalSet(ctx, rdb, key, entry)
	if err != nil || ok {
		t.Fatalf("second provisionalSet: ok=%v err=%v", ok, err)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if !got.InProgress || got.RequestID != entry.RequestID {
		t.Fatalf("loaded %+v", got)
	}

	final := entry
	final.InProgress = false
	final.Code = 201
	final.Body = []byte(`{"ok":true}`)
	if err := saveFinal(ctx, rdb, key, final, time.Minute); err != nil {
		t.Fatalf("saveFinal: %v", err)
	}
	got, err = loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry after final: %v", err)
	}
	if got.InProgress || got.Code != 201 || string(got.Body) != `{"ok":true}` {
		t.Fatalf("final %+v", got)
	}
}
