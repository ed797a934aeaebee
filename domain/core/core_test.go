package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("generated empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestTimestampOrdering(t *testing.T) {
	earlier := NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewTimestamp(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	if !earlier.Before(later) || !later.After(earlier) {
		t.Error("ordering broken")
	}
	if earlier.IsZero() {
		t.Error("non-zero timestamp reported zero")
	}
	if (Timestamp{}).IsZero() != true {
		t.Error("zero timestamp not detected")
	}
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Errorf("round trip: got %v, want %v", back, ts)
	}
}
