package cache

import (
	"context"
	"testing"
	"time"

	"inad-watch/analysis"
)

// periodInputs mirrors the struct RunPeriod hashes.
type periodInputs struct {
	Cases    []analysis.CaseRecord
	Pax      []analysis.PaxRecord
	Partners []string
	Settings analysis.Settings
}

func sampleInputs() periodInputs {
	partners := analysis.PartnerMap{
		{Airline: "LX", Airport: "PRN"}: {"OS"},
	}
	return periodInputs{
		Cases:    []analysis.CaseRecord{analysis.NewCaseRecord("LX", "PRN", 2024, 2, "A1")},
		Pax:      []analysis.PaxRecord{{Airline: "LX", Airport: "PRN", Year: 2024, Month: 2, PAX: 5000}},
		Partners: partners.Canonical(),
		Settings: analysis.DefaultSettings(),
	}
}

func TestInputHashDeterministic(t *testing.T) {
	first, err := InputHash(sampleInputs())
	if err != nil {
		t.Fatal(err)
	}
	second, err := InputHash(sampleInputs())
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("identical inputs must hash identically")
	}
	if len(first) != 16 {
		t.Errorf("expected 16 hex characters, got %q", first)
	}
}

func TestInputHashChangesWithInputs(t *testing.T) {
	base := sampleInputs()
	baseHash, err := InputHash(base)
	if err != nil {
		t.Fatal(err)
	}

	changed := sampleInputs()
	changed.Settings.MinINAD++
	if h, err := InputHash(changed); err != nil || h == baseHash {
		t.Errorf("changed settings must change the hash (err %v)", err)
	}

	changed = sampleInputs()
	changed.Cases = append(changed.Cases, analysis.NewCaseRecord("LX", "PRN", 2024, 3, "A1"))
	if h, err := InputHash(changed); err != nil || h == baseHash {
		t.Errorf("changed case data must change the hash (err %v)", err)
	}

	changed = sampleInputs()
	changed.Partners = analysis.PartnerMap{
		{Airline: "LX", Airport: "PRN"}: {"SN"},
	}.Canonical()
	if h, err := InputHash(changed); err != nil || h == baseHash {
		t.Errorf("changed partner map must change the hash (err %v)", err)
	}
}

func TestInputHashUnserializableInput(t *testing.T) {
	if h, err := InputHash(make(chan int)); err == nil {
		t.Errorf("unserializable input must error, got hash %q", h)
	}
}

func TestResultCacheNilClientMisses(t *testing.T) {
	ctx := context.Background()

	var nilCache *ResultCache
	if _, hit := nilCache.Get(ctx, "2024 H1", "abc"); hit {
		t.Error("nil cache must miss")
	}

	c := NewResultCache(nil, time.Hour)
	if _, hit := c.Get(ctx, "2024 H1", "abc"); hit {
		t.Error("cache without a client must miss")
	}
	if err := c.Set(ctx, "2024 H1", "abc", &analysis.Result{}); err == nil {
		t.Error("set without a client must report the missing client")
	}
}

func TestResultKey(t *testing.T) {
	if got := resultKey("2024 H1", "deadbeef"); got != "inad:analysis:2024 H1:deadbeef" {
		t.Errorf("unexpected key: %q", got)
	}
}
