package storage

import (
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTestStore(t)

	rec := GameRecord{
		ID:       "20240101T120000",
		Moves:    []string{"e2e4", "e7e5", "g1f3"},
		Result:   "1-0",
		PlayedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadGame(rec.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(&rec, got); diff != "" {
		t.Errorf("record round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.LoadGame("missing"); err == nil {
		t.Error("expected error loading a missing game")
	}
}

func TestSaveGameRequiresID(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveGame(GameRecord{Result: "1-0"}); err == nil {
		t.Error("expected error saving a record without an ID")
	}
}

func TestListGameIDs(t *testing.T) {
	s := openTestStore(t)

	want := []string{"a", "b", "c"}
	for _, id := range want {
		if err := s.SaveGame(GameRecord{ID: id, Result: "1/2-1/2"}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	ids, err := s.ListGameIDs()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sort.Strings(ids)
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestResultsTally(t *testing.T) {
	s := openTestStore(t)

	results, err := s.LoadResults()
	if err != nil {
		t.Fatalf("load empty results: %v", err)
	}
	if results.GamesPlayed != 0 {
		t.Errorf("fresh store reports %d games", results.GamesPlayed)
	}

	games := []GameRecord{
		{ID: "1", Result: "1-0"},
		{ID: "2", Result: "0-1"},
		{ID: "3", Result: "1/2-1/2"},
		{ID: "4", Result: "1-0"},
	}
	for _, rec := range games {
		if err := s.SaveGame(rec); err != nil {
			t.Fatalf("save %s: %v", rec.ID, err)
		}
	}

	results, err = s.LoadResults()
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	want := &Results{GamesPlayed: 4, WhiteWins: 2, BlackWins: 1, Draws: 1}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("tallies mismatch (-want +got):\n%s", diff)
	}
}
