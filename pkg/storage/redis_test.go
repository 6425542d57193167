package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/jwebster45206/escape-engine/pkg/state"
)

func newRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rs := NewRedisStorage(mr.Addr(), testLogger())
	t.Cleanup(func() { _ = rs.Close() })
	return rs, mr
}

func TestRedisStorage_Ping(t *testing.T) {
	rs, mr := newRedisStorage(t)
	ctx := context.Background()

	if err := rs.Ping(ctx); err != nil {
		t.Fatalf("Expected ping to succeed: %v", err)
	}

	mr.Close()
	if err := rs.Ping(ctx); err == nil {
		t.Error("Expected ping to fail after the server is gone")
	}
}

func TestRedisStorage_SaveAndLoad(t *testing.T) {
	rs, mr := newRedisStorage(t)
	ctx := context.Background()

	gs := state.New("ch1", "ch1_sc1")
	gs.AddItem("mirror_shard")
	gs.SetFlag("uv_light_on", true)

	if err := rs.SaveGameState(ctx, gs); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	key := gameStatePrefix + gs.ID.String()
	if !mr.Exists(key) {
		t.Fatalf("Expected key %s in redis", key)
	}
	if mr.TTL(key) != gameStateTTL {
		t.Errorf("Expected TTL %v, got %v", gameStateTTL, mr.TTL(key))
	}

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if loaded.ID != gs.ID || !loaded.HasItem("mirror_shard") {
		t.Error("Saved state did not survive the round trip")
	}
	if v, _ := loaded.Flag("uv_light_on"); v != true {
		t.Errorf("Flags did not survive: %v", v)
	}
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	rs, _ := newRedisStorage(t)

	_, err := rs.LoadGameState(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisStorage_Delete(t *testing.T) {
	rs, _ := newRedisStorage(t)
	ctx := context.Background()

	gs := state.New("ch1", "ch1_sc1")
	if err := rs.SaveGameState(ctx, gs); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := rs.DeleteGameState(ctx, gs.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := rs.LoadGameState(ctx, gs.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after deletion, got %v", err)
	}
}

func TestRedisStorage_List(t *testing.T) {
	rs, mr := newRedisStorage(t)
	ctx := context.Background()

	first := state.New("ch1", "ch1_sc1")
	second := state.New("ch1", "ch1_sc2")
	for _, gs := range []*state.GameState{first, second} {
		if err := rs.SaveGameState(ctx, gs); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}
	}

	// Unrelated keys and malformed gamestate keys are skipped.
	mr.Set("session:abc", "1")
	mr.Set(gameStatePrefix+"not-a-uuid", "{}")

	ids, err := rs.ListGameStates(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 saves, got %d: %v", len(ids), ids)
	}
	found := map[uuid.UUID]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[first.ID] || !found[second.ID] {
		t.Errorf("Expected both saves listed, got %v", ids)
	}
}
