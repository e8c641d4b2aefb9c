package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStatblock(t *testing.T) {
	sb, err := ParseStatblock([]byte("name = \"Goblin\"\nspeed = 30\nhit_points = 7\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sb.Name != "Goblin" || sb.Speed != 30 || sb.HitPoints != 7 {
		t.Fatalf("got %+v", sb)
	}
}

func TestParseStatblock_Errors(t *testing.T) {
	if _, err := ParseStatblock([]byte("speed = ")); err == nil {
		t.Fatal("expected syntax error")
	}
	if _, err := ParseStatblock([]byte("speed = -5")); err == nil {
		t.Fatal("expected negative speed error")
	}
}

func TestLoadStatblocks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "william.toml"), []byte("name = \"William\"\nspeed = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	blocks, err := LoadStatblocks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("loaded %d statblocks, want 1", len(blocks))
	}
	if sb := blocks.Resolve("william"); sb == nil || sb.Speed != 30 {
		t.Fatalf("resolve william = %+v", sb)
	}
	if blocks.Resolve("nobody") != nil || blocks.Resolve("") != nil {
		t.Fatal("unknown names should resolve to nil")
	}
}
