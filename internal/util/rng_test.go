package util

import "testing"

func TestNew_ZeroSeedMatchesOne(t *testing.T) {
	a := New(0)
	b := New(1)
	for i := 0; i < 16; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d: expected seed 0 to alias seed 1, got %d vs %d", i, x, y)
		}
	}
}

func TestNew_SameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 16; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: expected identical streams, got %v vs %v", i, x, y)
		}
	}
}

func TestShardSeed_Distinct(t *testing.T) {
	seen := map[int64]string{}
	for stream := 0; stream < 16; stream++ {
		for shard := 0; shard < 8; shard++ {
			s := ShardSeed(42, stream, shard)
			key := string(rune('a'+stream)) + string(rune('0'+shard))
			if prev, ok := seen[s]; ok {
				t.Fatalf("seed collision between %s and %s: %d", prev, key, s)
			}
			seen[s] = key
		}
	}
}

func TestShardSeed_Base(t *testing.T) {
	if got := ShardSeed(42, 0, 0); got != 42 {
		t.Fatalf("expected first shard of first stream to keep the base seed, got %d", got)
	}
	if got := ShardSeed(42, 1, 2); got != 42+104729+2*7919 {
		t.Fatalf("unexpected derived seed %d", got)
	}
}

func TestNewSeed_Positive(t *testing.T) {
	for i := 0; i < 8; i++ {
		s, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed failed: %v", err)
		}
		if s <= 0 {
			t.Fatalf("expected positive seed, got %d", s)
		}
	}
}
