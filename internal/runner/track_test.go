package runner

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func newTestStreamer(seed int64) (*TrackStreamer, *recorder) {
	rec := &recorder{}
	bus := NewBus()
	bus.Subscribe(rec.listen)
	ts := NewTrackStreamer(config.DefaultRunSettings().Track, seed, bus)
	ts.Reset()
	return ts, rec
}

func assertContiguous(t *testing.T, chunks []Chunk) {
	t.Helper()
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartZ != chunks[i-1].EndZ() {
			t.Fatalf("gap between chunk %d (end %v) and %d (start %v)",
				chunks[i-1].Index, chunks[i-1].EndZ(), chunks[i].Index, chunks[i].StartZ)
		}
	}
}

func TestStreamerInitialWindow(t *testing.T) {
	ts, rec := newTestStreamer(1)
	settings := config.DefaultRunSettings().Track

	chunks := ts.Chunks()
	if len(chunks) != settings.ChunksAhead+1 {
		t.Fatalf("initial chunks = %d, expected %d", len(chunks), settings.ChunksAhead+1)
	}
	if chunks[0].StartZ != 0 {
		t.Errorf("first chunk starts at %v, expected 0", chunks[0].StartZ)
	}
	assertContiguous(t, chunks)
	if len(rec.events) != len(chunks) {
		t.Errorf("got %d spawn events for %d chunks", len(rec.events), len(chunks))
	}
}

func TestStreamerCoversWindow(t *testing.T) {
	ts, rec := newTestStreamer(1)
	s := config.DefaultRunSettings().Track
	length := s.ChunkLength

	playerZ := 0.0
	for i := 0; i < 2000; i++ {
		playerZ += 0.37
		ts.Advance(playerZ)

		chunks := ts.Chunks()
		assertContiguous(t, chunks)

		lo := playerZ - float64(s.ChunksBehind)*length
		hi := playerZ + float64(s.ChunksAhead)*length
		first, last := chunks[0], chunks[len(chunks)-1]
		if first.EndZ() < lo {
			t.Fatalf("z=%v: first chunk ends at %v, inside the kept-behind window %v", playerZ, first.EndZ(), lo)
		}
		if first.StartZ > lo+length {
			t.Fatalf("z=%v: first chunk starts at %v, window starts at %v", playerZ, first.StartZ, lo)
		}
		if last.EndZ() < hi {
			t.Fatalf("z=%v: last chunk ends at %v, expected >= %v", playerZ, last.EndZ(), hi)
		}
	}

	spawned, despawned := 0, 0
	for _, e := range rec.events {
		switch e.(type) {
		case ChunkSpawned:
			spawned++
		case ChunkDespawned:
			despawned++
		}
	}
	if spawned-despawned != len(ts.Chunks()) {
		t.Errorf("spawned %d - despawned %d != live %d", spawned, despawned, len(ts.Chunks()))
	}
}

func TestStreamerCatchUp(t *testing.T) {
	ts, _ := newTestStreamer(1)
	s := config.DefaultRunSettings().Track

	ts.Advance(10000)
	chunks := ts.Chunks()
	assertContiguous(t, chunks)
	if last := chunks[len(chunks)-1]; last.EndZ() < 10000+float64(s.ChunksAhead)*s.ChunkLength {
		t.Errorf("catch-up stopped short: last chunk ends at %v", last.EndZ())
	}
	if first := chunks[0]; first.EndZ() < 10000-float64(s.ChunksBehind)*s.ChunkLength {
		t.Errorf("stale chunk kept: first ends at %v", first.EndZ())
	}
}

func TestSkylineDeterministic(t *testing.T) {
	a, _ := newTestStreamer(7)
	b, _ := newTestStreamer(7)
	a.Advance(500)
	b.Advance(500)

	if !reflect.DeepEqual(a.Chunks(), b.Chunks()) {
		t.Fatal("same seed should produce identical skylines")
	}

	sky := config.DefaultRunSettings().Track.Skyline
	for _, c := range a.Chunks() {
		if len(c.Skyline) == 0 {
			t.Fatalf("chunk %d has no skyline", c.Index)
		}
		for _, bld := range c.Skyline {
			if bld.Z < c.StartZ || bld.Z+bld.Width > c.EndZ()+1e-9 {
				t.Errorf("chunk %d: building [%v, %v] outside chunk", c.Index, bld.Z, bld.Z+bld.Width)
			}
			if bld.Height < sky.MinHeight || bld.Height > sky.MaxHeight {
				t.Errorf("chunk %d: building height %v out of range", c.Index, bld.Height)
			}
		}
	}
}

func TestSkylineDisabled(t *testing.T) {
	settings := config.DefaultRunSettings().Track
	settings.Skyline.Enabled = false
	ts := NewTrackStreamer(settings, 1, NewBus())
	ts.Reset()
	for _, c := range ts.Chunks() {
		if c.Skyline != nil {
			t.Fatalf("chunk %d has skyline while disabled", c.Index)
		}
	}
}

func TestReseedWaitsForReset(t *testing.T) {
	a, _ := newTestStreamer(1)
	b, _ := newTestStreamer(1)
	fresh, _ := newTestStreamer(9)

	a.Reseed(9)
	a.Advance(400)
	b.Advance(400)
	if !reflect.DeepEqual(a.Chunks(), b.Chunks()) {
		t.Fatal("reseed changed chunks spawned before the next reset")
	}

	a.Reset()
	if !reflect.DeepEqual(a.Chunks(), fresh.Chunks()) {
		t.Error("after reset the skyline should follow the new seed")
	}
}
