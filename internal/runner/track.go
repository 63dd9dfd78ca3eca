package runner

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Skyline noise parameters: alpha, beta, octaves.
const (
	skylineAlpha   = 2.0
	skylineBeta    = 2.0
	skylineOctaves = 3

	skylineScale    = 0.03 // Noise frequency along Z
	buildingMinW    = 4.0
	buildingMaxW    = 8.0
	buildingSpacing = 1.0
)

// Building is a cosmetic prop beside the track. It never collides.
type Building struct {
	Side   int     // -1 left, +1 right
	Z      float64 // World Z of the building's near edge
	Width  float64 // Extent along Z
	Depth  float64 // Extent away from the track
	Height float64
}

// Chunk is a fixed-length segment of track.
type Chunk struct {
	Index   int
	StartZ  float64
	Length  float64
	Skyline []Building
}

// EndZ returns the far edge of the chunk.
func (c Chunk) EndZ() float64 {
	return c.StartZ + c.Length
}

// TrackStreamer keeps a contiguous window of chunks around the player.
type TrackStreamer struct {
	settings config.TrackSettings
	bus      *Bus
	noise    *perlin.Perlin
	reseed   *int64 // Applied by the next Reset

	chunks   []Chunk
	frontier float64 // Start of the next chunk to spawn
	next     int
}

// NewTrackStreamer creates a streamer. The seed only drives the skyline.
func NewTrackStreamer(settings config.TrackSettings, seed int64, bus *Bus) *TrackStreamer {
	return &TrackStreamer{
		settings: settings,
		bus:      bus,
		noise:    perlin.NewPerlin(skylineAlpha, skylineBeta, skylineOctaves, seed),
		chunks:   make([]Chunk, 0, settings.ChunksAhead+settings.ChunksBehind+2),
	}
}

// Reseed replaces the skyline noise source from the next Reset on.
// Chunks spawned before then keep using the current source.
func (ts *TrackStreamer) Reseed(seed int64) {
	ts.reseed = &seed
}

// Reset drops all chunks and lays chunksAhead+1 chunks from z=0.
func (ts *TrackStreamer) Reset() {
	if ts.reseed != nil {
		ts.noise = perlin.NewPerlin(skylineAlpha, skylineBeta, skylineOctaves, *ts.reseed)
		ts.reseed = nil
	}
	ts.chunks = ts.chunks[:0]
	ts.frontier = 0
	ts.next = 0
	for i := 0; i <= ts.settings.ChunksAhead; i++ {
		ts.spawn()
	}
}

// Advance spawns and despawns chunks for the player position. It loops
// until the window is satisfied, so large jumps catch up in one call.
func (ts *TrackStreamer) Advance(playerZ float64) {
	length := ts.settings.ChunkLength
	for ts.frontier < playerZ+float64(ts.settings.ChunksAhead)*length {
		ts.spawn()
	}

	behind := playerZ - float64(ts.settings.ChunksBehind)*length
	for len(ts.chunks) > 0 && ts.chunks[0].EndZ() < behind {
		old := ts.chunks[0]
		ts.chunks = ts.chunks[1:]
		ts.bus.Publish(ChunkDespawned{Index: old.Index, StartZ: old.StartZ})
	}
}

func (ts *TrackStreamer) spawn() {
	c := Chunk{
		Index:  ts.next,
		StartZ: ts.frontier,
		Length: ts.settings.ChunkLength,
	}
	if ts.settings.Skyline.Enabled {
		c.Skyline = ts.skyline(c)
	}
	ts.chunks = append(ts.chunks, c)
	ts.frontier += ts.settings.ChunkLength
	ts.next++
	ts.bus.Publish(ChunkSpawned{Index: c.Index, StartZ: c.StartZ})
}

// skyline lines both sides of a chunk with buildings. Values come from
// absolute Z, so a chunk looks the same every time it is generated.
func (ts *TrackStreamer) skyline(c Chunk) []Building {
	sky := ts.settings.Skyline
	var buildings []Building
	for _, side := range [...]int{-1, 1} {
		z := c.StartZ
		for z < c.EndZ() {
			n := ts.sample(z, float64(side))
			b := Building{
				Side:   side,
				Z:      z,
				Width:  core.Lerp(buildingMinW, buildingMaxW, ts.sample(z, float64(side)+7)),
				Depth:  core.Lerp(sky.MinDepth, sky.MaxDepth, ts.sample(z, float64(side)+13)),
				Height: core.Lerp(sky.MinHeight, sky.MaxHeight, n),
			}
			if b.Z+b.Width > c.EndZ() {
				b.Width = c.EndZ() - b.Z
			}
			buildings = append(buildings, b)
			z += b.Width + buildingSpacing
		}
	}
	return buildings
}

// sample returns noise at (z, row) normalized to [0, 1].
func (ts *TrackStreamer) sample(z, row float64) float64 {
	return core.ClampF((ts.noise.Noise2D(z*skylineScale, row)+1)/2, 0, 1)
}

// Chunks returns the live window ordered by StartZ.
func (ts *TrackStreamer) Chunks() []Chunk {
	return ts.chunks
}

// Frontier returns the start of the next chunk to be spawned.
func (ts *TrackStreamer) Frontier() float64 {
	return ts.frontier
}
