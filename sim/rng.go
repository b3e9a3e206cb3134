package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed a run is reproduced from: same key, same
// configuration, same spawn order, same output.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemPopulation is the stream every agent draw comes from. It is seeded
// with the key itself, so `--seed N` and rand.NewSource(N) agree.
const SubsystemPopulation = "population"

// PartitionedRNG hands out one independent *rand.Rand per named stream.
// Streams other than SubsystemPopulation are seeded with key XOR
// fnv1a64(name), so adding draws to one stream never shifts another.
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a partitioned generator with no streams yet.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key)
	if name != SubsystemPopulation {
		seed ^= fnv1a64(name)
	}
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

// Key returns the key the generator was built from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
