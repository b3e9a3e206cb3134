// Package population implements the store/epidemic agent model on top of the
// sim engine: a population of Persons sharing one capacity-limited store,
// plus a periodic sampler feeding a metrics.Collector.
package population

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/storesim/sim"
	"github.com/inference-sim/storesim/sim/metrics"
	"github.com/inference-sim/storesim/sim/trace"
)

// StoreName is the resource pool name of the shared facility.
const StoreName = "store"

// Option customizes the engine a Model is built on.
type Option func(*sim.SimConfig)

// WithTrace records engine events into t.
func WithTrace(t *trace.SimulationTrace) Option {
	return func(c *sim.SimConfig) { c.Trace = t }
}

// Model owns one run: the simulator, the store, every Person and the
// collector. It is single-use.
type Model struct {
	cfg       Config
	sim       *sim.Simulator
	store     *sim.ResourcePool
	rng       *rand.Rand
	people    []*Person
	collector *metrics.Collector
	started   bool

	atHome   Sampler
	sickness Sampler
	shopping Sampler
	spend    Sampler
}

// NewModel validates cfg and builds the population. Initial infections are
// drawn here, in agent order, from the same generator the agents use later.
func NewModel(cfg Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	simCfg := sim.SimConfig{Horizon: cfg.Horizon}
	for _, opt := range opts {
		opt(&simCfg)
	}
	s := sim.NewSimulator(simCfg)
	store, err := sim.NewResourcePool(s, StoreName, cfg.Capacity)
	if err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemPopulation)

	m := &Model{
		cfg:       cfg,
		sim:       s,
		store:     store,
		rng:       rng,
		collector: metrics.NewCollector(),
		atHome:    NewSampler(cfg.AtHome),
		sickness:  NewSampler(cfg.Sickness),
		shopping:  NewSampler(cfg.Shopping),
		spend:     NewSampler(cfg.Spend),
	}
	m.people = make([]*Person, cfg.Population)
	for i := range m.people {
		p := &Person{id: i, model: m}
		if Bernoulli(rng, cfg.InitialInfection) {
			p.health = Infected
		}
		m.people[i] = p
	}
	return m, nil
}

// Config returns the configuration the model was built with.
func (m *Model) Config() Config { return m.cfg }

// Simulator returns the underlying engine.
func (m *Model) Simulator() *sim.Simulator { return m.sim }

// Store returns the shared facility.
func (m *Model) Store() *sim.ResourcePool { return m.store }

// People returns the agents in spawn order.
func (m *Model) People() []*Person { return m.people }

// Collector returns the metric collector fed at every sampling boundary.
func (m *Model) Collector() *metrics.Collector { return m.collector }

// Snapshot counts agents per health state and reads the store occupancy.
func (m *Model) Snapshot() metrics.Snapshot {
	snap := metrics.Snapshot{
		InStore: m.store.InUse(),
		Queued:  m.store.QueueLen(),
	}
	for _, p := range m.people {
		switch p.health {
		case Susceptible:
			snap.Susceptible++
		case Infected:
			snap.Infected++
		case Immune:
			snap.Immune++
		case Dead:
			snap.Dead++
		}
	}
	return snap
}

// Run schedules the first sample, spawns one process per agent and runs the
// simulation to the configured horizon. It returns the sampled table even
// when the engine stopped on a fatal error.
func (m *Model) Run() (*metrics.Table, error) {
	if m.started {
		return nil, errors.New("model already ran")
	}
	m.started = true
	logrus.Infof("Starting population run: population=%d capacity=%d horizon=%d seed=%d",
		m.cfg.Population, m.cfg.Capacity, m.cfg.Horizon, m.cfg.Seed)

	if err := m.sim.ScheduleObserver(0, m.sample); err != nil {
		return m.collector.Table(), err
	}
	for _, p := range m.people {
		p.proc = m.sim.Spawn(fmt.Sprintf("person-%d", p.id), p)
	}
	err := m.sim.Run()
	logrus.Infof("Population run finished at t=%d: %d events, %d samples",
		m.sim.Now(), m.sim.Executed(), m.collector.Table().Len())
	return m.collector.Table(), err
}

// sample records the row for the current boundary and schedules the next
// one while it stays within the horizon. Observer events run after every agent
// event of their tick, so a row covers (previous boundary, this boundary] and
// the row at t=0 holds what was spent at t=0.
func (m *Model) sample() {
	now := m.sim.Now()
	m.collector.Sample(now, m.Snapshot())
	if now > m.cfg.Horizon-m.cfg.SamplePeriod {
		return
	}
	_ = m.sim.ScheduleObserver(m.cfg.SamplePeriod, m.sample)
}

// Summary condenses the run, including store contention statistics.
func (m *Model) Summary() metrics.Summary {
	s := m.collector.Summary()
	s.StoreGrants = m.store.Grants()
	s.MeanWait = m.store.MeanWait()
	s.MaxQueueDepth = m.store.MaxQueueLen()
	return s
}
