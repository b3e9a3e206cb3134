package population

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/storesim/sim"
)

// Health is an agent's epidemiological state.
type Health int

const (
	Susceptible Health = iota
	Infected
	Immune
	Dead
)

func (h Health) String() string {
	switch h {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Immune:
		return "immune"
	case Dead:
		return "dead"
	default:
		return fmt.Sprintf("Health(%d)", int(h))
	}
}

// Activity is where an agent currently is.
type Activity int

const (
	AtHome Activity = iota
	Queued
	Shopping
	Quarantined
	Gone
)

func (a Activity) String() string {
	switch a {
	case AtHome:
		return "at_home"
	case Queued:
		return "queued"
	case Shopping:
		return "shopping"
	case Quarantined:
		return "quarantined"
	case Gone:
		return "gone"
	default:
		return fmt.Sprintf("Activity(%d)", int(a))
	}
}

// phase is the continuation point of a Person's behavior.
type phase int

const (
	phaseDecide  phase = iota // at home, deciding what to do next
	phaseEnter                // store slot granted
	phaseLeave                // done shopping, about to release the slot
	phaseRecover              // sickness over
)

// Person is one agent. Its behavior is a loop of store trips separated by
// stays at home; an infection interrupts the loop with a quarantine that
// ends in either death or immunity.
type Person struct {
	id       int
	model    *Model
	proc     *sim.Process
	health   Health
	activity Activity
	phase    phase

	trips      int
	spent      int64
	infectedAt int64
	diedAt     int64
}

// ID returns the agent index within its population.
func (p *Person) ID() int { return p.id }

// Process returns the engine process running this agent, nil before the run.
func (p *Person) Process() *sim.Process { return p.proc }

// Health returns the current epidemiological state.
func (p *Person) Health() Health { return p.health }

// Activity returns where the agent currently is.
func (p *Person) Activity() Activity { return p.activity }

// Trips returns the number of completed store visits.
func (p *Person) Trips() int { return p.trips }

// Spent returns the total money spent across all trips.
func (p *Person) Spent() int64 { return p.spent }

// DiedAt returns the death time, or -1 if the agent is not dead.
func (p *Person) DiedAt() int64 {
	if p.health != Dead {
		return -1
	}
	return p.diedAt
}

// Resume implements sim.Behavior.
func (p *Person) Resume(proc *sim.Process) sim.Yield {
	m := p.model
	switch p.phase {
	case phaseDecide:
		if p.health == Infected {
			return p.quarantine()
		}
		p.activity = Queued
		p.phase = phaseEnter
		return sim.Acquire(m.store)

	case phaseEnter:
		p.activity = Shopping
		amount := m.spend.Sample(m.rng)
		p.spent += amount
		p.trips++
		m.collector.AddIncome(amount)
		p.phase = phaseLeave
		return sim.Timeout(m.shopping.Sample(m.rng))

	case phaseLeave:
		if p.health == Susceptible && Bernoulli(m.rng, m.cfg.Infection) {
			p.health = Infected
			p.infectedAt = proc.Now()
			logrus.Debugf("[tick %07d] %s infected in store", proc.Now(), proc.Name())
		}
		if err := m.store.Release(proc); err != nil {
			// The simulator has already recorded the failure; stop here.
			p.activity = Gone
			return sim.Exit()
		}
		if p.health == Infected {
			return p.quarantine()
		}
		return p.goHome()

	case phaseRecover:
		if Bernoulli(m.rng, m.cfg.Death) {
			p.health = Dead
			p.activity = Gone
			p.diedAt = proc.Now()
			logrus.Debugf("[tick %07d] %s died (infected at %d)", proc.Now(), proc.Name(), p.infectedAt)
			return sim.Exit()
		}
		p.health = Immune
		logrus.Debugf("[tick %07d] %s recovered", proc.Now(), proc.Name())
		return p.goHome()

	default:
		panic(fmt.Sprintf("person %d: unknown phase %d", p.id, p.phase))
	}
}

func (p *Person) quarantine() sim.Yield {
	p.activity = Quarantined
	p.phase = phaseRecover
	return sim.Timeout(p.model.sickness.Sample(p.model.rng))
}

func (p *Person) goHome() sim.Yield {
	p.activity = AtHome
	p.phase = phaseDecide
	return sim.Timeout(p.model.atHome.Sample(p.model.rng))
}
