package simulate

import (
	"math/rand"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// IntervalLength is the reporting interval of the export
const IntervalLength = 15 * time.Minute

// State is an agent status in the simulation
type State string

const (
	StateAvailable     State = "available"
	StateOnCall        State = "on_call"
	StateAfterCallWork State = "after_call_work"
	StateBreak         State = "break"
	StateLunch         State = "lunch"
	StateMeeting       State = "meeting"
	StateTraining      State = "training"
	StateOnHold        State = "on_hold"
	StateTransferring  State = "transferring"
	StateConference    State = "conference"
)

// Simulator walks each agent through a workday of state transitions and
// buckets the time into export intervals.
type Simulator struct {
	agents []Agent
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewSimulator creates a simulator over agents
func NewSimulator(agents []Agent, seed int64, logger zerolog.Logger) *Simulator {
	return &Simulator{
		agents: agents,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With().Str("component", "simulator").Logger(),
	}
}

// Run simulates days workdays from start and returns the interval records
// ordered by start time, then agent.
func (s *Simulator) Run(start civil.Date, days int) []types.IntervalRecord {
	var records []types.IntervalRecord

	for day := 0; day < days; day++ {
		date := start.AddDays(day)
		for _, agent := range s.agents {
			if s.rng.Float64() >= agent.Attendance {
				continue
			}
			records = append(records, s.simulateShift(agent, date)...)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartTime.Equal(records[j].StartTime) {
			return records[i].StartTime.Before(records[j].StartTime)
		}
		return records[i].Agent < records[j].Agent
	})

	s.logger.Debug().
		Int("agents", len(s.agents)).
		Int("days", days).
		Int("records", len(records)).
		Msg("simulation complete")

	return records
}

// simulateShift runs one agent through a shift on date. Shifts start on an
// interval boundary between 07:00 and 09:45 and last 6 to 9 hours.
func (s *Simulator) simulateShift(agent Agent, date civil.Date) []types.IntervalRecord {
	dayStart := date.In(time.UTC)
	shiftStart := dayStart.Add(7*time.Hour + time.Duration(s.rng.Intn(12))*IntervalLength)
	intervals := 24 + s.rng.Intn(13)
	shiftEnd := shiftStart.Add(time.Duration(intervals) * IntervalLength)

	buckets := make([]types.IntervalRecord, intervals)
	for i := range buckets {
		buckets[i] = types.IntervalRecord{
			Agent:     agent.Name,
			StartTime: shiftStart.Add(time.Duration(i) * IntervalLength),
			EndTime:   shiftStart.Add(time.Duration(i+1) * IntervalLength),
		}
	}

	t := shiftStart
	state := StateAvailable
	for t.Before(shiftEnd) {
		d := s.getStateDuration(state, agent.Team)
		if t.Add(d).After(shiftEnd) {
			d = shiftEnd.Sub(t)
		}
		if state == StateOnCall {
			ring := time.Duration(3+s.rng.Intn(12)) * time.Second
			addTime(buckets, shiftStart, t, min(ring, d), offering, false)
		}
		addTime(buckets, shiftStart, t, d, categoryOf(state), true)
		t = t.Add(d)
		state = s.getNextState(state)
	}

	return buckets
}

type category func(r *types.IntervalRecord) *time.Duration

func offering(r *types.IntervalRecord) *time.Duration { return &r.Offering }

// categoryOf maps a state onto the export column it is reported under
func categoryOf(state State) category {
	switch state {
	case StateOnCall:
		return func(r *types.IntervalRecord) *time.Duration { return &r.Handling }
	case StateAfterCallWork:
		return func(r *types.IntervalRecord) *time.Duration { return &r.WrapUp }
	case StateOnHold, StateTransferring, StateConference:
		return func(r *types.IntervalRecord) *time.Duration { return &r.Busy }
	case StateBreak, StateLunch:
		return func(r *types.IntervalRecord) *time.Duration { return &r.OnBreak }
	case StateMeeting, StateTraining:
		return func(r *types.IntervalRecord) *time.Duration { return &r.WorkingOffline }
	default:
		return func(r *types.IntervalRecord) *time.Duration { return &r.Available }
	}
}

// addTime spreads d starting at t across the interval buckets
func addTime(buckets []types.IntervalRecord, origin, t time.Time, d time.Duration, field category, loggedIn bool) {
	for d > 0 {
		i := int(t.Sub(origin) / IntervalLength)
		if i >= len(buckets) {
			return
		}
		chunk := min(d, buckets[i].EndTime.Sub(t))

		*field(&buckets[i]) += chunk
		if loggedIn {
			buckets[i].LoggedIn += chunk
		}

		t = t.Add(chunk)
		d -= chunk
	}
}

// getStateDuration returns how long an agent stays in a state
func (s *Simulator) getStateDuration(state State, team Team) time.Duration {
	var base time.Duration

	switch state {
	case StateAvailable:
		base = time.Duration(20+s.rng.Intn(160)) * time.Second
	case StateOnCall:
		base = time.Duration(90+s.rng.Intn(420)) * time.Second // 1.5-8.5min
		if team == TeamTechnical {
			base += time.Duration(s.rng.Intn(300)) * time.Second
		}
	case StateAfterCallWork:
		base = time.Duration(30+s.rng.Intn(90)) * time.Second // 30s-2min
	case StateBreak:
		base = time.Duration(300+s.rng.Intn(600)) * time.Second // 5-15min
	case StateLunch:
		base = time.Duration(1800+s.rng.Intn(1800)) * time.Second // 30-60min
	case StateMeeting:
		base = time.Duration(600+s.rng.Intn(1800)) * time.Second // 10-40min
	case StateTraining:
		base = time.Duration(1800+s.rng.Intn(3600)) * time.Second // 30-90min
	case StateOnHold:
		base = time.Duration(10+s.rng.Intn(30)) * time.Second // 10-40s
	case StateTransferring:
		base = time.Duration(5+s.rng.Intn(10)) * time.Second // 5-15s
	case StateConference:
		base = time.Duration(60+s.rng.Intn(240)) * time.Second // 1-5min
	default:
		base = time.Duration(5+s.rng.Intn(10)) * time.Second
	}

	return base
}

// getNextState determines the next state based on current state and probabilities
func (s *Simulator) getNextState(current State) State {
	roll := s.rng.Float64()

	switch current {
	case StateAvailable:
		if roll < 0.80 {
			return StateOnCall
		} else if roll < 0.92 {
			return StateBreak
		} else if roll < 0.97 {
			return StateMeeting
		}
		return StateTraining

	case StateOnCall:
		if roll < 0.05 {
			return StateOnHold
		} else if roll < 0.10 {
			return StateTransferring
		} else if roll < 0.12 {
			return StateConference
		}
		return StateAfterCallWork

	case StateAfterCallWork:
		if roll < 0.85 {
			return StateAvailable
		} else if roll < 0.97 {
			return StateBreak
		}
		return StateLunch

	case StateOnHold:
		return StateOnCall

	case StateTransferring, StateConference:
		return StateAfterCallWork

	default:
		return StateAvailable
	}
}
