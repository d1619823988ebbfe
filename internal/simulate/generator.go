// Package simulate produces synthetic time-on-status exports from a seeded
// agent state machine.
package simulate

import (
	"fmt"
	"math/rand"
)

// Team groups agents with similar working patterns
type Team string

const (
	TeamSales     Team = "sales"
	TeamSupport   Team = "support"
	TeamTechnical Team = "technical"
	TeamRetention Team = "retention"
)

// Agent is one simulated agent
type Agent struct {
	Name string
	Team Team

	// Attendance is the chance the agent works on a given day
	Attendance float64
}

var (
	firstNames = []string{
		"Alice", "Bob", "Carmen", "David", "Elena", "Farid", "Grace", "Hiro",
		"Ines", "Jonas", "Kemi", "Liam", "Maya", "Noah", "Olga", "Pedro",
	}
	lastNames = []string{
		"Smith", "Jones", "Garcia", "Nguyen", "Kowalski", "Okafor", "Muller",
		"Rossi", "Tanaka", "Silva", "Haddad", "Larsen",
	}
)

// Generator creates fake agents
type Generator struct {
	agents []Agent
	rng    *rand.Rand
}

// NewGenerator creates a new agent generator
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GenerateAgents creates count agents with unique names
func (g *Generator) GenerateAgents(count int) []Agent {
	teams := []Team{TeamSales, TeamSupport, TeamTechnical, TeamRetention}

	// Distribution: 30% Sales, 35% Support, 20% Technical, 15% Retention
	teamWeights := []int{30, 35, 20, 15}

	g.agents = make([]Agent, count)
	used := make(map[string]bool, count)

	for i := 0; i < count; i++ {
		g.agents[i] = Agent{
			Name:       g.uniqueName(used, i),
			Team:       teams[g.weightedIndex(teamWeights)],
			Attendance: 0.85 + g.rng.Float64()*0.15,
		}
	}

	return g.agents
}

// GetAgents returns all generated agents
func (g *Generator) GetAgents() []Agent {
	return g.agents
}

func (g *Generator) uniqueName(used map[string]bool, index int) string {
	for attempt := 0; attempt < 8; attempt++ {
		name := firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
		if !used[name] {
			used[name] = true
			return name
		}
	}
	name := fmt.Sprintf("Agent %03d", index+1)
	used[name] = true
	return name
}

// weightedIndex selects an index based on weights
func (g *Generator) weightedIndex(weights []int) int {
	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	choice := g.rng.Intn(totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if choice < cumulative {
			return i
		}
	}
	return 0
}
