package experiments

import (
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"github.com/samber/lo"
)

// Standing aggregates the results and search throughput of one agent.
type Standing struct {
	Agent  int
	Kind   string
	Games  int
	Wins   int
	Draws  int
	Losses int
	Moves  int
	// MeanDecision is the average time the agent spent per move.
	MeanDecision time.Duration
	// NodesPerSecond counts alpha-beta nodes or MCTS tree nodes.
	NodesPerSecond    float64
	EpisodesPerSecond float64
}

// Standings scores every agent over games in config order and measures its
// search throughput over moves. In a single player game only a cleared board
// is a win.
func Standings(configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) []Standing {
	standings := lo.Map(configs, func(c metrics.AgentConfig, _ int) *Standing {
		return &Standing{Agent: c.ID, Kind: c.Kind}
	})
	byAgent := lo.KeyBy(standings, func(s *Standing) int { return s.Agent })
	byGame := lo.KeyBy(games, func(g metrics.GameRecord) int { return g.ID })

	for _, g := range games {
		seats := []int{g.Agent1}
		if g.Agent2 != 0 {
			seats = append(seats, g.Agent2)
		}
		for seat, id := range seats {
			s, ok := byAgent[id]
			if !ok {
				continue
			}
			s.Games++
			switch game.OutcomeFor(game.Player(g.Winner), game.Player(seat)) {
			case game.Win:
				s.Wins++
			case game.Draw:
				if len(seats) == 1 {
					s.Losses++
				} else {
					s.Draws++
				}
			default:
				s.Losses++
			}
		}
	}

	type totals struct {
		duration time.Duration
		nodes    int
		episodes int
	}
	sums := map[int]*totals{}
	for _, m := range moves {
		g, ok := byGame[m.Game]
		if !ok {
			continue
		}
		id := g.Agent1
		if m.Player == 1 {
			id = g.Agent2
		}
		s, ok := byAgent[id]
		if !ok {
			continue
		}
		if sums[id] == nil {
			sums[id] = &totals{}
		}
		s.Moves++
		sums[id].duration += m.Duration
		sums[id].nodes += m.Nodes
		sums[id].episodes += m.Episodes
	}
	for id, t := range sums {
		s := byAgent[id]
		s.MeanDecision = t.duration / time.Duration(s.Moves)
		if seconds := t.duration.Seconds(); seconds > 0 {
			s.NodesPerSecond = float64(t.nodes) / seconds
			s.EpisodesPerSecond = float64(t.episodes) / seconds
		}
	}

	return lo.Map(standings, func(s *Standing, _ int) Standing { return *s })
}
