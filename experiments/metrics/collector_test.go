package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("mcts")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.AddEpisode()
				c.AddNode()
			}
			c.AddFullPlayout()
		}()
	}
	wg.Wait()
	c.AddAbortedPlayout()
	c.AddCacheHit()
	c.AddCutoff()
	c.SetTimedOut()

	m := c.Complete()
	require.Equal(t, "mcts", m.Algorithm)
	require.Equal(t, 800, m.Episodes, "Counters are safe for concurrent use")
	require.Equal(t, 800, m.Nodes)
	require.Equal(t, 8, m.FullPlayouts)
	require.Equal(t, 1, m.AbortedPlayouts)
	require.Equal(t, 1, m.CacheHits)
	require.Equal(t, 1, m.Cutoffs)
	require.True(t, m.TimedOut)

	c.Start("alphabeta")
	m = c.Complete()
	require.Equal(t, SearchMetric{Algorithm: "alphabeta", Duration: m.Duration}, m, "Start resets every counter")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("mcts")
	c.AddEpisode()
	c.SetTimedOut()
	require.Equal(t, SearchMetric{}, c.Complete())
}
