package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT precomputes the exploration numerator 2*c^2*ln(N) for a parent with
// N visits.
func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: 2 * c * c * math.Log(float64(N))}
}

// evaluate returns q/n + c*sqrt(2*ln(N)/n). Unvisited children score +Inf so
// they are tried first.
func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return q/float64(n) + math.Sqrt(u.numerator/float64(n))
}
