package search

import "math"

// gaussianProcess is a small RBF-kernel regression model over unit-cube
// encoded configurations. It is mutated only by the coordinating
// goroutine between batches, so it carries no locking.
type gaussianProcess struct {
	x     [][]float64
	y     []float64
	sigma float64
}

func newGaussianProcess() *gaussianProcess {
	// sigma 1.0 suits inputs normalized to [0, 1].
	return &gaussianProcess{sigma: 1.0}
}

// kernel is the RBF similarity of two points: exp(-|x1-x2|^2 / 2s^2).
func (gp *gaussianProcess) kernel(x1, x2 []float64) float64 {
	var sum float64
	for i := range x1 {
		d := x1[i] - x2[i]
		sum += d * d
	}
	return math.Exp(-sum / (2 * gp.sigma * gp.sigma))
}

// predict returns the model's mean and variance at x. With no
// observations the prior (0, 1) is returned.
func (gp *gaussianProcess) predict(x []float64) (mean, variance float64) {
	n := len(gp.x)
	if n == 0 {
		return 0, 1
	}

	k := make([]float64, n)
	for i := range gp.x {
		k[i] = gp.kernel(x, gp.x[i])
	}

	var sum float64
	for i := range gp.x {
		sum += k[i] * gp.y[i]
	}
	mean = sum / float64(n)

	variance = 1.0
	for i := range gp.x {
		for j := range gp.x {
			variance -= k[i] * k[j] / float64(n)
		}
	}
	if variance < 0 {
		variance = 0
	}

	return mean, variance
}

// update adds one observation. The input is copied.
func (gp *gaussianProcess) update(x []float64, y float64) {
	cp := make([]float64, len(x))
	copy(cp, x)
	gp.x = append(gp.x, cp)
	gp.y = append(gp.y, y)
}
