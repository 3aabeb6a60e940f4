// internal/forecast/regression.go
package forecast

// Trend is a fitted least-squares line over a monthly series.
type Trend struct {
	Slope     float64
	Intercept float64
	R2        float64
}

type point struct {
	x float64
	y float64
}

// fitLinear runs ordinary least squares over the points. With fewer than
// two points or a degenerate x spread the trend is flat at the mean.
func fitLinear(points []point) Trend {
	n := float64(len(points))
	if n == 0 {
		return Trend{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		sumX += p.x
		sumY += p.y
		sumXY += p.x * p.y
		sumXX += p.x * p.x
	}

	meanY := sumY / n
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Trend{Intercept: meanY, R2: 0}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	var ssRes, ssTot float64
	for _, p := range points {
		pred := slope*p.x + intercept
		ssRes += (p.y - pred) * (p.y - pred)
		ssTot += (p.y - meanY) * (p.y - meanY)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	} else if ssRes == 0 {
		r2 = 1
	}
	if r2 < 0 {
		r2 = 0
	}

	return Trend{Slope: slope, Intercept: intercept, R2: r2}
}

// At evaluates the trend at x, floored at zero since negative sales make no
// sense as a prediction.
func (t Trend) At(x float64) float64 {
	v := t.Slope*x + t.Intercept
	if v < 0 {
		return 0
	}
	return v
}
