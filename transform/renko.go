package transform

import (
	"math"

	"candlechart/market"
)

// renko replaces candles with fixed-size bricks. The transform is lossy: a
// candle that does not move the reference price by at least one brick emits
// nothing, so the output is usually shorter than the input and timestamps
// become non-uniform.
type renko struct {
	brickPercent float64
}

func (r renko) Apply(s market.Series) market.Series {
	if len(s) == 0 {
		return market.Series{}
	}

	out := make(market.Series, 0, len(s))
	current := s[0].Close

	for _, c := range s[1:] {
		if current == 0 {
			current = c.Close
			continue
		}

		changePct := math.Abs(c.Close-current) / current
		if changePct < r.brickPercent {
			continue
		}

		bricks := int(math.Floor(changePct / r.brickPercent))
		// Brick height is fixed from the reference price at evaluation time;
		// every brick from this candle moves current by exactly one height.
		height := current * r.brickPercent
		dir := 1.0
		if c.Close < current {
			dir = -1.0
		}

		for b := 0; b < bricks; b++ {
			next := current + dir*height
			out = append(out, brickCandle(c.Time, current, next))
			current = next
		}
	}

	return out
}

// lineBreak emits a brick when the close exceeds the previous brick's
// extremes: above the prior high starts an up brick, below the prior low a
// down brick. Closes inside the prior brick emit nothing.
type lineBreak struct{}

func (lineBreak) Apply(s market.Series) market.Series {
	if len(s) == 0 {
		return market.Series{}
	}

	out := make(market.Series, 0, len(s))
	prevHigh := s[0].Close
	prevLow := s[0].Close

	for _, c := range s[1:] {
		switch {
		case c.Close > prevHigh:
			out = append(out, brickCandle(c.Time, prevHigh, c.Close))
			prevLow = prevHigh
			prevHigh = c.Close
		case c.Close < prevLow:
			out = append(out, brickCandle(c.Time, prevLow, c.Close))
			prevHigh = prevLow
			prevLow = c.Close
		}
	}

	return out
}

// brickCandle encodes a brick as a synthetic candle spanning open to close.
// Direction falls out of the open/close ordering (Bullish == up brick).
func brickCandle(t int64, open, close float64) market.Candle {
	return market.Candle{
		Time:  t,
		Open:  open,
		High:  math.Max(open, close),
		Low:   math.Min(open, close),
		Close: close,
	}
}
