package indicators

import (
	"fmt"

	"candlechart/market"
)

// SimpleMA is a streaming Simple Moving Average indicator
type SimpleMA struct {
	period int
	closes []float64
}

// NewSMA creates a streaming Simple Moving Average with the given period
func NewSMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(c market.Candle) {
	m.closes = append(m.closes, c.Close)
	// Keep only the last 'period' closes
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, close := range m.closes {
		sum += close
	}
	return sum / float64(len(m.closes))
}

// ExponentialMA is a streaming Exponential Moving Average indicator. The
// first close seeds the average directly, so it is ready after one update.
type ExponentialMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
}

// NewEMA creates a streaming Exponential Moving Average with the given period
func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return 1
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
}

func (e *ExponentialMA) Update(c market.Candle) {
	e.count++
	if e.count == 1 {
		e.ema = c.Close
		return
	}
	e.ema = (c.Close-e.ema)*e.multiplier + e.ema
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= 1
}

func (e *ExponentialMA) Value() float64 {
	return e.ema
}

// VWAP is a streaming cumulative Volume Weighted Average Price indicator.
type VWAP struct {
	cumVolume      float64
	cumVolumePrice float64
	lastTypical    float64
	count          int
}

// NewVWAP creates a streaming cumulative VWAP
func NewVWAP() *VWAP {
	return &VWAP{}
}

func (v *VWAP) Name() string {
	return "VWAP"
}

func (v *VWAP) Warmup() int {
	return 1
}

func (v *VWAP) Reset() {
	v.cumVolume = 0
	v.cumVolumePrice = 0
	v.lastTypical = 0
	v.count = 0
}

func (v *VWAP) Update(c market.Candle) {
	v.count++
	v.cumVolume += c.Volume
	v.cumVolumePrice += c.Volume * c.TypicalPrice()
	v.lastTypical = c.TypicalPrice()
}

func (v *VWAP) Ready() bool {
	return v.count >= 1
}

func (v *VWAP) Value() float64 {
	if v.cumVolume <= 0 {
		return v.lastTypical
	}
	return v.cumVolumePrice / v.cumVolume
}
