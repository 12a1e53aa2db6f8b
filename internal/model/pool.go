package model

// Pool is a bounded resource such as life or mana.
// Current is always kept within [0, Max].
type Pool struct {
	current int
	max     int
}

// NewPool creates a full pool. max below 1 is raised to 1.
func NewPool(max int) Pool {
	if max < 1 {
		max = 1
	}
	return Pool{current: max, max: max}
}

// Current returns the current value.
func (p Pool) Current() int { return p.current }

// Max returns the maximum value.
func (p Pool) Max() int { return p.max }

// Set sets the current value, clamped to [0, Max].
func (p *Pool) Set(v int) {
	if v < 0 {
		v = 0
	}
	if v > p.max {
		v = p.max
	}
	p.current = v
}

// SetMax changes the maximum and trims the current value if needed.
func (p *Pool) SetMax(max int) {
	if max < 1 {
		max = 1
	}
	p.max = max
	if p.current > p.max {
		p.current = p.max
	}
}

// Fill sets current to max.
func (p *Pool) Fill() { p.current = p.max }

// Take subtracts up to amount and returns how much was actually removed.
func (p *Pool) Take(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.current {
		amount = p.current
	}
	p.current -= amount
	return amount
}

// Give adds up to amount and returns how much was actually restored.
func (p *Pool) Give(amount int) int {
	if amount <= 0 {
		return 0
	}
	if room := p.max - p.current; amount > room {
		amount = room
	}
	p.current += amount
	return amount
}

// Empty reports whether current is 0.
func (p Pool) Empty() bool { return p.current == 0 }

// Ratio returns current/max in [0, 1].
func (p Pool) Ratio() float64 {
	if p.max == 0 {
		return 0
	}
	return float64(p.current) / float64(p.max)
}
