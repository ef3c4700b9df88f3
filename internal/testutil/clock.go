package testutil

import (
	"strconv"
	"sync"
	"time"
)

// runEpoch is the instant every test run starts at.
var runEpoch = time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)

// StepClock starts at runEpoch and moves forward by a fixed step after each
// reading, so a run's start and finish stamps differ by exactly one step.
// Safe for concurrent use.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// FixedClock never moves: every reading is runEpoch.
func FixedClock() *StepClock {
	return &StepClock{now: runEpoch}
}

func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{now: runEpoch, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// RunIDs hands out "run-1", "run-2", and so on.
type RunIDs struct {
	mu   sync.Mutex
	next int
}

func NewRunIDs() *RunIDs {
	return &RunIDs{}
}

func (g *RunIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "run-" + strconv.Itoa(g.next)
}
