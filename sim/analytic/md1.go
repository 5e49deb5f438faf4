// Package analytic provides closed-form M/D/1 results used to sanity-check
// simulated runs.
package analytic

import (
	"bytes"
	"fmt"
)

// MD1 is the Pollaczek-Khinchine solution of an unbounded M/D/1 queue.
// All times are in the same unit as the service time passed to Solve.
type MD1 struct {
	lambda      float64 // arrival rate (per time unit)
	serviceTime float64 // deterministic service time
	rho         float64 // utilization

	avgNumInSystem float64 // waiting + in service
	avgQueueLength float64 // waiting only
	avgWaitTime    float64
	avgRespTime    float64 // waiting + service
	isValid        bool
}

// Solve evaluates the model. The result is valid only for a stable queue
// (0 <= rho < 1) with a positive service time.
func (m *MD1) Solve(lambda, serviceTime float64) {
	*m = MD1{lambda: lambda, serviceTime: serviceTime}
	m.rho = lambda * serviceTime
	if lambda < 0 || serviceTime <= 0 || m.rho >= 1 {
		return
	}
	m.isValid = true
	m.avgWaitTime = m.rho * serviceTime / (2 * (1 - m.rho))
	m.avgRespTime = serviceTime + m.avgWaitTime
	m.avgQueueLength = m.rho * m.rho / (2 * (1 - m.rho))
	m.avgNumInSystem = m.rho + m.avgQueueLength
}

// NewMD1 solves the model for the given arrival rate and service time.
func NewMD1(lambda, serviceTime float64) *MD1 {
	m := &MD1{}
	m.Solve(lambda, serviceTime)
	return m
}

func (m *MD1) IsValid() bool {
	return m.isValid
}

func (m *MD1) GetRho() float64 {
	return m.rho
}

func (m *MD1) GetAvgNumInSystem() float64 {
	return m.avgNumInSystem
}

func (m *MD1) GetAvgQueueLength() float64 {
	return m.avgQueueLength
}

func (m *MD1) GetAvgWaitTime() float64 {
	return m.avgWaitTime
}

func (m *MD1) GetAvgRespTime() float64 {
	return m.avgRespTime
}

// GetIdleProbability is 1 - rho for a stable queue.
func (m *MD1) GetIdleProbability() float64 {
	if !m.isValid {
		return 0
	}
	return 1 - m.rho
}

func (m *MD1) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "isValid=%v; ", m.isValid)
	fmt.Fprintf(&b, "lambda=%v; S=%v; rho=%v; ", m.lambda, m.serviceTime, m.rho)
	if m.isValid {
		fmt.Fprintf(&b, "T=%v; W=%v; ", m.avgRespTime, m.avgWaitTime)
		fmt.Fprintf(&b, "N=%v; Q=%v; ", m.avgNumInSystem, m.avgQueueLength)
	}
	return b.String()
}
