package shsworks

import (
	"sync/atomic"
)

// ClientMetrics contains atomic metrics for an SHSWorks client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ClientMetrics struct {
	// CommandSendCount indicates the number of command frames transmitted,
	// including busy-recovery retransmissions.
	CommandSendCount atomic.Uint64
	// AnswerRecvCount indicates the number of successful answers received.
	AnswerRecvCount atomic.Uint64
	// CommandErrCount indicates the number of command exchanges that failed.
	CommandErrCount atomic.Uint64
	// BusyRetryCount indicates the number of stop-live recovery cycles run.
	BusyRetryCount atomic.Uint64
	// ConnectCount indicates the number of TCP connections established.
	ConnectCount atomic.Uint64
}

func (m *ClientMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *ClientMetrics) incAnswerRecvCount() {
	m.AnswerRecvCount.Add(1)
}

func (m *ClientMetrics) incCommandErrCount() {
	m.CommandErrCount.Add(1)
}

func (m *ClientMetrics) incBusyRetryCount() {
	m.BusyRetryCount.Add(1)
}

func (m *ClientMetrics) incConnectCount() {
	m.ConnectCount.Add(1)
}
