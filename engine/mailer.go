package engine

import (
	"log/slog"
	"time"
)

// Mailer is the in-process logical transport: it routes envelopes by
// computation name to the hosting agent's queue. Messages addressed to a
// computation no agent hosts (anymore) are dropped silently — that is the
// contract for terminated computations.
//
// Routes are registered before the agents run and are read-only
// afterwards, so lookups are lock-free.
type Mailer struct {
	routes map[string]*Agent
	logger *slog.Logger
}

// NewMailer builds an empty transport.
func NewMailer() *Mailer {
	return &Mailer{routes: make(map[string]*Agent), logger: discard}
}

// SetLogger replaces the mailer's logger (default: discard).
func (m *Mailer) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Host registers every computation currently hosted by a and wires a's
// outbound sender to this mailer. Must be called before the agents run.
func (m *Mailer) Host(a *Agent) {
	for _, comp := range a.Computations() {
		m.routes[comp] = a
	}
	a.connect(m.Send)
}

// Send implements Sender: route the message to the agent hosting the
// target computation. Unroutable messages are dropped silently.
func (m *Mailer) Send(from, to string, msg Message, priority int) error {
	a, ok := m.routes[to]
	if !ok {
		m.logger.Debug("dropping unroutable message",
			"from", from, "to", to, "type", msg.MessageType())

		return nil
	}
	a.Deliver(Envelope{From: from, To: to, Msg: msg, Priority: priority, At: time.Now()})

	return nil
}
