package robot

import (
	"encoding/json"
	"sync"
	"time"
)

const commandSubject = "robot.commands"

// Command tells the delivery robot where to go. Only the most recent
// command is observable; commands are fire-and-forget and never retried.
type Command struct {
	Destination string    `json:"destination"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher pushes a raw command onto a transport the physical robot
// listens on. Satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Dispatcher holds the last-issued command for the polling robot bridge
// and optionally relays each command to a push transport.
type Dispatcher struct {
	mu   sync.RWMutex
	last *Command
	pub  Publisher
}

// New creates a Dispatcher. pub may be nil, in which case commands are only
// observable through Latest.
func New(pub Publisher) *Dispatcher {
	return &Dispatcher{pub: pub}
}

// Dispatch records a command for the destination and relays it if a
// transport is attached. A relay failure is ignored: the command stays
// observable via Latest and the robot bridge polls for it.
func (d *Dispatcher) Dispatch(destination string) Command {
	cmd := Command{
		Destination: destination,
		Timestamp:   time.Now().UTC(),
	}

	d.mu.Lock()
	d.last = &cmd
	d.mu.Unlock()

	if d.pub != nil {
		if b, err := json.Marshal(cmd); err == nil {
			_ = d.pub.Publish(commandSubject, b)
		}
	}
	return cmd
}

// Latest returns the most recent command, if any was ever issued.
func (d *Dispatcher) Latest() (Command, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.last == nil {
		return Command{}, false
	}
	return *d.last, true
}
