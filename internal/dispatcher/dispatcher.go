// Package dispatcher fans room events out to connected clients through
// bounded per-connection queues. A client that cannot keep up is evicted
// instead of stalling the room.
package dispatcher

import (
	"fmt"
	"sync"
	"sync/atomic"

	"auction-room/internal/events"
	"auction-room/internal/monitoring"
	"auction-room/utils"
)

// Mode selects which connections receive a delivery
type Mode int

const (
	ToAll Mode = iota
	ToAllExcept
	ToOnly
)

// Target is a selector over connection IDs
type Target struct {
	Mode   Mode
	ConnID string
}

func All() Target { return Target{Mode: ToAll} }
func AllExcept(id string) Target { return Target{Mode: ToAllExcept, ConnID: id} }
func Only(id string) Target { return Target{Mode: ToOnly, ConnID: id} }

// Matches reports whether the connection is selected by the target
func (t Target) Matches(id string) bool {
	switch t.Mode {
	case ToAll:
		return true
	case ToAllExcept:
		return id != t.ConnID
	case ToOnly:
		return id == t.ConnID
	}
	return false
}

// Delivery pairs an event with its audience
type Delivery struct {
	Event  events.Event
	Target Target
}

// Mirror receives every room-wide broadcast, e.g. to republish it on a message bus
type Mirror interface {
	Mirror(event events.Event)
}

// Client is the dispatcher side of one connection
type Client struct {
	id      string
	send    chan []byte
	evicted atomic.Bool
}

func (c *Client) ID() string { return c.id }

// Messages is closed when the client is unregistered or evicted
func (c *Client) Messages() <-chan []byte { return c.send }

// Evicted reports whether the client was dropped for falling behind
func (c *Client) Evicted() bool { return c.evicted.Load() }

// Dispatcher owns the set of connected clients
type Dispatcher struct {
	mu        sync.Mutex
	clients   map[string]*Client
	queueSize int
	monitor   *monitoring.Monitor
	mirror    Mirror
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithMirror forwards room-wide broadcasts to m
func WithMirror(m Mirror) Option {
	return func(d *Dispatcher) { d.mirror = m }
}

// New creates a dispatcher whose clients buffer up to queueSize frames
func New(queueSize int, monitor *monitoring.Monitor, opts ...Option) *Dispatcher {
	if monitor == nil {
		monitor = monitoring.NewMonitor()
	}
	d := &Dispatcher{
		clients:   make(map[string]*Client),
		queueSize: queueSize,
		monitor:   monitor,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a connection and returns its outbound queue
func (d *Dispatcher) Register(id string) (*Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.clients[id]; exists {
		return nil, fmt.Errorf("dispatcher: connection %s already registered", id)
	}
	c := &Client{id: id, send: make(chan []byte, d.queueSize)}
	d.clients[id] = c
	d.monitor.ConnectionOpened()

	utils.Debug("connection registered", map[string]any{
		"connection_id":     id,
		"total_connections": len(d.clients),
	})
	return c, nil
}

// Unregister removes a connection and closes its queue. Unknown IDs are a no-op.
func (d *Dispatcher) Unregister(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clients[id]
	if !ok {
		return false
	}
	d.remove(c)
	return true
}

// CloseAll unregisters every connection, closing its queue once the events
// already queued have been read. It returns how many connections were closed.
func (d *Dispatcher) CloseAll() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.clients)
	for _, c := range d.clients {
		d.remove(c)
	}
	return n
}

// Count returns the number of registered connections
func (d *Dispatcher) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clients)
}

// Dispatch queues every delivery, in order, to the connections its target selects.
// It never blocks on a client: a full queue evicts that client.
func (d *Dispatcher) Dispatch(deliveries []Delivery) {
	var mirrored []events.Event

	d.mu.Lock()
	for _, delivery := range deliveries {
		data, err := delivery.Event.Marshal()
		if err != nil {
			utils.Error("failed to marshal event for broadcast", map[string]any{
				"event": string(delivery.Event.Name),
				"error": err.Error(),
			})
			continue
		}

		sent := 0
		for id, c := range d.clients {
			if !delivery.Target.Matches(id) {
				continue
			}
			select {
			case c.send <- data:
				sent++
			default:
				utils.Warn("connection send buffer full, evicting connection", map[string]any{
					"connection_id": id,
					"event":         string(delivery.Event.Name),
				})
				c.evicted.Store(true)
				d.remove(c)
				d.monitor.TrackEviction()
			}
		}
		d.monitor.TrackDelivery(string(delivery.Event.Name), sent)

		if delivery.Target.Mode == ToAll {
			mirrored = append(mirrored, delivery.Event)
		}
	}
	d.mu.Unlock()

	if d.mirror != nil {
		for _, ev := range mirrored {
			d.mirror.Mirror(ev)
		}
	}
}

// remove must be called with d.mu held
func (d *Dispatcher) remove(c *Client) {
	delete(d.clients, c.id)
	close(c.send)
	d.monitor.ConnectionClosed()

	utils.Debug("connection unregistered", map[string]any{
		"connection_id": c.id,
		"evicted":       c.Evicted(),
	})
}
