package x32

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/x32kit/x32kit/osc"
)

// The console correlates nothing for us: a reply is just a datagram whose
// address echoes the request's address. The correlator keeps one FIFO queue
// of pending requests per address and only ever has the queue head on the
// wire, so an inbound message always belongs to the oldest pending request
// for its address.

type outcome struct {
	args []osc.Value
	err  error
}

type pending struct {
	address string
	timeout time.Duration
	send    func() error
	done    chan outcome // buffered, receives exactly one outcome
	timer   *time.Timer
	fired   bool // guarded by correlator.mu
}

type correlator struct {
	mu     sync.Mutex
	queues map[string][]*pending
	closed bool
	log    *zap.Logger
}

func newCorrelator(log *zap.Logger) *correlator {
	return &correlator{
		queues: make(map[string][]*pending),
		log:    log,
	}
}

// enqueue registers a pending request for the address and returns the channel
// its outcome will arrive on. The send closure runs once the request reaches
// the head of its address queue; until then nothing is on the wire.
func (c *correlator) enqueue(address string, timeout time.Duration, send func() error) (<-chan outcome, error) {
	p := &pending{
		address: address,
		timeout: timeout,
		send:    send,
		done:    make(chan outcome, 1),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrConnClosed
	}
	q := append(c.queues[address], p)
	c.queues[address] = q
	head := len(q) == 1
	c.mu.Unlock()

	if head {
		c.dispatch(p)
	}
	return p.done, nil
}

// dispatch puts the request on the wire and arms its deadline timer.
func (c *correlator) dispatch(p *pending) {
	if err := p.send(); err != nil {
		c.finish(p, outcome{err: err})
		return
	}

	c.mu.Lock()
	if !p.fired && !c.closed {
		p.timer = time.AfterFunc(p.timeout, func() {
			c.finish(p, outcome{err: &TimeoutError{Address: p.address, Timeout: p.timeout}})
		})
	}
	c.mu.Unlock()
}

// deliver routes an inbound message to the oldest pending request for its
// address. Returns false when nothing was waiting; unsolicited traffic is
// expected and benign.
func (c *correlator) deliver(m *osc.Message) bool {
	c.mu.Lock()
	q := c.queues[m.Address]
	if len(q) == 0 {
		c.mu.Unlock()
		c.log.Debug("unsolicited message", zap.String("address", m.Address))
		return false
	}
	p := q[0]
	c.mu.Unlock()

	c.finish(p, outcome{args: m.Arguments})
	return true
}

// finish resolves or rejects a pending request exactly once, pops it from its
// queue and dispatches the next request waiting on the same address.
func (c *correlator) finish(p *pending, out outcome) {
	c.mu.Lock()
	if p.fired {
		c.mu.Unlock()
		return
	}
	p.fired = true
	if p.timer != nil {
		p.timer.Stop()
	}

	var next *pending
	if q := c.queues[p.address]; len(q) > 0 && q[0] == p {
		q = q[1:]
		if len(q) == 0 {
			delete(c.queues, p.address)
		} else {
			c.queues[p.address] = q
			next = q[0]
		}
	}
	c.mu.Unlock()

	p.done <- out
	if next != nil {
		c.dispatch(next)
	}
}

// close rejects every pending request, queued or on the wire, and refuses
// new registrations. No request outlives the connection.
func (c *correlator) close(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	queues := c.queues
	c.queues = make(map[string][]*pending)
	c.mu.Unlock()

	for _, q := range queues {
		for _, p := range q {
			c.mu.Lock()
			fired := p.fired
			p.fired = true
			if p.timer != nil {
				p.timer.Stop()
			}
			c.mu.Unlock()
			if !fired {
				p.done <- outcome{err: err}
			}
		}
	}
}
