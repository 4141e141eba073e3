package x32

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x32kit/x32kit/osc"
)

// fakeConsole simulates a console on a loopback UDP socket. Each inbound
// datagram is decoded and handed to the handler in its own goroutine; every
// returned message is sent back to the requester. Datagrams for the same
// address are handled in arrival order, like the real console; different
// addresses run concurrently.
type fakeConsole struct {
	t       *testing.T
	pc      net.PacketConn
	handler func(m *osc.Message) []*osc.Message

	datagrams atomic.Int64

	lastMu sync.Mutex
	last   net.Addr // source address of the most recent datagram

	prev map[string]chan struct{} // per-address handler completion; serve goroutine only
}

func newFakeConsole(t *testing.T, handler func(m *osc.Message) []*osc.Message) *fakeConsole {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	fc := &fakeConsole{t: t, pc: pc, handler: handler, prev: make(map[string]chan struct{})}
	go fc.serve()
	t.Cleanup(func() { pc.Close() })
	return fc
}

func (fc *fakeConsole) serve() {
	buf := make([]byte, osc.MaxPacketSize)
	for {
		n, addr, err := fc.pc.ReadFrom(buf)
		if err != nil {
			return
		}
		fc.datagrams.Add(1)
		fc.lastMu.Lock()
		fc.last = addr
		fc.lastMu.Unlock()

		data := make([]byte, n)
		copy(data, buf[:n])
		m, err := osc.Decode(data)
		if err != nil {
			continue
		}

		wait := fc.prev[m.Address]
		done := make(chan struct{})
		fc.prev[m.Address] = done

		go func(m *osc.Message, addr net.Addr, wait, done chan struct{}) {
			defer close(done)
			if wait != nil {
				<-wait
			}
			for _, reply := range fc.handler(m) {
				out, err := reply.Encode()
				if err != nil {
					continue
				}
				fc.pc.WriteTo(out, addr)
			}
		}(m, addr, wait, done)
	}
}

func (fc *fakeConsole) config() Config {
	host, port, err := net.SplitHostPort(fc.pc.LocalAddr().String())
	require.NoError(fc.t, err)
	p, err := net.LookupPort("udp", port)
	require.NoError(fc.t, err)
	return Config{
		Host:           host,
		Port:           p,
		RequestTimeout: 500 * time.Millisecond,
		ConnectTimeout: 500 * time.Millisecond,
	}
}

func infoReply() *osc.Message {
	return osc.NewMessage("/info",
		osc.String("V2.07"), osc.String("osc-server"), osc.String("X32"), osc.String("4.06"))
}

// infoOnly answers the /info probe and ignores everything else.
func infoOnly(m *osc.Message) []*osc.Message {
	if m.Address == "/info" {
		return []*osc.Message{infoReply()}
	}
	return nil
}

// echoConsole answers /info and stores/echoes parameter values: a message
// with one argument is a set, an address-only message is a get.
type echoConsole struct {
	mu     sync.Mutex
	params map[string]osc.Value
}

func newEchoConsole() *echoConsole {
	return &echoConsole{params: make(map[string]osc.Value)}
}

func (e *echoConsole) handle(m *osc.Message) []*osc.Message {
	if m.Address == "/info" {
		return []*osc.Message{infoReply()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(m.Arguments) > 0 {
		e.params[m.Address] = m.Arguments[0]
		return nil // sets are not acknowledged
	}
	v, ok := e.params[m.Address]
	if !ok {
		v = osc.Float(0)
	}
	return []*osc.Message{osc.NewMessage(m.Address, v)}
}

func connect(t *testing.T, fc *fakeConsole, opts ...Option) *Conn {
	t.Helper()
	c := New(fc.config(), opts...)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { c.Disconnect() })
	return c
}

func TestConnect(t *testing.T) {
	fc := newFakeConsole(t, infoOnly)
	c := New(fc.config())

	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.Connected())

	info, ok := c.ConsoleInfo()
	require.True(t, ok)
	assert.Equal(t, "X32", info.Model)
	assert.Equal(t, "4.06", info.Firmware)

	// Connecting twice is an error.
	assert.ErrorIs(t, c.Connect(context.Background()), ErrAlreadyConnected)

	require.NoError(t, c.Disconnect())
	assert.False(t, c.Connected())

	// Disconnect is idempotent.
	require.NoError(t, c.Disconnect())
}

func TestConnect_ProbeTimeout(t *testing.T) {
	// A console that never answers /info.
	fc := newFakeConsole(t, func(m *osc.Message) []*osc.Message { return nil })

	cfg := fc.config()
	cfg.ConnectTimeout = 50 * time.Millisecond
	c := New(cfg)

	err := c.Connect(context.Background())
	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "/info", terr.Address)
	assert.False(t, c.Connected())

	// A failed connect leaves the handle reusable.
	require.NoError(t, c.Disconnect())
}

func TestConnect_StateQueriesDoNotBlockDuringProbe(t *testing.T) {
	// A console that never answers /info, so Connect sits in the probe
	// for the full connect timeout.
	fc := newFakeConsole(t, func(m *osc.Message) []*osc.Message { return nil })

	cfg := fc.config()
	cfg.ConnectTimeout = 2 * time.Second
	c := New(cfg)

	connectErr := make(chan error, 1)
	go func() { connectErr <- c.Connect(context.Background()) }()

	// Give the goroutine time to enter the probe, then poll the state
	// accessors. Both must return well before the probe times out.
	time.Sleep(50 * time.Millisecond)

	polled := make(chan struct{})
	go func() {
		defer close(polled)
		assert.False(t, c.Connected())
		_, ok := c.ConsoleInfo()
		assert.False(t, ok)
	}()
	select {
	case <-polled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("state accessors blocked while a connect was in flight")
	}

	// A second Connect during the probe is rejected, not queued.
	assert.ErrorIs(t, c.Connect(context.Background()), ErrAlreadyConnected)

	var terr *TimeoutError
	require.ErrorAs(t, <-connectErr, &terr)
	assert.False(t, c.Connected())
}

func TestNotConnectedOperationsFail(t *testing.T) {
	c := New(Config{Host: "127.0.0.1", Port: 1})
	ctx := context.Background()

	_, err := c.Get(ctx, "/ch/01/mix/fader")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Set(ctx, "/ch/01/mix/fader", osc.Float(0.5)), ErrNotConnected)
	_, err = c.Status(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Remote(ctx), ErrNotConnected)
}

func TestSetThenGetChannelParameter(t *testing.T) {
	echo := newEchoConsole()
	fc := newFakeConsole(t, echo.handle)
	c := connect(t, fc)
	ctx := context.Background()

	require.NoError(t, c.SetChannel(ctx, 1, "mix/fader", osc.Float(0.75)))

	v, err := c.GetChannel(ctx, 1, "mix/fader")
	require.NoError(t, err)
	f, ok := v.Float32()
	require.True(t, ok)
	assert.Equal(t, float32(0.75), f)
}

func TestChannelRangeErrorSendsNothing(t *testing.T) {
	fc := newFakeConsole(t, infoOnly)
	c := connect(t, fc)
	ctx := context.Background()

	before := fc.datagrams.Load()

	_, err := c.GetChannel(ctx, 99, "mix/fader")
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 99, rerr.Value)

	require.ErrorAs(t, c.SetChannel(ctx, 0, "mix/fader", osc.Float(0.5)), &rerr)

	// Only the /info probe ever reached the wire.
	assert.Equal(t, before, fc.datagrams.Load())
}

func TestConcurrentGetsAreNotSwapped(t *testing.T) {
	// Replies arrive in reverse order of the requests.
	fc := newFakeConsole(t, func(m *osc.Message) []*osc.Message {
		switch m.Address {
		case "/info":
			return []*osc.Message{infoReply()}
		case "/ch/01/mix/fader":
			time.Sleep(100 * time.Millisecond)
			return []*osc.Message{osc.NewMessage(m.Address, osc.Float(0.1))}
		case "/ch/02/mix/fader":
			return []*osc.Message{osc.NewMessage(m.Address, osc.Float(0.2))}
		}
		return nil
	})
	c := connect(t, fc)
	ctx := context.Background()

	var wg sync.WaitGroup
	var f1, f2 float32
	var err1, err2 error

	wg.Add(2)
	go func() {
		defer wg.Done()
		f1, err1 = c.GetFloat(ctx, "/ch/01/mix/fader")
	}()
	go func() {
		defer wg.Done()
		f2, err2 = c.GetFloat(ctx, "/ch/02/mix/fader")
	}()
	wg.Wait()

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, float32(0.1), f1)
	assert.Equal(t, float32(0.2), f2)
}

func TestRequestTimeoutCarriesAddress(t *testing.T) {
	fc := newFakeConsole(t, infoOnly)
	c := connect(t, fc)

	_, err := c.Request(context.Background(), "/ch/03/mix/fader", 50*time.Millisecond)
	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "/ch/03/mix/fader", terr.Address)
	assert.Equal(t, 50*time.Millisecond, terr.Timeout)
}

func TestDisconnectCancelsPending(t *testing.T) {
	fc := newFakeConsole(t, infoOnly)
	c := connect(t, fc)

	errc := make(chan error, 1)
	go func() {
		_, err := c.Request(context.Background(), "/ch/01/mix/fader", time.Minute)
		errc <- err
	}()

	// Let the request reach the wire before tearing down.
	require.Eventually(t, func() bool { return fc.datagrams.Load() >= 2 }, time.Second, time.Millisecond)
	require.NoError(t, c.Disconnect())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrConnClosed)
	case <-time.After(time.Second):
		t.Fatal("pending request not cancelled by disconnect")
	}
}

func TestStatus(t *testing.T) {
	fc := newFakeConsole(t, func(m *osc.Message) []*osc.Message {
		switch m.Address {
		case "/info":
			return []*osc.Message{infoReply()}
		case "/status":
			return []*osc.Message{osc.NewMessage("/status",
				osc.String("active"), osc.String("192.168.1.50"), osc.String("osc-server"))}
		}
		return nil
	})
	c := connect(t, fc)

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "active", st.State)
	assert.Equal(t, "192.168.1.50", st.IP)
	assert.Equal(t, "osc-server", st.ServerName)
}

func TestGetString_TypeMismatch(t *testing.T) {
	fc := newFakeConsole(t, func(m *osc.Message) []*osc.Message {
		switch m.Address {
		case "/info":
			return []*osc.Message{infoReply()}
		case "/ch/01/config/name":
			return []*osc.Message{osc.NewMessage(m.Address, osc.Int(3))}
		}
		return nil
	})
	c := connect(t, fc)

	_, err := c.GetString(context.Background(), "/ch/01/config/name")
	var rerr *ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "/ch/01/config/name", rerr.Address)
}

func TestNotifyReceivesUnsolicited(t *testing.T) {
	fc := newFakeConsole(t, infoOnly)

	updates := make(chan *osc.Message, 4)
	c := connect(t, fc, WithNotify(updates))

	require.NoError(t, c.Remote(context.Background()))

	// Push an unsolicited broadcast from the console side.
	raddr := clientAddr(t, fc)
	out, err := osc.NewMessage("/ch/09/mix/fader", osc.Float(0.4)).Encode()
	require.NoError(t, err)
	_, err = fc.pc.WriteTo(out, raddr)
	require.NoError(t, err)

	select {
	case m := <-updates:
		assert.Equal(t, "/ch/09/mix/fader", m.Address)
	case <-time.After(time.Second):
		t.Fatal("unsolicited broadcast not delivered to notify sink")
	}
}

// clientAddr returns the source address the console last heard from.
func clientAddr(t *testing.T, fc *fakeConsole) net.Addr {
	t.Helper()
	fc.lastMu.Lock()
	defer fc.lastMu.Unlock()
	require.NotNil(t, fc.last, "console has not heard from the client yet")
	return fc.last
}
