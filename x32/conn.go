package x32

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/x32kit/x32kit/osc"
)

// DefaultPort is the UDP port the console listens on.
const DefaultPort = 10023

const (
	// DefaultRequestTimeout bounds how long a correlated request waits for
	// its reply. Override per connection via Config, per call via Request.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultConnectTimeout bounds the /info probe during Connect.
	DefaultConnectTimeout = 2 * time.Second
)

// Config describes the console endpoint. It is immutable once Connect
// succeeds.
type Config struct {
	Host string
	Port int // defaults to DefaultPort

	RequestTimeout time.Duration // defaults to DefaultRequestTimeout
	ConnectTimeout time.Duration // defaults to DefaultConnectTimeout
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Port == 0 {
		out.Port = DefaultPort
	}
	if out.RequestTimeout <= 0 {
		out.RequestTimeout = DefaultRequestTimeout
	}
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = DefaultConnectTimeout
	}
	return out
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger attaches a structured logger to the connection. The default
// logger discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Conn) { c.log = log }
}

// WithNotify registers a sink for unsolicited console broadcasts: every
// inbound message that matches no pending request is offered to ch. Sends
// never block; a full channel drops the message.
func WithNotify(ch chan<- *osc.Message) Option {
	return func(c *Conn) { c.notify = ch }
}

// Conn is one connection to one console. Construct with New, establish with
// Connect. All methods are safe for concurrent use; there is no package-level
// connection state.
type Conn struct {
	cfg    Config
	log    *zap.Logger
	notify chan<- *osc.Message

	mu         sync.Mutex
	udp        *net.UDPConn
	corr       *correlator
	connected  bool
	connecting bool
	info       Info
	readerDone chan struct{}
}

// New returns an unconnected handle for the configured console.
func New(cfg Config, opts ...Option) *Conn {
	c := &Conn{
		cfg: cfg.withDefaults(),
		log: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Connected reports whether the connection is established.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ConsoleInfo returns the /info record captured while connecting. The bool
// is false before the first successful Connect.
func (c *Conn) ConsoleInfo() (Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info, c.connected
}

// Connect opens the UDP socket and verifies the console answers an /info
// probe. On success the connection is established and the parsed console
// info recorded. On any failure the socket is closed and the connection
// stays down, with the underlying cause returned. The handshake runs
// outside the connection lock, so Connected and ConsoleInfo stay
// responsive while a slow console is being probed.
func (c *Conn) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected || c.connecting {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.connecting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()
	}()

	raddr, err := net.ResolveUDPAddr("udp", c.cfg.addr())
	if err != nil {
		return fmt.Errorf("x32: resolve %s: %w", c.cfg.addr(), err)
	}

	// No fixed local port; the console replies to whatever source port the
	// probe came from.
	udp, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return &HardwareError{Op: "dial", Err: err}
	}

	corr := newCorrelator(c.log)
	readerDone := make(chan struct{})
	go c.readLoop(udp, corr, readerDone)

	args, err := request(ctx, corr, udp, osc.NewMessage("/info"), c.cfg.ConnectTimeout)
	if err == nil {
		var info Info
		if info, err = parseInfo(args); err == nil {
			c.mu.Lock()
			c.udp = udp
			c.corr = corr
			c.readerDone = readerDone
			c.connected = true
			c.info = info
			c.mu.Unlock()
			c.log.Info("connected",
				zap.String("console", c.cfg.addr()),
				zap.String("model", info.Model),
				zap.String("firmware", info.Firmware))
			return nil
		}
	}

	corr.close(ErrConnClosed)
	udp.Close()
	<-readerDone
	return fmt.Errorf("x32: connect %s: %w", c.cfg.addr(), err)
}

// Disconnect rejects every pending request, closes the socket and leaves the
// connection down. Safe to call repeatedly and after a failed Connect; the
// local state always ends up disconnected even if closing the socket errors.
func (c *Conn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false

	c.corr.close(ErrConnClosed)
	err := c.udp.Close()
	<-c.readerDone
	c.udp = nil
	c.corr = nil
	c.readerDone = nil

	c.log.Info("disconnected", zap.String("console", c.cfg.addr()))
	if err != nil {
		return &HardwareError{Op: "close", Err: err}
	}
	return nil
}

// readLoop delivers every inbound datagram until the socket closes.
func (c *Conn) readLoop(udp *net.UDPConn, corr *correlator, done chan<- struct{}) {
	defer close(done)

	buf := make([]byte, osc.MaxPacketSize)
	for {
		n, err := udp.Read(buf)
		if err != nil {
			// Socket closed by Disconnect, or the network went away.
			return
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		m, err := osc.Decode(data)
		if err != nil {
			c.log.Warn("dropping undecodable datagram", zap.Int("bytes", n), zap.Error(err))
			continue
		}

		if !corr.deliver(m) && c.notify != nil {
			select {
			case c.notify <- m:
			default:
			}
		}
	}
}

// request encodes m, registers it with the correlator and waits for the
// correlated reply, the deadline, or ctx.
func request(ctx context.Context, corr *correlator, udp *net.UDPConn, m *osc.Message, timeout time.Duration) ([]osc.Value, error) {
	data, err := m.Encode()
	if err != nil {
		return nil, err
	}

	done, err := corr.enqueue(m.Address, timeout, func() error {
		if _, err := udp.Write(data); err != nil {
			return &HardwareError{Op: "send", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	select {
	case out := <-done:
		return out.args, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// session snapshots the live transport, failing when disconnected.
func (c *Conn) session() (*correlator, *net.UDPConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil, nil, ErrNotConnected
	}
	return c.corr, c.udp, nil
}

// Request sends an address-only query and waits for the correlated reply's
// arguments, with an explicit timeout. Most callers want Get instead.
func (c *Conn) Request(ctx context.Context, address string, timeout time.Duration) ([]osc.Value, error) {
	corr, udp, err := c.session()
	if err != nil {
		return nil, err
	}
	return request(ctx, corr, udp, osc.NewMessage(address), timeout)
}

// Get queries one parameter and returns the reply's first argument.
func (c *Conn) Get(ctx context.Context, address string) (osc.Value, error) {
	args, err := c.Request(ctx, address, c.cfg.RequestTimeout)
	if err != nil {
		return osc.Value{}, err
	}
	if len(args) == 0 {
		return osc.Value{}, &ResponseError{Address: address, Want: "1 argument", Got: "0 arguments"}
	}
	return args[0], nil
}

// Set writes one parameter. The console sends no acknowledgement, so Set
// only reports local encode and send failures.
func (c *Conn) Set(ctx context.Context, address string, v osc.Value) error {
	_, udp, err := c.session()
	if err != nil {
		return err
	}

	data, err := osc.NewMessage(address, v).Encode()
	if err != nil {
		return err
	}
	if _, err := udp.Write(data); err != nil {
		return &HardwareError{Op: "send", Err: err}
	}
	return nil
}

// GetString queries a parameter documented as a string.
func (c *Conn) GetString(ctx context.Context, address string) (string, error) {
	v, err := c.Get(ctx, address)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", &ResponseError{Address: address, Want: "string", Got: v.Kind().String()}
	}
	return s, nil
}

// GetInt queries a parameter documented as an int32.
func (c *Conn) GetInt(ctx context.Context, address string) (int32, error) {
	v, err := c.Get(ctx, address)
	if err != nil {
		return 0, err
	}
	n, ok := v.Int32()
	if !ok {
		return 0, &ResponseError{Address: address, Want: "int32", Got: v.Kind().String()}
	}
	return n, nil
}

// GetFloat queries a parameter documented as a float32.
func (c *Conn) GetFloat(ctx context.Context, address string) (float32, error) {
	v, err := c.Get(ctx, address)
	if err != nil {
		return 0, err
	}
	f, ok := v.Float32()
	if !ok {
		return 0, &ResponseError{Address: address, Want: "float32", Got: v.Kind().String()}
	}
	return f, nil
}

// GetTarget queries a parameter on a channel, bus, FX rack, DCA or main.
func (c *Conn) GetTarget(ctx context.Context, t Target, path string) (osc.Value, error) {
	addr, err := t.Address(path)
	if err != nil {
		return osc.Value{}, err
	}
	return c.Get(ctx, addr)
}

// SetTarget writes a parameter on a channel, bus, FX rack, DCA or main.
func (c *Conn) SetTarget(ctx context.Context, t Target, path string, v osc.Value) error {
	addr, err := t.Address(path)
	if err != nil {
		return err
	}
	return c.Set(ctx, addr, v)
}

// GetChannel queries a parameter on input channel ch (1-32).
func (c *Conn) GetChannel(ctx context.Context, ch int, path string) (osc.Value, error) {
	return c.GetTarget(ctx, Channel(ch), path)
}

// SetChannel writes a parameter on input channel ch (1-32).
func (c *Conn) SetChannel(ctx context.Context, ch int, path string, v osc.Value) error {
	return c.SetTarget(ctx, Channel(ch), path, v)
}

// Info queries /info and parses the four-string reply.
func (c *Conn) Info(ctx context.Context) (Info, error) {
	args, err := c.Request(ctx, "/info", c.cfg.RequestTimeout)
	if err != nil {
		return Info{}, err
	}
	return parseInfo(args)
}

// Status queries /status and parses the reply.
func (c *Conn) Status(ctx context.Context) (Status, error) {
	args, err := c.Request(ctx, "/status", c.cfg.RequestTimeout)
	if err != nil {
		return Status{}, err
	}
	return parseStatus(args)
}

// Remote asks the console to push parameter changes to this client for the
// next ten seconds. Call it on an interval to keep a Notify sink fed.
func (c *Conn) Remote(ctx context.Context) error {
	_, udp, err := c.session()
	if err != nil {
		return err
	}

	data, err := osc.NewMessage("/xremote").Encode()
	if err != nil {
		return err
	}
	if _, err := udp.Write(data); err != nil {
		return &HardwareError{Op: "send", Err: err}
	}
	return nil
}
