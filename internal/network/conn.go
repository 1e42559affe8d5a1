package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/sensor"
)

const (
	readLimit    = 1 << 16
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second

	// StaleAfter is how old the latest frame may be before the hand counts
	// as lost.
	StaleAfter = 250 * time.Millisecond
)

// Conn is one browser session. It is the hand sensor, command source and
// renderer for a single game loop.
type Conn struct {
	ws     *websocket.Conn
	clk    clock.Source
	logger *log.Logger

	writeMu sync.Mutex

	mu        sync.Mutex
	codec     Codec
	greeted   bool
	frame     Frame
	frameAt   time.Time
	haveFrame bool
	cmds      []game.Command
	closed    bool
	err       error

	welcome Welcome
	every   int // Send one state per every renders, plus any with events
	ticks   int
	state   game.GameState
}

// ConnOptions configures a Conn.
type ConnOptions struct {
	Clock   clock.Source
	Every   int     // States are sent every Every renders, and at once on events or state changes
	Welcome Welcome // Reply to the client's hello
	Logger  *log.Logger
}

// NewConn wraps an upgraded websocket.
func NewConn(ws *websocket.Conn, opts ConnOptions) *Conn {
	c := &Conn{
		ws:      ws,
		clk:     opts.Clock,
		every:   opts.Every,
		welcome: opts.Welcome,
		logger:  opts.Logger,
		state:   -1,
	}
	if c.clk == nil {
		c.clk = clock.System{}
	}
	if c.every < 1 {
		c.every = 1
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Serve reads client messages until the connection fails or ctx ends, and
// keeps it alive with pings. It blocks; run it in its own goroutine.
func (c *Conn) Serve(ctx context.Context) error {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(ctx, done)

	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			c.fail(err)
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		t, err := c.handle(mt, data)
		if err != nil {
			c.logger.Debug("bad message", "err", err)
			continue
		}
		if t == MsgHello {
			if err := c.Send(MsgWelcome, c.welcome); err != nil {
				c.fail(err)
				return err
			}
		}
	}
}

func (c *Conn) pingLoop(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-ctx.Done():
			c.writeMu.Lock()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			c.writeMu.Unlock()
			_ = c.ws.Close()
			return
		case <-done:
			return
		}
	}
}

// handle applies one client message and returns its type.
func (c *Conn) handle(messageType int, data []byte) (string, error) {
	codec, ok := CodecFor(messageType)
	if !ok {
		return "", fmt.Errorf("unsupported frame type %d", messageType)
	}
	env, err := codec.DecodeEnvelope(data)
	if err != nil {
		return "", err
	}
	return env.T, c.apply(codec, env)
}

func (c *Conn) apply(codec Codec, env Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch env.T {
	case MsgHello:
		hello, err := DecodePayload[Hello](codec, env)
		if err != nil {
			return err
		}
		if hello.V != ProtocolVersion {
			return fmt.Errorf("protocol version %d, want %d", hello.V, ProtocolVersion)
		}
		c.codec = codec
		c.greeted = true
	case MsgFrame:
		f, err := DecodePayload[Frame](codec, env)
		if err != nil {
			return err
		}
		c.frame = f
		c.frameAt = c.clk.Now()
		c.haveFrame = true
	case MsgCommand:
		cmd, err := DecodePayload[Command](codec, env)
		if err != nil {
			return err
		}
		parsed, ok := game.ParseCommand(cmd.C)
		if !ok {
			return fmt.Errorf("unknown command %q", cmd.C)
		}
		c.cmds = append(c.cmds, parsed)
	default:
		return fmt.Errorf("unknown message type %q", env.T)
	}
	return nil
}

func (c *Conn) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.err == nil {
		c.err = err
	}
}

// Greeted reports whether the client completed the hello.
func (c *Conn) Greeted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.greeted
}

// Read returns the latest frame. Before the first frame, or once the latest
// is older than StaleAfter, it returns sensor.ErrNoFrame.
func (c *Conn) Read() (sensor.Sample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return sensor.Sample{}, sensor.ErrClosed
	}
	if !c.haveFrame || c.clk.Now().Sub(c.frameAt) > StaleAfter {
		return sensor.Sample{}, sensor.ErrNoFrame
	}
	return c.frame.Sample(), nil
}

// Commands returns the commands received since the last call.
func (c *Conn) Commands() []game.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cmds
	c.cmds = nil
	return out
}

// Render sends the snapshot when it is due. Nothing is sent before the
// client's hello.
func (c *Conn) Render(snap game.Snapshot) error {
	if !c.Greeted() {
		return nil
	}
	c.ticks++
	due := c.ticks%c.every == 0 || len(snap.Events) > 0 || snap.State != c.state || snap.Quit
	if !due {
		return nil
	}
	c.state = snap.State
	if err := c.Send(MsgState, snap); err != nil && !errors.Is(err, sensor.ErrClosed) {
		return err
	}
	return nil
}

// Send writes one message with the session's codec.
func (c *Conn) Send(t string, payload any) error {
	c.mu.Lock()
	codec := c.codec
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return sensor.ErrClosed
	}

	data, err := codec.Encode(t, payload)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(codec.MessageType(), data); err != nil {
		return fmt.Errorf("write %s: %w", t, err)
	}
	return nil
}

// Close closes the websocket.
func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.ws.Close()
}
