// Package amixer reads and writes Scarlett mixer controls through the ALSA
// amixer command.
package amixer

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"time"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/logfields"
	"git.home.luguber.info/inful/scarlettcfg/internal/metrics"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// Control types reported by amixer.
const (
	TypeBoolean    = "BOOLEAN"
	TypeInteger    = "INTEGER"
	TypeEnumerated = "ENUMERATED"
)

const (
	DefaultCard   = "USB"
	DefaultBinary = "amixer"
)

// Client talks to one sound card.
type Client struct {
	card     string
	binary   string
	runner   Runner
	recorder metrics.Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithBinary sets the amixer executable.
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithRunner replaces command execution, mainly for tests.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewClient returns a client for card (for example "USB" or "2").
func NewClient(card string, opts ...Option) *Client {
	if card == "" {
		card = DefaultCard
	}
	c := &Client{
		card:     card,
		binary:   DefaultBinary,
		runner:   ExecRunner{},
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Card returns the card identifier passed to amixer.
func (c *Client) Card() string { return c.card }

// ListControls returns the card's control inventory.
func (c *Client) ListControls(ctx context.Context) ([]mixer.Control, error) {
	out, err := c.run(ctx, "controls")
	if err != nil {
		return nil, err
	}
	controls, err := parseControls(out)
	if err != nil {
		return nil, err
	}
	c.recorder.SetDiscoveredControls(len(controls))
	slog.Debug("Listed controls", logfields.Card(c.card), logfields.Count(len(controls)))
	return controls, nil
}

// Inspect returns the type, values and items of one control.
func (c *Client) Inspect(ctx context.Context, handle int) (*ControlInfo, error) {
	out, err := c.run(ctx, "cget", numid(handle))
	if err != nil {
		return nil, err
	}
	info, err := parseInfo(out)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("handle", handle)
		}
		return nil, err
	}
	return info, nil
}

// ReadBoolean returns the state of a switch: true when its first value is on.
func (c *Client) ReadBoolean(ctx context.Context, handle int) (bool, error) {
	info, err := c.read(ctx, handle, TypeBoolean)
	if err != nil {
		return false, err
	}
	v := info.Values[0]
	return v == "on" || v == "1", nil
}

// ReadInteger returns the first value of an integer control.
func (c *Client) ReadInteger(ctx context.Context, handle int) (int, error) {
	info, err := c.read(ctx, handle, TypeInteger)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(info.Values[0])
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryTransport, "integer control value is not a number").
			WithContext("handle", handle).
			Build()
	}
	return n, nil
}

// ReadEnumerated returns the selected item index and the item list.
func (c *Client) ReadEnumerated(ctx context.Context, handle int) (int, []mixer.Item, error) {
	info, err := c.read(ctx, handle, TypeEnumerated)
	if err != nil {
		return 0, nil, err
	}
	index, err := strconv.Atoi(info.Values[0])
	if err != nil {
		return 0, nil, errors.WrapError(err, errors.CategoryTransport, "enumerated control value is not an index").
			WithContext("handle", handle).
			Build()
	}
	return index, info.Items, nil
}

// Write sets a control. value uses amixer syntax: "on,on", "81,81" or an item label.
func (c *Client) Write(ctx context.Context, handle int, value string) error {
	_, err := c.run(ctx, "cset", numid(handle), value)
	c.recorder.IncControlWrite(err == nil)
	return err
}

func (c *Client) read(ctx context.Context, handle int, want string) (*ControlInfo, error) {
	info, err := c.Inspect(ctx, handle)
	if err != nil {
		return nil, err
	}
	if info.Type != want {
		return nil, errors.TypeMismatch(handle, want, info.Type).
			WithContext("control", info.Name).
			Build()
	}
	c.recorder.IncControlRead(want)
	return info, nil
}

func (c *Client) run(ctx context.Context, verb string, args ...string) ([]byte, error) {
	argv := append([]string{"-c" + c.card, verb}, args...)
	start := time.Now()
	out, err := c.runner.Run(ctx, c.binary, argv...)
	c.recorder.ObserveInvocation(verb, time.Since(start), err == nil)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryTransport, "amixer "+verb+" failed").
			WithContext("card", c.card).
			WithContext("args", argv).
			Build()
	}
	return out, nil
}

func numid(handle int) string {
	return "numid=" + strconv.Itoa(handle)
}
