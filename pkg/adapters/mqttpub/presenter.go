// Package mqttpub streams destination planes to an MQTT topic so that a
// remote display (an LED matrix controller, a second screen) can show them.
package mqttpub

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/user/frameview/pkg/pipeline"
	"github.com/user/frameview/pkg/ports"
)

// HeaderSize is the length of the frame header: width and height as
// little-endian uint16 followed by one pixel format byte.
const HeaderSize = 5

// Options configures the publisher.
type Options struct {
	Broker   string // e.g. tcp://localhost:1883
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      byte
	Timeout  time.Duration // Per-publish acknowledgement timeout
}

// DefaultOptions returns QoS 0 publishing with a 5 second timeout.
func DefaultOptions() Options {
	return Options{
		Topic:    "frameview/frames",
		ClientID: "frameview",
		Timeout:  5 * time.Second,
	}
}

// Publisher is the part of mqtt.Client the presenter needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Presenter publishes every plane as one binary message.
type Presenter struct {
	pub    Publisher
	client mqtt.Client // Set when the presenter owns the connection
	opts   Options
}

// New creates a presenter publishing through pub. The caller keeps
// ownership of pub.
func New(pub Publisher, opts Options) *Presenter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &Presenter{pub: pub, opts: opts}
}

// Connect dials the broker and returns a presenter that disconnects on Close.
func Connect(opts Options, logger ports.Logger) (*Presenter, error) {
	if opts.Broker == "" {
		return nil, errors.New("mqtt broker is not set")
	}
	logger = logger.WithComponent("mqtt")

	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true)
	co.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost: %s", err.Error())
	})

	client := mqtt.NewClient(co)
	p := New(client, opts)

	token := client.Connect()
	if !token.WaitTimeout(p.opts.Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", opts.Broker, err)
	}
	logger.Info("Connected to %s", opts.Broker)

	p.client = client
	return p, nil
}

// ErrPlaneTooLarge is returned for planes whose size does not fit the
// 16-bit header fields.
var ErrPlaneTooLarge = errors.New("plane exceeds 65535 pixels per side")

// Present encodes the plane and waits for the broker to accept it.
func (p *Presenter) Present(plane *pipeline.DestinationPlane) error {
	if plane.Width > math.MaxUint16 || plane.Height > math.MaxUint16 {
		return fmt.Errorf("publish %dx%d: %w", plane.Width, plane.Height, ErrPlaneTooLarge)
	}
	payload := MarshalPlane(make([]byte, 0, HeaderSize+4*len(plane.Pix)), plane)

	token := p.pub.Publish(p.opts.Topic, p.opts.QoS, false, payload)
	if !token.WaitTimeout(p.opts.Timeout) {
		return fmt.Errorf("publish to %s: timeout", p.opts.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.opts.Topic, err)
	}
	return nil
}

// Close disconnects when the presenter dialled the broker itself.
func (p *Presenter) Close() error {
	if p.client != nil {
		p.client.Disconnect(250)
		p.client = nil
	}
	return nil
}

// MarshalPlane appends the wire form of plane to buf. The caller checks
// that both sides fit in 16 bits. Pixels follow the header in row-major
// order, little-endian, 2 bytes each for RGB565 and 4 bytes each otherwise.
func MarshalPlane(buf []byte, plane *pipeline.DestinationPlane) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, uint16(plane.Width))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(plane.Height))
	buf = append(buf, byte(plane.Format))

	if plane.Format == pipeline.FormatRGB565 {
		for _, v := range plane.Pix {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
		}
		return buf
	}
	for _, v := range plane.Pix {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// Ensure Presenter implements ports.Presenter
var _ ports.Presenter = (*Presenter)(nil)
