// Package link carries the byte protocol over a host serial port.
package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"go.bug.st/serial"

	"github.com/itohio/launchscope/pkg/frame"
)

const (
	// DefaultBaudRate is the board's UART rate.
	DefaultBaudRate = 128000
	// DefaultBufferSize is the default size for the received bytes channel.
	DefaultBufferSize = 16
)

// ErrNotOpen is returned when the port is used before Open.
var ErrNotOpen = errors.New("serial port not open")

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is one end of the board's serial link.
type Serial struct {
	port     string
	baudRate int

	conn      io.ReadWriteCloser
	received  chan byte
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

var _ frame.Transport = (*Serial)(nil)

// New creates a Serial link for port. Zero values select defaults.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		received: make(chan byte, bufSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Open opens the serial port (8N1) and starts reading command bytes.
func (s *Serial) Open() error {
	port, err := serial.Open(s.port, &serial.Mode{
		BaudRate: s.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	if err := s.attach(port); err != nil {
		port.Close()
		return err
	}
	return nil
}

// attach starts using an already opened connection.
func (s *Serial) attach(conn io.ReadWriteCloser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	s.conn = conn
	s.connected = true

	go s.readBytes(conn)

	return nil
}

// Close closes the port and stops reading.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	s.cancel()

	var err error
	if s.conn != nil {
		err = s.conn.Close()
		s.conn = nil
	}
	s.connected = false

	return err
}

// Received returns the channel of bytes read from the port. It is closed
// when the reader stops.
func (s *Serial) Received() <-chan byte {
	return s.received
}

// IsConnected returns whether the port is currently open.
func (s *Serial) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// WriteByte sends one byte.
func (s *Serial) WriteByte(c byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return ErrNotOpen
	}

	if _, err := s.conn.Write([]byte{c}); err != nil {
		return fmt.Errorf("failed to write to %s: %w", s.port, err)
	}
	return nil
}

// readBytes forwards everything read from conn to the received channel.
func (s *Serial) readBytes(conn io.Reader) {
	defer close(s.received)

	buf := make([]byte, 64)
	for {
		n, err := conn.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.received <- b:
			case <-s.ctx.Done():
				return
			}
		}
		if err != nil {
			if s.ctx.Err() == nil && !errors.Is(err, io.EOF) {
				log.Printf("Error reading from serial port: %v", err)
			}
			return
		}
	}
}
