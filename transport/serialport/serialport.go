// Package serialport provides a bootloader transport over a UART, for devices
// whose system bootloader is reached through USART rather than I2C.
package serialport

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaud is a baud rate all ROM bootloader UARTs accept.
const DefaultBaud = 115200

// Port wraps a serial connection in the bootloader transport contract.
type Port struct {
	port serial.Port
}

// Open opens the named serial device with the 8E1 framing the ROM bootloader
// requires on its USART interface.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", serialport.DefaultBaud)
func Open(device string, baud int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}

	return &Port{port: port}, nil
}

// Write transmits p to the device.
func (p *Port) Write(b []byte) error {
	if _, err := p.port.Write(b); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

// Read fills b entirely, blocking until enough bytes arrive.
func (p *Port) Read(b []byte) error {
	if _, err := io.ReadFull(p.port, b); err != nil {
		return fmt.Errorf("serial read: %w", err)
	}
	return nil
}

// Close releases the serial port.
func (p *Port) Close() error {
	return p.port.Close()
}
