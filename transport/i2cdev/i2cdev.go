// Package i2cdev provides a bootloader transport backed by a host I2C bus
// via periph.io.
package i2cdev

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddr is the 7-bit bus address STM32 system bootloaders respond on.
const DefaultAddr = 0x56

// Device is a bootloader transport addressing one fixed device on an I2C bus.
// The device address is held here rather than in package state, so sessions
// on different buses or addresses never interfere.
type Device struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// Open initializes the host drivers and opens the named I2C bus, addressing
// the device at addr. An empty busName selects the first available bus.
//
// Example:
//
//	dev, err := i2cdev.Open("/dev/i2c-1", i2cdev.DefaultAddr)
func Open(busName string, addr uint16) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	return &Device{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// Write transmits p to the device in a single bus transaction.
func (d *Device) Write(p []byte) error {
	if err := d.dev.Tx(p, nil); err != nil {
		return fmt.Errorf("i2c write: %w", err)
	}
	return nil
}

// Read fills p from the device in a single bus transaction.
func (d *Device) Read(p []byte) error {
	if err := d.dev.Tx(nil, p); err != nil {
		return fmt.Errorf("i2c read: %w", err)
	}
	return nil
}

// Close releases the underlying bus.
func (d *Device) Close() error {
	return d.bus.Close()
}
