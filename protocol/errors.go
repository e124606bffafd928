package protocol

import (
	"errors"
	"fmt"
)

// NackError reports that the device explicitly rejected a command step.
// Rejections are part of the protocol's normal vocabulary (for example a read
// from protected memory); callers are expected to branch on them rather than
// treat them as fatal.
type NackError struct {
	// Op is the command during which the rejection was observed
	Op string
}

func (e *NackError) Error() string {
	return fmt.Sprintf("%s: device reported NACK", e.Op)
}

// ViolationError reports a status byte outside the BUSY/ACK/NACK vocabulary.
// Once observed, the session is out of sync with the device and should be
// re-established.
type ViolationError struct {
	// Op is the command during which the violation was observed
	Op string

	// Status is the illegal byte read from the wire
	Status byte
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: protocol violation: illegal status byte 0x%02X", e.Op, e.Status)
}

// IsNack reports whether err is, or wraps, a device rejection.
func IsNack(err error) bool {
	var nack *NackError
	return errors.As(err, &nack)
}

// IsViolation reports whether err is, or wraps, a protocol violation.
func IsViolation(err error) bool {
	var violation *ViolationError
	return errors.As(err, &violation)
}
