package bootloader

// Transport moves raw bytes between the host and the bootloader peer at its
// fixed bus address. Implementations hold the device address themselves (for
// I2C the conventional bootloader address is a 7-bit constant such as 0x56),
// so independent sessions on different buses never interfere.
//
// Both methods may fail with a transport-level error (bus not acknowledged,
// device unreachable). Such errors are propagated unchanged by the session
// and are distinct from a protocol-level NACK.
//
// Implementations wanting bounded commands should enforce deadlines here;
// the protocol itself distinguishes "still working" from "rejected" via the
// BUSY status and defines no timeout of its own.
type Transport interface {
	// Write transmits the frame to the device.
	Write(p []byte) error

	// Read fills p with exactly len(p) bytes from the device.
	Read(p []byte) error
}
