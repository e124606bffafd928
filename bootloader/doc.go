// Package bootloader provides a host-side client for the STM32 in-ROM serial
// bootloader over a two-wire bus.
//
// # Overview
//
// A Session wraps an injected Transport and exposes the bootloader's command
// set: capability and identity queries, memory read and write, the erase
// family, and the execution branch. Every command is a blocking sequence of
// frame exchanges, each gated by the device's BUSY/ACK/NACK handshake.
//
// # Basic Usage
//
//	dev, err := i2cdev.Open("", i2cdev.DefaultAddr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	sess, err := bootloader.Open(context.Background(), dev)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id, err := sess.ChipID(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("chip id: 0x%04X\n", id)
//
// # Device Variants
//
// Newer devices advertise alternate opcodes for the write and erase commands.
// The session queries the capability list once at open and selects the
// extended or legacy opcode per command automatically.
//
// # Error Handling
//
// Three failure classes come back from commands, and callers are expected to
// treat them differently:
//
//   - protocol.NackError: the device rejected a step. Expected and
//     recoverable; branch on it with protocol.IsNack.
//   - protocol.ViolationError: an illegal status byte. The session is out of
//     sync and should be re-established.
//   - transport errors: propagated unchanged, wrapped with the failing
//     operation. Never retried by the session; retry policy belongs to the
//     caller, since BUSY/ACK/NACK already distinguishes "still working" from
//     "rejected".
//
// Input validation failures (oversized reads, bad bank numbers, too many
// pages) are reported before any bus traffic occurs.
//
// # Cancellation and Timeouts
//
// The handshake polls the status byte for as long as the device reports BUSY;
// the protocol defines no timeout. All operations take a context.Context and
// stop polling once it is cancelled, so deadlines are imposed by the caller:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	err := sess.EraseAll(ctx)
//
// Note that cancellation cannot recall frames already on the wire; after a
// cancelled command the device may still be mid-exchange and the session
// should be re-established.
//
// # Concurrency
//
// A Session is not safe for concurrent use. The bus and the addressed device
// are one shared resource with no multiplexing; interleaving two commands'
// frames corrupts both. Use one session from one goroutine, or guard it
// externally.
//
// # Hardware Independence
//
// This package does not implement bus access. Provide a Transport for your
// hardware, or use the ready-made ones in transport/i2cdev (Linux I2C via
// periph.io) and transport/serialport (UART via go.bug.st/serial). Mock
// transports work the same way for tests.
package bootloader
