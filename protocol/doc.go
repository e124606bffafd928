// Package protocol implements the wire format of the STM32 in-ROM serial
// bootloader as it appears on the I2C interface.
//
// # Protocol Overview
//
// The bootloader speaks a strict request/acknowledge protocol. Every command
// opens with a two-byte frame carrying the opcode and its bitwise complement:
//
//	Command:  [OPCODE][~OPCODE]
//
// Commands that target a memory location follow up with an address payload:
//
//	Address:  [ADDR_3][ADDR_2][ADDR_1][ADDR_0][XOR_CHECKSUM]
//
// and commands that carry data use a length-prefixed block:
//
//	Data:     [LEN-1][DATA...][XOR_CHECKSUM]
//
// After each transmitted frame the device answers with a single status byte:
// StatusBusy while it is still working, StatusAck on acceptance, StatusNack on
// rejection. Any other value on the wire is a protocol violation.
//
// # Checksums
//
// Two verification rules exist side by side. A frame whose payload is a single
// byte is verified by that byte's bitwise complement; longer payloads carry the
// running XOR of all payload bytes. Checksum applies whichever rule matches
// its input length.
//
// # Frame Builders
//
// Use the *Frame functions to build the byte sequences ready to transmit:
//
//	frame := protocol.CommandFrame(protocol.CmdReadMemory)
//	frame := protocol.AddressFrame(0x08000000)
//	frame, err := protocol.DataFrame(data)
//	// ... etc
//
// All builders are pure; transmission and the acknowledge handshake live in
// the bootloader package.
//
// # Error Handling
//
// Device rejections and illegal status bytes are reported through the
// structured NackError and ViolationError types. Use IsNack and IsViolation
// to classify errors from anywhere in a wrapped chain:
//
//	if protocol.IsNack(err) {
//	    // expected rejection, e.g. a read from protected memory
//	}
//
// # Reference
//
// The command set and framing follow the STM32 application notes AN2606 and
// AN4221 (I2C protocol used in STM32 bootloaders).
package protocol
