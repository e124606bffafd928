package protocol

import (
	"encoding/binary"
	"fmt"
)

// CommandFrame builds the two-byte frame that opens every command:
// the opcode followed by its bitwise complement.
func CommandFrame(opcode byte) []byte {
	return []byte{opcode, ^opcode}
}

// AddressFrame encodes a 32-bit memory address the way the bootloader expects
// it: four big-endian bytes followed by their XOR checksum.
func AddressFrame(addr uint32) []byte {
	frame := make([]byte, 5)
	binary.BigEndian.PutUint32(frame, addr)
	frame[4] = Checksum(frame[:4])
	return frame
}

// DataFrame builds the length-prefixed payload used by the write commands:
// (len(data) - 1), the raw data, and the XOR checksum over the length byte
// and all data bytes.
//
// len(data) must be in [1, MaxTransferSize].
func DataFrame(data []byte) ([]byte, error) {
	if len(data) < 1 || len(data) > MaxTransferSize {
		return nil, fmt.Errorf("data length must be 1-%d bytes, got %d", MaxTransferSize, len(data))
	}

	frame := make([]byte, 0, len(data)+2)
	frame = append(frame, byte(len(data)-1))
	frame = append(frame, data...)
	frame = append(frame, Checksum(frame))
	return frame, nil
}

// CountFrame builds the two-byte frame that requests count bytes from a
// memory read: (count - 1) and its complement checksum (single-byte rule).
//
// count must be in [1, MaxTransferSize].
func CountFrame(count int) ([]byte, error) {
	if count < 1 || count > MaxTransferSize {
		return nil, fmt.Errorf("read count must be 1-%d bytes, got %d", MaxTransferSize, count)
	}

	n := byte(count - 1)
	return []byte{n, Checksum([]byte{n})}, nil
}

// EraseCodeFrame encodes a reserved 16-bit erase code as big-endian bytes
// followed by their XOR checksum. The page-count header of a page erase uses
// the same three-byte shape.
func EraseCodeFrame(code uint16) []byte {
	frame := make([]byte, 3)
	binary.BigEndian.PutUint16(frame, code)
	frame[2] = Checksum(frame[:2])
	return frame
}

// BankEraseCode returns the reserved code that selects a single-bank erase.
// bank must be 1 or 2.
func BankEraseCode(bank int) (uint16, error) {
	if bank != 1 && bank != 2 {
		return 0, fmt.Errorf("bank number must be 1 or 2, got %d", bank)
	}
	return eraseCodeBankBase + uint16(bank), nil
}

// PageListFrame packs page indices for a page erase: each index as a
// big-endian 16-bit value, followed by one XOR checksum over the entire
// packed list.
//
// len(pages) must be in [1, MaxErasePages].
func PageListFrame(pages []uint16) ([]byte, error) {
	if len(pages) < 1 || len(pages) > MaxErasePages {
		return nil, fmt.Errorf("page count must be 1-%d, got %d", MaxErasePages, len(pages))
	}

	frame := make([]byte, 0, 2*len(pages)+1)
	for _, page := range pages {
		frame = append(frame, byte(page>>8), byte(page))
	}
	frame = append(frame, Checksum(frame))
	return frame, nil
}
