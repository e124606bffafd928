package protocol

// Status bytes the device emits after every frame. Wire-exact values per
// AN4221; any other byte observed in the handshake is a protocol violation.
const (
	// StatusBusy means the device is still working; poll again
	StatusBusy = 0x76

	// StatusAck means the device accepted the frame
	StatusAck = 0x79

	// StatusNack means the device rejected the frame
	StatusNack = 0x1F
)

// Command opcodes. Each opcode is transmitted together with its bitwise
// complement as a verification byte.
const (
	// CmdGet queries the supported command list and protocol version
	CmdGet = 0x00

	// CmdGetVersion queries the protocol version byte
	CmdGetVersion = 0x01

	// CmdGetID queries the 16-bit chip product identifier
	CmdGetID = 0x02

	// CmdReadMemory reads up to MaxTransferSize bytes from an address
	CmdReadMemory = 0x11

	// CmdGo branches execution to an address and leaves the bootloader
	CmdGo = 0x21

	// CmdWriteMemory writes up to MaxTransferSize bytes to an address
	CmdWriteMemory = 0x31

	// CmdWriteMemoryExt is the alternate write opcode newer devices advertise
	CmdWriteMemoryExt = 0x32

	// CmdErase erases flash pages, a bank, or the whole memory
	CmdErase = 0x44

	// CmdEraseExt is the alternate erase opcode newer devices advertise
	CmdEraseExt = 0x45
)

// Reserved 16-bit special-erase codes.
const (
	// EraseCodeAll selects a full memory erase (all bits set)
	EraseCodeAll = 0xFFFF

	// eraseCodeBankBase plus the bank number selects a single-bank erase
	eraseCodeBankBase = 0xFFFC
)

// Protocol frame-size limits.
const (
	// MaxTransferSize is the largest read or write the protocol can express:
	// the length field encodes (n - 1) in a single byte.
	MaxTransferSize = 256

	// MaxErasePages is the largest number of page indices a single page-erase
	// frame can carry.
	MaxErasePages = 128
)
