package bootloader

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/moffa90/go-stmboot/protocol"
)

// Session is a live connection to a device running its system bootloader.
// It caches the capability set and protocol version queried when the session
// is opened, and lazily queries the chip identifier on first use.
//
// A Session is NOT safe for concurrent use: every command is a multi-frame
// exchange over one shared bus, and interleaving two commands would corrupt
// both. Serialize all calls, or guard the session with a mutex.
type Session struct {
	transport Transport
	config    Config

	supported []byte // opcode bytes the device advertised at open
	version   byte

	chipID        uint16
	chipIDQueried bool
}

// Open creates a session over the given transport and performs the startup
// exchange: the capability query followed by the protocol version query.
//
// Example:
//
//	dev, err := i2cdev.Open("", i2cdev.DefaultAddr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sess, err := bootloader.Open(context.Background(), dev)
func Open(ctx context.Context, transport Transport, opts ...Option) (*Session, error) {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		transport: transport,
		config:    cfg,
	}

	supported, err := s.getSupportedCommands(ctx)
	if err != nil {
		return nil, fmt.Errorf("query supported commands: %w", err)
	}
	s.supported = supported

	version, err := s.getVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("query protocol version: %w", err)
	}
	s.version = version

	s.logInfo("session opened",
		"version", fmt.Sprintf("0x%02X", version),
		"commands", fmt.Sprintf("% 02X", supported),
	)

	return s, nil
}

// SupportedCommands returns a copy of the opcode bytes the device advertised
// when the session was opened.
func (s *Session) SupportedCommands() []byte {
	return append([]byte(nil), s.supported...)
}

// ProtocolVersion returns the bootloader protocol version byte queried when
// the session was opened.
func (s *Session) ProtocolVersion() byte {
	return s.version
}

// Supports reports whether the device advertised the given command opcode.
func (s *Session) Supports(opcode byte) bool {
	for _, c := range s.supported {
		if c == opcode {
			return true
		}
	}
	return false
}

// ChipID returns the 16-bit chip product identifier. The device is queried on
// first use; later calls return the cached value without bus traffic.
func (s *Session) ChipID(ctx context.Context) (uint16, error) {
	if s.chipIDQueried {
		return s.chipID, nil
	}

	const op = "get chip id"
	if err := s.sendCommand(ctx, op, protocol.CmdGetID); err != nil {
		return 0, err
	}

	// 3-byte response: an echo byte, then the identifier big-endian.
	var resp [3]byte
	if err := s.read(op, resp[:]); err != nil {
		return 0, err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return 0, err
	}

	s.chipID = binary.BigEndian.Uint16(resp[1:])
	s.chipIDQueried = true
	s.logDebug("chip id", "id", fmt.Sprintf("0x%04X", s.chipID))
	return s.chipID, nil
}

// ReadMemory reads count bytes starting at addr. count must be in
// [1, protocol.MaxTransferSize]; larger reads must be split by the caller.
//
// A rejection at the command or address step (for example a read from
// protected memory) is reported as a NackError.
func (s *Session) ReadMemory(ctx context.Context, addr uint32, count int) ([]byte, error) {
	const op = "read memory"

	countFrame, err := protocol.CountFrame(count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sendCommand(ctx, op, protocol.CmdReadMemory); err != nil {
		return nil, err
	}
	if err := s.write(op, protocol.AddressFrame(addr)); err != nil {
		return nil, err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return nil, err
	}
	if err := s.write(op, countFrame); err != nil {
		return nil, err
	}

	// Once the address was accepted the device always proceeds to the data
	// phase; a NACK here is drained from the wire but does not abort the read.
	if err := s.waitForAck(ctx, op); err != nil && !protocol.IsNack(err) {
		return nil, err
	}

	buf := make([]byte, count)
	if err := s.read(op, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteMemory writes data starting at addr. len(data) must be in
// [1, protocol.MaxTransferSize]; larger images must be split by the caller.
//
// The extended write opcode is used when the device advertises it, the legacy
// opcode otherwise.
func (s *Session) WriteMemory(ctx context.Context, addr uint32, data []byte) error {
	const op = "write memory"

	frame, err := protocol.DataFrame(data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	opcode := s.selectOpcode(protocol.CmdWriteMemory, protocol.CmdWriteMemoryExt)
	if err := s.sendCommand(ctx, op, opcode); err != nil {
		return err
	}
	if err := s.write(op, protocol.AddressFrame(addr)); err != nil {
		return err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return err
	}
	if err := s.write(op, frame); err != nil {
		return err
	}
	return s.waitForAck(ctx, op)
}

// EraseAll erases the device's entire program memory.
func (s *Session) EraseAll(ctx context.Context) error {
	return s.specialErase(ctx, "erase all", protocol.EraseCodeAll)
}

// EraseBank erases a single flash bank. bank must be 1 or 2.
func (s *Session) EraseBank(ctx context.Context, bank int) error {
	const op = "erase bank"

	code, err := protocol.BankEraseCode(bank)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.specialErase(ctx, op, code)
}

// ErasePages erases the flash pages with the given indices. A single frame
// carries at most protocol.MaxErasePages indices; more pages must be split
// across calls.
func (s *Session) ErasePages(ctx context.Context, pages []uint16) error {
	const op = "erase pages"

	listFrame, err := protocol.PageListFrame(pages)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	opcode := s.selectOpcode(protocol.CmdErase, protocol.CmdEraseExt)
	if err := s.sendCommand(ctx, op, opcode); err != nil {
		return err
	}

	// Page-count header: (count - 1) in the same 16-bit-plus-checksum shape
	// as the reserved erase codes.
	if err := s.write(op, protocol.EraseCodeFrame(uint16(len(pages)-1))); err != nil {
		return err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return err
	}
	if err := s.write(op, listFrame); err != nil {
		return err
	}
	return s.waitForAck(ctx, op)
}

// Go commands the device to branch to addr and resume execution there,
// conventionally the base of the application's vector table (the device
// branches through it to the reset handler). Once the branch is accepted the
// device usually stops responding on the bus; that silence is expected.
func (s *Session) Go(ctx context.Context, addr uint32) error {
	const op = "go"

	if err := s.sendCommand(ctx, op, protocol.CmdGo); err != nil {
		return err
	}
	if err := s.write(op, protocol.AddressFrame(addr)); err != nil {
		return err
	}
	return s.waitForAck(ctx, op)
}

// getSupportedCommands performs the capability query. The device requires two
// full GET rounds: the first round's single-byte response supplies the length,
// and only the second round's payload is authoritative. Observed behavior of
// the reference device; do not collapse into one round.
func (s *Session) getSupportedCommands(ctx context.Context) ([]byte, error) {
	const op = "get supported commands"

	if err := s.sendCommand(ctx, op, protocol.CmdGet); err != nil {
		return nil, err
	}
	var length [1]byte
	if err := s.read(op, length[:]); err != nil {
		return nil, err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return nil, err
	}

	if err := s.sendCommand(ctx, op, protocol.CmdGet); err != nil {
		return nil, err
	}
	resp := make([]byte, int(length[0])+2)
	if err := s.read(op, resp); err != nil {
		return nil, err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return nil, err
	}

	// The first two bytes echo the byte count and the protocol version;
	// the rest is the advertised opcode list.
	return resp[2:], nil
}

// getVersion performs the protocol version query.
func (s *Session) getVersion(ctx context.Context) (byte, error) {
	const op = "get version"

	if err := s.sendCommand(ctx, op, protocol.CmdGetVersion); err != nil {
		return 0, err
	}
	var version [1]byte
	if err := s.read(op, version[:]); err != nil {
		return 0, err
	}
	if err := s.waitForAck(ctx, op); err != nil {
		return 0, err
	}
	return version[0], nil
}

// selectOpcode picks the extended form of a command when the device advertises
// it and falls back to the legacy form otherwise. Every command with an
// extended/legacy pair goes through here.
func (s *Session) selectOpcode(legacy, extended byte) byte {
	if s.Supports(extended) {
		return extended
	}
	return legacy
}

// specialErase drives the exchange shared by the full and bank erases:
// command select, then one reserved-code payload naming what to erase.
func (s *Session) specialErase(ctx context.Context, op string, code uint16) error {
	opcode := s.selectOpcode(protocol.CmdErase, protocol.CmdEraseExt)
	if err := s.sendCommand(ctx, op, opcode); err != nil {
		return err
	}
	if err := s.write(op, protocol.EraseCodeFrame(code)); err != nil {
		return err
	}
	return s.waitForAck(ctx, op)
}

// sendCommand opens a command: it transmits the opcode with its complement
// byte and runs the acknowledge handshake. Every command begins here, and a
// failure short-circuits the command.
func (s *Session) sendCommand(ctx context.Context, op string, opcode byte) error {
	if err := s.write(op, protocol.CommandFrame(opcode)); err != nil {
		return err
	}
	return s.waitForAck(ctx, op)
}

// waitForAck polls the status byte until the device leaves BUSY. ACK returns
// nil, NACK a NackError, and any other byte a ViolationError. The loop has no
// internal bound (BUSY is the device's only "still working" signal) but honors
// context cancellation between polls.
func (s *Session) waitForAck(ctx context.Context, op string) error {
	var status [1]byte
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := s.transport.Read(status[:]); err != nil {
			return fmt.Errorf("%s: read status: %w", op, err)
		}
		if status[0] != protocol.StatusBusy {
			break
		}
		if s.config.PollDelay > 0 {
			time.Sleep(s.config.PollDelay)
		}
	}

	switch status[0] {
	case protocol.StatusAck:
		return nil
	case protocol.StatusNack:
		return &protocol.NackError{Op: op}
	default:
		return &protocol.ViolationError{Op: op, Status: status[0]}
	}
}

// write transmits one frame, applying the configured settle delay.
func (s *Session) write(op string, frame []byte) error {
	if err := s.transport.Write(frame); err != nil {
		return fmt.Errorf("%s: write frame: %w", op, err)
	}
	if s.config.CommandDelay > 0 {
		time.Sleep(s.config.CommandDelay)
	}
	return nil
}

// read fills buf from the device.
func (s *Session) read(op string, buf []byte) error {
	if err := s.transport.Read(buf); err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	return nil
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}
