package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestCommandFrame(t *testing.T) {
	// Expected complement bytes as they appear on the wire.
	tests := []struct {
		opcode     byte
		complement byte
	}{
		{CmdGet, 0xFF},
		{CmdGetVersion, 0xFE},
		{CmdGetID, 0xFD},
		{CmdReadMemory, 0xEE},
		{CmdGo, 0xDE},
		{CmdWriteMemory, 0xCE},
		{CmdWriteMemoryExt, 0xCD},
		{CmdErase, 0xBB},
		{CmdEraseExt, 0xBA},
	}

	for _, tt := range tests {
		frame := CommandFrame(tt.opcode)
		want := []byte{tt.opcode, tt.complement}
		if !bytes.Equal(frame, want) {
			t.Errorf("CommandFrame(0x%02X) = % 02X, want % 02X", tt.opcode, frame, want)
		}
	}
}

func TestAddressFrame(t *testing.T) {
	tests := []struct {
		name string
		addr uint32
	}{
		{"zero", 0x00000000},
		{"flash base", 0x08000000},
		{"option bytes", 0x1FFFF800},
		{"all ones", 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := AddressFrame(tt.addr)
			if len(frame) != 5 {
				t.Fatalf("AddressFrame() length = %d, want 5", len(frame))
			}
			if got := binary.BigEndian.Uint32(frame[:4]); got != tt.addr {
				t.Errorf("address round-trip = 0x%08X, want 0x%08X", got, tt.addr)
			}
			if got := frame[0] ^ frame[1] ^ frame[2] ^ frame[3]; frame[4] != got {
				t.Errorf("checksum byte = 0x%02X, want 0x%02X", frame[4], got)
			}
		})
	}
}

func TestDataFrame(t *testing.T) {
	data := []byte{0xAD, 0xAF, 0x00, 0xAD}
	frame, err := DataFrame(data)
	if err != nil {
		t.Fatalf("DataFrame() error: %v", err)
	}

	if frame[0] != byte(len(data)-1) {
		t.Errorf("length byte = 0x%02X, want 0x%02X", frame[0], len(data)-1)
	}
	if !bytes.Equal(frame[1:len(frame)-1], data) {
		t.Errorf("data bytes = % 02X, want % 02X", frame[1:len(frame)-1], data)
	}

	var xor byte
	for _, b := range frame[:len(frame)-1] {
		xor ^= b
	}
	if frame[len(frame)-1] != xor {
		t.Errorf("checksum byte = 0x%02X, want 0x%02X", frame[len(frame)-1], xor)
	}
}

func TestDataFrameBounds(t *testing.T) {
	if _, err := DataFrame(nil); err == nil {
		t.Error("DataFrame(nil) should fail")
	}
	if _, err := DataFrame(make([]byte, MaxTransferSize+1)); err == nil {
		t.Error("DataFrame() with 257 bytes should fail")
	}
	if _, err := DataFrame(make([]byte, MaxTransferSize)); err != nil {
		t.Errorf("DataFrame() with 256 bytes should succeed, got %v", err)
	}
}

func TestCountFrame(t *testing.T) {
	frame, err := CountFrame(4)
	if err != nil {
		t.Fatalf("CountFrame() error: %v", err)
	}
	// (count - 1) with its complement checksum: the single-byte rule.
	want := []byte{0x03, 0xFC}
	if !bytes.Equal(frame, want) {
		t.Errorf("CountFrame(4) = % 02X, want % 02X", frame, want)
	}

	for _, count := range []int{0, -1, MaxTransferSize + 1} {
		if _, err := CountFrame(count); err == nil {
			t.Errorf("CountFrame(%d) should fail", count)
		}
	}
	if _, err := CountFrame(MaxTransferSize); err != nil {
		t.Errorf("CountFrame(256) should succeed, got %v", err)
	}
}

func TestEraseCodeFrame(t *testing.T) {
	tests := []struct {
		name string
		code uint16
		want []byte
	}{
		{"erase all", EraseCodeAll, []byte{0xFF, 0xFF, 0x00}},
		{"bank 1", 0xFFFD, []byte{0xFF, 0xFD, 0x02}},
		{"page count header", 0x0001, []byte{0x00, 0x01, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := EraseCodeFrame(tt.code)
			if !bytes.Equal(frame, tt.want) {
				t.Errorf("EraseCodeFrame(0x%04X) = % 02X, want % 02X", tt.code, frame, tt.want)
			}
		})
	}
}

func TestBankEraseCode(t *testing.T) {
	tests := []struct {
		bank    int
		code    uint16
		wantErr bool
	}{
		{1, 0xFFFD, false},
		{2, 0xFFFE, false},
		{0, 0, true},
		{3, 0, true},
		{-1, 0, true},
	}

	for _, tt := range tests {
		code, err := BankEraseCode(tt.bank)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BankEraseCode(%d) should fail", tt.bank)
			}
			continue
		}
		if err != nil {
			t.Errorf("BankEraseCode(%d) error: %v", tt.bank, err)
			continue
		}
		if code != tt.code {
			t.Errorf("BankEraseCode(%d) = 0x%04X, want 0x%04X", tt.bank, code, tt.code)
		}
	}
}

func TestPageListFrame(t *testing.T) {
	frame, err := PageListFrame([]uint16{0x0000, 0x0001, 0x0102})
	if err != nil {
		t.Fatalf("PageListFrame() error: %v", err)
	}

	// Big-endian 16-bit indices followed by the XOR of all packed bytes.
	want := []byte{0x00, 0x00, 0x00, 0x01, 0x01, 0x02, 0x02}
	if !bytes.Equal(frame, want) {
		t.Errorf("PageListFrame() = % 02X, want % 02X", frame, want)
	}
}

func TestPageListFrameBounds(t *testing.T) {
	if _, err := PageListFrame(nil); err == nil {
		t.Error("PageListFrame(nil) should fail")
	}
	if _, err := PageListFrame(make([]uint16, MaxErasePages+1)); err == nil {
		t.Error("PageListFrame() with 129 pages should fail")
	}
	if _, err := PageListFrame(make([]uint16, MaxErasePages)); err != nil {
		t.Errorf("PageListFrame() with 128 pages should succeed, got %v", err)
	}
}
