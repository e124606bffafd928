package protocol

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNack(t *testing.T) {
	err := &NackError{Op: "write memory"}
	if !IsNack(err) {
		t.Error("IsNack() = false for a NackError")
	}

	wrapped := fmt.Errorf("flash row 3: %w", err)
	if !IsNack(wrapped) {
		t.Error("IsNack() = false for a wrapped NackError")
	}

	if IsNack(errors.New("something else")) {
		t.Error("IsNack() = true for an unrelated error")
	}
	if IsNack(&ViolationError{Op: "go", Status: 0xAA}) {
		t.Error("IsNack() = true for a ViolationError")
	}
}

func TestIsViolation(t *testing.T) {
	err := &ViolationError{Op: "read memory", Status: 0x00}
	if !IsViolation(err) {
		t.Error("IsViolation() = false for a ViolationError")
	}

	wrapped := fmt.Errorf("session: %w", err)
	if !IsViolation(wrapped) {
		t.Error("IsViolation() = false for a wrapped ViolationError")
	}

	if IsViolation(&NackError{Op: "erase all"}) {
		t.Error("IsViolation() = true for a NackError")
	}
}

func TestErrorMessages(t *testing.T) {
	nack := &NackError{Op: "erase pages"}
	if nack.Error() != "erase pages: device reported NACK" {
		t.Errorf("unexpected NackError message: %q", nack.Error())
	}

	violation := &ViolationError{Op: "go", Status: 0x5A}
	if violation.Error() != "go: protocol violation: illegal status byte 0x5A" {
		t.Errorf("unexpected ViolationError message: %q", violation.Error())
	}
}
