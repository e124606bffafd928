package protocol

// Checksum computes the verification byte for a frame payload.
//
// The wire format uses two rules side by side: a single-byte payload is
// verified by its bitwise complement, while longer payloads carry the running
// XOR of all bytes. Both rules are required for interoperability and must not
// be unified.
func Checksum(data []byte) byte {
	if len(data) == 0 {
		return 0
	}
	if len(data) == 1 {
		return ^data[0]
	}
	cs := data[0]
	for _, b := range data[1:] {
		cs ^= b
	}
	return cs
}
