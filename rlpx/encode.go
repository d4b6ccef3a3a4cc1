package rlpx

// EncodeUint encodes a non-negative integer as a canonical RLP byte string:
// no leading zero bytes, the empty string for zero. Used to derive a
// receipts-trie key from a transaction index.
func EncodeUint(v uint64) []byte {
	if v == 0 {
		return EncodeBytes(nil)
	}
	var buf [8]byte
	i := 8
	for v > 0 {
		i--
		buf[i] = byte(v)
		v >>= 8
	}
	return EncodeBytes(buf[i:])
}

// EncodeBytes encodes a byte string per canonical RLP: a single byte below
// 0x80 encodes itself, short strings get an 0x80+len prefix, long strings
// get a length-of-length prefix.
func EncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	if len(b) <= 55 {
		out := make([]byte, 0, 1+len(b))
		out = append(out, byte(0x80+len(b)))
		return append(out, b...)
	}
	lengthBytes := bigEndianMinimal(uint64(len(b)))
	out := make([]byte, 0, 1+len(lengthBytes)+len(b))
	out = append(out, byte(0xb7+len(lengthBytes)))
	out = append(out, lengthBytes...)
	return append(out, b...)
}

// EncodeList wraps already RLP-encoded items in a canonical list prefix.
func EncodeList(items [][]byte) []byte {
	var content []byte
	for _, it := range items {
		content = append(content, it...)
	}
	if len(content) <= 55 {
		out := make([]byte, 0, 1+len(content))
		out = append(out, byte(0xc0+len(content)))
		return append(out, content...)
	}
	lengthBytes := bigEndianMinimal(uint64(len(content)))
	out := make([]byte, 0, 1+len(lengthBytes)+len(content))
	out = append(out, byte(0xf7+len(lengthBytes)))
	out = append(out, lengthBytes...)
	return append(out, content...)
}

func bigEndianMinimal(v uint64) []byte {
	var buf [8]byte
	i := 8
	for v > 0 {
		i--
		buf[i] = byte(v)
		v >>= 8
	}
	if i == 8 {
		return []byte{0}
	}
	return buf[i:]
}
