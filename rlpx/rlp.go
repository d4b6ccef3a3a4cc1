// Package rlpx implements canonical RLP decoding for Merkle-Patricia trie
// nodes (spec.md C1). Decoding is strict: any non-canonical encoding
// (leading-zero lengths, oversized short-form prefixes, single bytes wrapped
// in a string prefix, trailing bytes) is rejected rather than tolerated,
// since a state-proof verifier that accepts non-canonical encodings accepts
// more than one byte string per semantic value and opens a proof-malleability
// hole.
package rlpx

import (
	"github.com/ethlc/verify/types"
)

// Item is a decoded RLP value: either a byte string (Data != nil, List ==
// nil) or a list of items (List != nil, Data == nil).
type Item struct {
	Data []byte
	List []Item
}

// IsList reports whether the item is a list rather than a string.
func (it Item) IsList() bool {
	return it.List != nil
}

// Decode parses a single canonical RLP item from buf and returns an error
// if any trailing bytes remain — every caller in this module decodes a
// complete, self-contained node.
func Decode(buf []byte) (Item, error) {
	item, rest, err := decodeItem(buf)
	if err != nil {
		return Item{}, err
	}
	if len(rest) != 0 {
		return Item{}, types.ErrRlpTrailingBytes
	}
	return item, nil
}

func decodeItem(buf []byte) (Item, []byte, error) {
	if len(buf) == 0 {
		return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("empty input")
	}
	prefix := buf[0]

	switch {
	case prefix < 0x80:
		// Single byte, encodes itself; using a string prefix for this value
		// would be non-canonical, so there is nothing further to validate.
		return Item{Data: buf[0:1]}, buf[1:], nil

	case prefix <= 0xb7:
		length := int(prefix - 0x80)
		if len(buf) < 1+length {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("short string: buffer too small")
		}
		content := buf[1 : 1+length]
		if length == 1 && content[0] < 0x80 {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("single byte below 0x80 must not use string prefix")
		}
		return Item{Data: content}, buf[1+length:], nil

	case prefix <= 0xbf:
		lenOfLen := int(prefix - 0xb7)
		if len(buf) < 1+lenOfLen {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long string: buffer too small for length field")
		}
		lengthBytes := buf[1 : 1+lenOfLen]
		if lengthBytes[0] == 0 {
			return Item{}, nil, types.ErrRlpLengthLeadingZero
		}
		length := decodeBigEndianLength(lengthBytes)
		if length < 56 {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long string length %d should use short form", length)
		}
		start := 1 + lenOfLen
		if len(buf) < start+length {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long string: buffer too small for content")
		}
		return Item{Data: buf[start : start+length]}, buf[start+length:], nil

	case prefix <= 0xf7:
		length := int(prefix - 0xc0)
		if len(buf) < 1+length {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("short list: buffer too small")
		}
		items, err := decodeList(buf[1 : 1+length])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{List: items}, buf[1+length:], nil

	default:
		lenOfLen := int(prefix - 0xf7)
		if len(buf) < 1+lenOfLen {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long list: buffer too small for length field")
		}
		lengthBytes := buf[1 : 1+lenOfLen]
		if lengthBytes[0] == 0 {
			return Item{}, nil, types.ErrRlpLengthLeadingZero
		}
		length := decodeBigEndianLength(lengthBytes)
		if length < 56 {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long list length %d should use short form", length)
		}
		start := 1 + lenOfLen
		if len(buf) < start+length {
			return Item{}, nil, types.ErrRlpInvalidPrefix.Withf("long list: buffer too small for content")
		}
		items, err := decodeList(buf[start : start+length])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{List: items}, buf[start+length:], nil
	}
}

func decodeList(buf []byte) ([]Item, error) {
	items := []Item{}
	for len(buf) > 0 {
		item, rest, err := decodeItem(buf)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		buf = rest
	}
	return items, nil
}

func decodeBigEndianLength(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}
