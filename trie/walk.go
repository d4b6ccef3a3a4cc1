package trie

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethlc/verify/rlpx"
	"github.com/ethlc/verify/types"
)

// walkResult is the outcome of walking a proof to the end of the key path:
// either the RLP-encoded value at the leaf (Found), or a cryptographic
// demonstration that no such leaf exists (!Found).
type walkResult struct {
	Found bool
	Value []byte
}

// walk verifies an ordered list of RLP-encoded MPT nodes against root,
// following key (already expanded to nibbles) one node at a time. Each node
// must hash to the hash the parent referenced (root, for the first node),
// or equal the reference verbatim when the reference is a byte string
// shorter than 32 bytes (see referenceMatches). Children embedded in the
// parent as an RLP list are not decoded: they are rejected with
// ErrNodeRlpInvalid.
func walk(root types.Hash32, key []byte, proof [][]byte) (walkResult, error) {
	if len(proof) == 0 {
		return walkResult{}, types.ErrProofIncomplete.Withf("empty proof")
	}

	expected := root[:]
	nibbles := key
	var depth int

	for i, nodeBytes := range proof {
		if !referenceMatches(expected, nodeBytes) {
			if depth == 0 {
				return walkResult{}, types.ErrStateRootMismatch.Withf("node 0 does not hash to the trusted root")
			}
			return walkResult{}, types.ErrNodeHashMismatch.Withf("depth %d: node hash mismatch", depth)
		}

		node, err := rlpx.Decode(nodeBytes)
		if err != nil {
			return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: %v", depth, err)
		}
		if !node.IsList() {
			return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: expected list node", depth)
		}

		switch len(node.List) {
		case 17:
			if len(nibbles) == 0 {
				value := node.List[16].Data
				if len(value) == 0 {
					return walkResult{Found: false}, nil
				}
				return walkResult{Found: true, Value: value}, nil
			}
			child := node.List[nibbles[0]]
			if child.IsList() {
				return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: embedded list children not supported", depth)
			}
			if len(child.Data) == 0 {
				return walkResult{Found: false}, nil
			}
			expected, nibbles, depth = child.Data, nibbles[1:], depth+1
			if i == len(proof)-1 {
				return walkResult{}, types.ErrProofIncomplete.Withf("branch child referenced but no further node supplied")
			}
			continue

		case 2:
			pathItem := node.List[0]
			isLeaf, pathNibbles, err := decodeCompactPath(pathItem.Data)
			if err != nil {
				return walkResult{}, err
			}
			if !hasPrefix(nibbles, pathNibbles) {
				return walkResult{Found: false}, nil
			}
			remaining := nibbles[len(pathNibbles):]

			if isLeaf {
				if len(remaining) != 0 {
					return walkResult{}, types.ErrPathMismatch.Withf("depth %d: leaf node left unconsumed nibbles", depth)
				}
				if node.List[1].IsList() {
					return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: leaf value must be a string", depth)
				}
				return walkResult{Found: true, Value: node.List[1].Data}, nil
			}

			// Extension node: continue into the referenced child.
			if node.List[1].IsList() {
				return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: embedded list children not supported", depth)
			}
			expected, nibbles, depth = node.List[1].Data, remaining, depth+1
			if i == len(proof)-1 {
				return walkResult{}, types.ErrProofIncomplete.Withf("extension child referenced but no further node supplied")
			}
			continue

		default:
			return walkResult{}, types.ErrNodeRlpInvalid.Withf("depth %d: node has %d list elements", depth, len(node.List))
		}
	}

	return walkResult{}, types.ErrProofIncomplete.Withf("proof exhausted before reaching a leaf or branch value")
}

// referenceMatches checks whether nodeBytes is the node referenced by ref:
// ref is either the 32-byte keccak256 hash of nodeBytes, or — for nodes
// whose RLP encoding is itself shorter than 32 bytes — ref is nodeBytes
// verbatim (the "embedded node" case the MPT spec allows).
func referenceMatches(ref []byte, nodeBytes []byte) bool {
	if len(ref) == 32 {
		digest := crypto.Keccak256(nodeBytes)
		matched := true
		for i := range digest {
			if digest[i] != ref[i] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	if len(nodeBytes) < 32 {
		return bytesEqual(ref, nodeBytes)
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
