package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ethlc/verify/types"
)

type wireStorageProofEntry struct {
	Key   string   `json:"key"`
	Value string   `json:"value"`
	Proof []string `json:"proof"`
}

type wireEthGetProof struct {
	Address      string                  `json:"address"`
	AccountProof []string                `json:"accountProof"`
	Balance      string                  `json:"balance"`
	CodeHash     string                  `json:"codeHash"`
	Nonce        string                  `json:"nonce"`
	StorageHash  string                  `json:"storageHash"`
	StorageProof []wireStorageProofEntry `json:"storageProof"`
}

// ParseEthGetProof decodes an eth_getProof JSON-RPC result. Unlike the
// beacon API, execution JSON-RPC encodes integers as 0x-prefixed hex
// quantities rather than decimal strings.
func ParseEthGetProof(body []byte) (*types.EthGetProofResponse, error) {
	var wire wireEthGetProof
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, wrapJSONErr("eth_getProof", err)
	}

	address, err := types.ParseAddress20(wire.Address)
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.address", err)
	}

	accountProof, err := decodeHexList(wire.AccountProof)
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.accountProof", err)
	}

	balance, err := decodeHexQuantityPadded(wire.Balance)
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.balance", err)
	}
	codeHash, err := types.ParseHash32(orZeroHash(wire.CodeHash))
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.codeHash", err)
	}
	nonce, err := decodeHexQuantityUint64(wire.Nonce)
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.nonce", err)
	}
	storageHash, err := types.ParseHash32(orZeroHash(wire.StorageHash))
	if err != nil {
		return nil, wrapJSONErr("eth_getProof.storageHash", err)
	}

	entries := make([]types.EthGetProofStorageEntry, len(wire.StorageProof))
	for i, e := range wire.StorageProof {
		key, err := types.ParseHash32(e.Key)
		if err != nil {
			return nil, wrapJSONErr("eth_getProof.storageProof.key", err)
		}
		value, err := decodeHexQuantityPadded(e.Value)
		if err != nil {
			return nil, wrapJSONErr("eth_getProof.storageProof.value", err)
		}
		proof, err := decodeHexList(e.Proof)
		if err != nil {
			return nil, wrapJSONErr("eth_getProof.storageProof.proof", err)
		}
		entries[i] = types.EthGetProofStorageEntry{Key: key, Value: types.Hash32(value), Proof: proof}
	}

	return &types.EthGetProofResponse{
		Address:      address,
		AccountProof: accountProof,
		Balance:      types.Hash32(balance),
		CodeHash:     codeHash,
		Nonce:        nonce,
		StorageHash:  storageHash,
		StorageProof: entries,
	}, nil
}

func orZeroHash(s string) string {
	if s == "" {
		return "0x" + strings.Repeat("00", 32)
	}
	return s
}

func decodeHexList(raw []string) ([][]byte, error) {
	out := make([][]byte, len(raw))
	for i, s := range raw {
		b, err := types.ParseHexBytes(s)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// decodeHexQuantityPadded decodes a "0x"-prefixed hex quantity (no leading
// zero per JSON-RPC convention, empty hex valid for zero) into a 32-byte
// big-endian word. A quantity's hex digit count is unconstrained — odd
// lengths (e.g. "0x16345785d8a0000") are the common case, not an error —
// so an odd digit count is left-padded with a zero nibble before byte
// decoding.
func decodeHexQuantityPadded(s string) ([32]byte, error) {
	var out [32]byte
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}
	b, err := types.ParseHexBytes(trimmed)
	if err != nil {
		return out, err
	}
	if len(b) > 32 {
		return out, types.ErrInvalidSlotOrdering.Withf("quantity exceeds 32 bytes")
	}
	copy(out[32-len(b):], b)
	return out, nil
}

func decodeHexQuantityUint64(s string) (uint64, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" {
		return 0, nil
	}
	return strconv.ParseUint(trimmed, 16, 64)
}
