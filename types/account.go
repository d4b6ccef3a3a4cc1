package types

import "github.com/holiman/uint256"

// AccountRecord is the record produced by verifying an account proof
// against a state root: nonce, balance, storage root, code hash, and
// whether the account carries code.
type AccountRecord struct {
	Nonce              uint64
	Balance            *uint256.Int
	StorageRoot        Hash32
	CodeHash           Hash32
	IsContract         bool
	ProofNodesVerified uint32
	StateRoot          Hash32
}

// EmptyCodeHash is keccak256 of the empty byte string — the code hash
// carried by externally-owned accounts.
var EmptyCodeHash = Hash32{
	0xc5, 0xd2, 0x46, 0x01, 0x86, 0xf7, 0x23, 0x3c, 0x92, 0x7e, 0x7d, 0xb2, 0xdc, 0xc7,
	0x03, 0xc0, 0xe5, 0x00, 0xb6, 0x53, 0xca, 0x82, 0x27, 0x3b, 0x7b, 0xfa, 0xd8, 0x04,
	0x5d, 0x85, 0xa4, 0x70,
}

// EmptyStorageRoot is the root of an empty Merkle-Patricia trie — the
// storage root carried by accounts with no storage.
var EmptyStorageRoot = Hash32{
	0x56, 0xe8, 0x1f, 0x17, 0x1b, 0xcc, 0x55, 0xa6, 0xff, 0x83, 0x45, 0xe6, 0x92, 0xc0,
	0xf8, 0x6e, 0x5b, 0x48, 0xe0, 0x1b, 0x99, 0x6c, 0xad, 0xc0, 0x01, 0x62, 0x2f, 0xb5,
	0xe3, 0x63, 0xb4, 0x21,
}

// AbsentAccount is the sentinel AccountRecord returned when a proof
// cryptographically demonstrates the account does not exist: zero
// balance/nonce, empty code hash and storage root.
func AbsentAccount(stateRoot Hash32, nodesVerified uint32) AccountRecord {
	return AccountRecord{
		Balance:            new(uint256.Int),
		StorageRoot:        EmptyStorageRoot,
		CodeHash:           EmptyCodeHash,
		IsContract:         false,
		ProofNodesVerified: nodesVerified,
		StateRoot:          stateRoot,
	}
}

// AccountProof is the eth_getProof accountProof: an ordered list of
// RLP-encoded Merkle-Patricia trie nodes proving an address's account state
// (or its absence) against a state root.
type AccountProof struct {
	Address Address20
	Proof   [][]byte
}

// StorageProof is one eth_getProof storageProof entry: the slot key and the
// ordered list of RLP-encoded trie nodes proving its value (or absence)
// against an account's storage root.
type StorageProof struct {
	Key   Hash32
	Proof [][]byte
}

// EthGetProofResponse mirrors the eth_getProof JSON-RPC response shape.
// Only accountProof/storageProof are trusted; claimed balance/nonce/storage
// values are ignored for correctness per spec.md section 4.5's policy.
type EthGetProofResponse struct {
	Address      Address20
	AccountProof [][]byte
	Balance      Hash32 // claimed, not trusted
	CodeHash     Hash32 // claimed, not trusted
	Nonce        uint64 // claimed, not trusted
	StorageHash  Hash32 // claimed, not trusted
	StorageProof []EthGetProofStorageEntry
}

// EthGetProofStorageEntry is one entry of eth_getProof's storageProof array.
type EthGetProofStorageEntry struct {
	Key   Hash32
	Value Hash32 // claimed, not trusted
	Proof [][]byte
}

// Log is a single event log entry emitted by a transaction.
type Log struct {
	Address Address20
	Topics  []Hash32
	Data    []byte
}

// TransactionReceipt is a verified transaction receipt (supplemental C6).
type TransactionReceipt struct {
	Status            uint8
	CumulativeGasUsed uint64
	LogsBloom         [256]byte
	Logs              []Log
}

// ReceiptProof proves one transaction receipt's inclusion in the receipts
// trie, keyed by the RLP-encoded (unhashed) transaction index.
type ReceiptProof struct {
	TxIndex uint64
	Proof   [][]byte
}
