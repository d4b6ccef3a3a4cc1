package trie

import (
	"github.com/ethlc/verify/rlpx"
	"github.com/ethlc/verify/types"
)

// VerifyReceiptProof walks a receipts-trie proof against a trusted receipts
// root. Unlike the account and storage tries, the receipts trie is keyed by
// the RLP encoding of the transaction's index within the block, not by its
// keccak256 hash (supplemental feature, not present in spec.md's Non-goals).
func VerifyReceiptProof(receiptsRoot types.Hash32, txIndex uint64, proof [][]byte) (types.TransactionReceipt, error) {
	key := rlpx.EncodeUint(txIndex)
	nibbles := bytesToNibbles(key)

	result, err := walk(receiptsRoot, nibbles, proof)
	if err != nil {
		return types.TransactionReceipt{}, err
	}
	if !result.Found {
		return types.TransactionReceipt{}, types.ErrProofIncomplete.Withf("no receipt at transaction index %d", txIndex)
	}
	return decodeReceiptFromRLP(result.Value)
}

// decodeReceiptFromRLP decodes a legacy/typed receipt body:
// [status, cumulativeGasUsed, logsBloom, logs].
func decodeReceiptFromRLP(raw []byte) (types.TransactionReceipt, error) {
	body := raw
	// EIP-2718 typed receipts prefix the RLP list with a single type byte.
	if len(body) > 0 && body[0] <= 0x7f {
		body = body[1:]
	}

	item, err := rlpx.Decode(body)
	if err != nil {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("%v", err)
	}
	if !item.IsList() || len(item.List) != 4 {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("expected 4-element receipt list")
	}

	statusBytes := item.List[0].Data
	var status uint8
	if len(statusBytes) == 1 && statusBytes[0] == 1 {
		status = 1
	} else if len(statusBytes) != 0 {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("post-Byzantium status must be 0 or 1")
	}

	gasUsed, err := decodeUint(item.List[1].Data)
	if err != nil {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("cumulativeGasUsed: %v", err)
	}

	bloomBytes := item.List[2].Data
	if len(bloomBytes) != 256 {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("logs bloom must be 256 bytes, got %d", len(bloomBytes))
	}
	var bloom [256]byte
	copy(bloom[:], bloomBytes)

	logsItem := item.List[3]
	if !logsItem.IsList() {
		return types.TransactionReceipt{}, types.ErrReceiptRlpInvalid.Withf("logs must be a list")
	}
	logs := make([]types.Log, 0, len(logsItem.List))
	for _, logItem := range logsItem.List {
		log, err := decodeLogFromRLP(logItem)
		if err != nil {
			return types.TransactionReceipt{}, err
		}
		logs = append(logs, log)
	}

	return types.TransactionReceipt{
		Status:            status,
		CumulativeGasUsed: gasUsed,
		LogsBloom:         bloom,
		Logs:              logs,
	}, nil
}

func decodeLogFromRLP(item rlpx.Item) (types.Log, error) {
	if !item.IsList() || len(item.List) != 3 {
		return types.Log{}, types.ErrReceiptRlpInvalid.Withf("log must be a 3-element list")
	}
	addrBytes := item.List[0].Data
	if len(addrBytes) != 20 {
		return types.Log{}, types.ErrReceiptRlpInvalid.Withf("log address must be 20 bytes")
	}
	var addr types.Address20
	copy(addr[:], addrBytes)

	topicsItem := item.List[1]
	if !topicsItem.IsList() {
		return types.Log{}, types.ErrReceiptRlpInvalid.Withf("log topics must be a list")
	}
	topics := make([]types.Hash32, 0, len(topicsItem.List))
	for _, t := range topicsItem.List {
		if len(t.Data) != 32 {
			return types.Log{}, types.ErrReceiptRlpInvalid.Withf("log topic must be 32 bytes")
		}
		var h types.Hash32
		copy(h[:], t.Data)
		topics = append(topics, h)
	}

	return types.Log{
		Address: addr,
		Topics:  topics,
		Data:    item.List[2].Data,
	}, nil
}
