// Command lcverify is a minimal demonstration driver for the verification
// core: it bootstraps a light client from a bootstrap JSON file, applies
// zero or more update JSON files in order, and optionally checks an
// eth_getProof response against the resulting execution state root.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ethlc/verify/api"
	"github.com/ethlc/verify/lightclient"
	"github.com/ethlc/verify/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lcverify:", err)
		os.Exit(1)
	}
}

func run() error {
	bootstrapPath := flag.String("bootstrap", "", "path to a beacon-API light_client/bootstrap response")
	genesisRootHex := flag.String("genesis-root", "", "0x-prefixed genesis_validators_root")
	proofPath := flag.String("proof", "", "path to an eth_getProof response to verify against the latest execution state root (after -updates)")
	address := flag.String("address", "", "0x-prefixed account address to verify within -proof")
	updatesFlag := flag.String("updates", "", "comma-separated paths to light-client update JSON files, applied in order")
	currentSlot := flag.Uint64("current-slot", 0, "caller's current-slot estimate for update freshness checks")
	flag.Parse()

	if *bootstrapPath == "" || *genesisRootHex == "" {
		return errors.New("both -bootstrap and -genesis-root are required")
	}

	bootstrapJSON, err := os.ReadFile(*bootstrapPath)
	if err != nil {
		return errors.Wrap(err, "reading bootstrap file")
	}
	genesisRoot, err := types.ParseHash32(*genesisRootHex)
	if err != nil {
		return errors.Wrap(err, "parsing genesis root")
	}

	client, err := lightclient.Bootstrap(bootstrapJSON, [32]byte(genesisRoot))
	if err != nil {
		return errors.Wrap(err, "bootstrap")
	}
	snapshot := client.View()
	fmt.Printf("bootstrapped: finalized_slot=%d optimistic_slot=%d\n", snapshot.FinalizedHeader.Slot, snapshot.OptimisticHeader.Slot)

	for _, path := range splitNonEmpty(*updatesFlag) {
		updateJSON, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading update file %s", path)
		}
		result, err := client.IngestUpdate(updateJSON, *currentSlot)
		if err != nil {
			fmt.Printf("update %s rejected: %v\n", path, err)
			continue
		}
		fmt.Printf("update %s applied: advanced=%v finalized_slot=%d optimistic_slot=%d participation=%d\n",
			path, result.Advanced, result.FinalizedSlot, result.OptimisticSlot, result.Participation)
	}

	if *proofPath != "" {
		if *address == "" {
			return errors.New("-address is required alongside -proof")
		}
		proofJSON, err := os.ReadFile(*proofPath)
		if err != nil {
			return errors.Wrap(err, "reading proof file")
		}
		proof, err := api.ParseEthGetProof(proofJSON)
		if err != nil {
			return errors.Wrap(err, "parsing eth_getProof response")
		}
		record, err := client.VerifyAccountProofAtInternalRoot(*address, proof.AccountProof)
		if err != nil {
			return errors.Wrap(err, "verifying account proof")
		}
		fmt.Printf("account %s: nonce=%d is_contract=%v code_hash=0x%x\n", *address, record.Nonce, record.IsContract, record.CodeHash)
	}
	return nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
