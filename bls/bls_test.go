package bls

import (
	"testing"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/ethlc/verify/types"
)

func testKeypair(t *testing.T, seed byte) (*PublicKey, *blst.SecretKey) {
	t.Helper()
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	sk := blst.KeyGen(ikm)
	pkAffine := new(blst.P1Affine).From(sk)
	var raw types.BLSPubKey
	copy(raw[:], pkAffine.Compress())
	pub, err := ParsePublicKey(raw)
	if err != nil {
		t.Fatalf("unexpected error parsing generated public key: %v", err)
	}
	return pub, sk
}

func signMessage(sk *blst.SecretKey, message []byte) types.BLSSignature {
	sigAffine := new(blst.P2Affine).Sign(sk, message, []byte(dst))
	var raw types.BLSSignature
	copy(raw[:], sigAffine.Compress())
	return raw
}

func TestVerifyAggregateSingleSigner(t *testing.T) {
	pub, sk := testKeypair(t, 0x01)
	message := []byte("sync committee signing root")

	sig, err := ParseSignature(signMessage(sk, message))
	if err != nil {
		t.Fatalf("unexpected error parsing signature: %v", err)
	}
	if !VerifyAggregate(pub, message, sig) {
		t.Fatalf("expected signature to verify")
	}
}

func TestVerifyAggregateWrongMessageFails(t *testing.T) {
	pub, sk := testKeypair(t, 0x02)
	sig, err := ParseSignature(signMessage(sk, []byte("correct message")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if VerifyAggregate(pub, []byte("wrong message"), sig) {
		t.Fatalf("expected verification to fail for mismatched message")
	}
}

func TestAggregatePublicKeysMatchesCommitteeAggregate(t *testing.T) {
	pub1, _ := testKeypair(t, 0x03)
	pub2, _ := testKeypair(t, 0x04)

	agg, err := AggregatePublicKeys([]*PublicKey{pub1, pub2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agg2, err := AggregatePublicKeys([]*PublicKey{pub2, pub1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !agg.Equal(agg2) {
		t.Fatalf("aggregate should be order-independent")
	}
}

func TestAggregatePublicKeysEmptySet(t *testing.T) {
	if _, err := AggregatePublicKeys(nil); err != types.ErrInsufficientParticipation {
		t.Fatalf("expected ErrInsufficientParticipation, got %v", err)
	}
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	var raw types.BLSPubKey
	for i := range raw {
		raw[i] = 0xff
	}
	if _, err := ParsePublicKey(raw); err == nil {
		t.Fatalf("expected error for invalid encoding")
	}
}

func TestParseSignatureRejectsGarbage(t *testing.T) {
	var raw types.BLSSignature
	for i := range raw {
		raw[i] = 0xff
	}
	if _, err := ParseSignature(raw); err == nil {
		t.Fatalf("expected error for invalid encoding")
	}
}
