// Package bls wraps BLS12-381 signature verification for the sync-committee
// protocol (spec.md C1) on top of supranational/blst. Every public key and
// signature is subgroup-checked before use; blst's own groupcheck flags are
// never relied upon silently, since a skipped check is a forged-signature
// vector.
package bls

import (
	blst "github.com/supranational/blst/bindings/go"

	"github.com/ethlc/verify/types"
)

// dst is the domain separation tag fixed by the sync-committee signing
// scheme: proof-of-possession variant, SHA-256, SSWU map, RO hash-to-curve.
const dst = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_"

// PublicKey is a subgroup-checked BLS12-381 G1 public key.
type PublicKey struct {
	inner *blst.P1Affine
}

// Signature is a subgroup-checked BLS12-381 G2 signature.
type Signature struct {
	inner *blst.P2Affine
}

// ParsePublicKey decompresses and subgroup-checks a 48-byte public key.
func ParsePublicKey(raw types.BLSPubKey) (*PublicKey, error) {
	p := new(blst.P1Affine).Uncompress(raw[:])
	if p == nil {
		return nil, types.ErrInvalidBlsEncoding.Withf("public key: bad compressed point")
	}
	if !p.KeyValidate() {
		return nil, types.ErrPubkeyNotInSubgroup
	}
	return &PublicKey{inner: p}, nil
}

// ParseSignature decompresses and subgroup-checks a 96-byte signature.
func ParseSignature(raw types.BLSSignature) (*Signature, error) {
	s := new(blst.P2Affine).Uncompress(raw[:])
	if s == nil {
		return nil, types.ErrInvalidBlsEncoding.Withf("signature: bad compressed point")
	}
	if !s.SigValidate(false) {
		return nil, types.ErrSignatureNotInSubgroup
	}
	return &Signature{inner: s}, nil
}

// AggregatePublicKeys sums the given subset of public keys into a single
// aggregate G1 point, matching the order-independence of BLS aggregation.
func AggregatePublicKeys(keys []*PublicKey) (*PublicKey, error) {
	if len(keys) == 0 {
		return nil, types.ErrInsufficientParticipation
	}
	points := make([]*blst.P1Affine, len(keys))
	for i, k := range keys {
		points[i] = k.inner
	}
	var agg blst.P1Aggregate
	if !agg.Aggregate(points, false) {
		return nil, types.ErrInvalidBlsEncoding.Withf("public key aggregation failed")
	}
	return &PublicKey{inner: agg.ToAffine()}, nil
}

// AggregateSignatures sums a set of signatures into a single aggregate G2
// point, used to build a FastAggregateVerify-style aggregate signature out
// of per-signer signatures over the same message.
func AggregateSignatures(sigs []*Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, types.ErrInsufficientParticipation
	}
	points := make([]*blst.P2Affine, len(sigs))
	for i, s := range sigs {
		points[i] = s.inner
	}
	var agg blst.P2Aggregate
	if !agg.Aggregate(points, false) {
		return nil, types.ErrInvalidBlsEncoding.Withf("signature aggregation failed")
	}
	return &Signature{inner: agg.ToAffine()}, nil
}

// Raw returns the compressed 48-byte encoding of the public key, used to
// check an aggregate against a committee's precomputed aggregate_pubkey.
func (p *PublicKey) Raw() types.BLSPubKey {
	var out types.BLSPubKey
	copy(out[:], p.inner.Compress())
	return out
}

// Equal reports whether two public keys encode the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return p.Raw() == other.Raw()
}

// Raw returns the compressed 96-byte encoding of the signature.
func (s *Signature) Raw() types.BLSSignature {
	var out types.BLSSignature
	copy(out[:], s.inner.Compress())
	return out
}

// VerifyAggregate checks a single signature against a single aggregated
// public key and message, the FastAggregateVerify case used for
// sync-committee attestations (one message, many signers).
func VerifyAggregate(pub *PublicKey, message []byte, sig *Signature) bool {
	return sig.inner.Verify(false, pub.inner, false, message, []byte(dst))
}
