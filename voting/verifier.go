package voting

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zkgov/ballotbox/types"
)

// ProofVerifier is the oracle that decides whether a proof artifact is
// valid. Implementations must be pure and deterministic: same artifact,
// same answer, no side effects, safe to call outside any transaction.
// Malformed input returns false, it is never an error; an invalid proof is
// an invalid vote, not a system failure.
//
// This is the extension point where a real zero-knowledge circuit check
// plugs in. The rest of the core treats the result as an opaque boolean.
type ProofVerifier interface {
	Verify(proof types.HexBytes) bool
}

// checksumLen is the number of trailing checksum bytes in a sealed proof.
const checksumLen = 4

// KeccakVerifier is the placeholder verifier: it accepts artifacts whose
// trailing four bytes equal the first four bytes of the keccak256 hash of
// the rest. It stands in for a real circuit verifier while keeping the
// accept/reject behavior deterministic and testable.
type KeccakVerifier struct{}

func (KeccakVerifier) Verify(proof types.HexBytes) bool {
	if len(proof) <= checksumLen {
		return false
	}
	payload := proof[:len(proof)-checksumLen]
	sum := crypto.Keccak256(payload)
	return bytes.Equal(proof[len(proof)-checksumLen:], sum[:checksumLen])
}

// SealProof appends the keccak checksum to a payload, producing an artifact
// the KeccakVerifier accepts. Used by clients and tests.
func SealProof(payload []byte) types.HexBytes {
	sum := crypto.Keccak256(payload)
	return append(append(types.HexBytes{}, payload...), sum[:checksumLen]...)
}
