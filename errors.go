package verkle

import "errors"

// Error kinds from spec §7. A proof that does not check out is reported as
// (false, nil) by Verify and by the IPA/multiproof layers below it; none of
// them returns ErrVerificationFailed.
var (
	ErrInvalidLength      = errors.New("verkle: invalid length")
	ErrNotOnCurve         = errors.New("verkle: point not on curve")
	ErrNonCanonicalScalar = errors.New("verkle: non-canonical scalar")
	ErrKeyNotFound        = errors.New("verkle: key not found")
	ErrVerificationFailed = errors.New("verkle: proof verification failed")
	ErrInvariantViolation = errors.New("verkle: invariant violation")
)
