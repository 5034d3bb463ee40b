// Package curves provides the ecc.Group engines: secp256k1 and P-256 over
// this module's ladder arithmetic, the decred secp256k1 implementation,
// edwards25519 and ristretto255.
package curves

import (
	"fmt"
	"strings"

	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

// Constant-time engines come first; the variable-time decred engine is
// only selected by name.
var supported = []string{"secp256k1-ladder", "p256", "ed25519", "ristretto255", "secp256k1"}

// SupportedCurves returns the names accepted by FromName.
func SupportedCurves() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// FromName returns the group registered under name. Matching ignores case.
func FromName(name string) (ecc.Group, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "secp256k1":
		return NewSecp256k1(), nil
	case "secp256k1-ladder":
		return NewSecp256k1Ladder(), nil
	case "p256", "p-256", "secp256r1":
		return NewP256(), nil
	case "ed25519":
		return NewEd25519(), nil
	case "ristretto255":
		return NewRistretto255(), nil
	}
	return nil, fmt.Errorf("curves: %w: unknown curve %q", ecc.ErrUnsupported, name)
}
