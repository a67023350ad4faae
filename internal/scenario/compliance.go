package scenario

// Band is an IMO CII rating letter, A (best) through E (worst). The empty
// band means no rating could be derived.
type Band string

// CII rating bands.
const (
	BandNone Band = ""
	BandA    Band = "A"
	BandB    Band = "B"
	BandC    Band = "C"
	BandD    Band = "D"
	BandE    Band = "E"
)

// Rating-boundary factors on the attained/required CII ratio. These are the
// generic dd-vector boundaries around the required value; C straddles 1.0.
const (
	ciiSuperiorBoundary = 0.86
	ciiLowerBoundary    = 0.94
	ciiUpperBoundary    = 1.06
	ciiInferiorBoundary = 1.18
)

// CIIBand bands an attained CII against the required CII for the reporting
// year. A non-positive required value yields no rating.
func CIIBand(attained, required float64) Band {
	if required <= 0 || attained < 0 {
		return BandNone
	}
	ratio := attained / required
	switch {
	case ratio < ciiSuperiorBoundary:
		return BandA
	case ratio < ciiLowerBoundary:
		return BandB
	case ratio <= ciiUpperBoundary:
		return BandC
	case ratio <= ciiInferiorBoundary:
		return BandD
	default:
		return BandE
	}
}

// EEXICompliant reports whether an attained EEXI meets the required value.
// A non-positive required value means no check is possible and reports false.
func EEXICompliant(attained, required float64) bool {
	if required <= 0 {
		return false
	}
	return attained <= required
}
