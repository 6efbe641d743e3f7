//go:build arm64

package cpu

import "runtime"

// detectFeaturesImpl reports the arm64 baseline. NEON (AdvSIMD) is
// mandatory in the AArch64 execution state.
func detectFeaturesImpl() Features {
	return Features{
		HasNEON:      true,
		Architecture: runtime.GOARCH,
	}
}
