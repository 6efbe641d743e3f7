// Package cpu reports the SIMD capabilities of the host processor.
// The engine itself stays portable; the report feeds diagnostics so a
// benchmark run can be tied to the hardware it ran on.
package cpu

import (
	"strings"
	"sync"
)

// Features describes the vector extensions available on this machine.
type Features struct {
	HasSSE2   bool
	HasSSE3   bool
	HasSSSE3  bool
	HasSSE41  bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// Architecture is runtime.GOARCH.
	Architecture string
}

var (
	detectOnce sync.Once
	detected   Features
)

// DetectFeatures returns the host's feature set. Detection runs once;
// subsequent calls return the cached result.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})
	return detected
}

// Summary renders the feature set as "arch: feat1, feat2" for logs and
// banners. An empty feature list reports "none".
func (f Features) Summary() string {
	names := make([]string, 0, 8)
	for _, feat := range []struct {
		on   bool
		name string
	}{
		{f.HasSSE2, "SSE2"},
		{f.HasSSE3, "SSE3"},
		{f.HasSSSE3, "SSSE3"},
		{f.HasSSE41, "SSE4.1"},
		{f.HasAVX, "AVX"},
		{f.HasAVX2, "AVX2"},
		{f.HasAVX512, "AVX-512"},
		{f.HasNEON, "NEON"},
	} {
		if feat.on {
			names = append(names, feat.name)
		}
	}
	if len(names) == 0 {
		return f.Architecture + ": none"
	}
	return f.Architecture + ": " + strings.Join(names, ", ")
}
