package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion is bumped whenever the profile schema or the
// meaning of a calibrated threshold changes.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile file stored in the user's home
// directory.
const DefaultProfileFileName = ".numcalc_calibration.json"

// CalibrationProfile caches benchmarked thresholds together with the
// hardware fingerprint they were measured on.
type CalibrationProfile struct {
	ProfileVersion int    `json:"profile_version"`
	NumCPU         int    `json:"num_cpu"`
	GOARCH         string `json:"goarch"`
	GOOS           string `json:"goos"`
	GoVersion      string `json:"go_version"`
	WordSize       int    `json:"word_size"`

	OptimalParallelThreshold int `json:"optimal_parallel_threshold"`
	OptimalFFTThreshold      int `json:"optimal_fft_threshold"`

	// CalibrationN is the factorial operand the benchmarks ran with.
	CalibrationN    uint64    `json:"calibration_n"`
	CalibrationTime string    `json:"calibration_time"`
	CalibratedAt    time.Time `json:"calibrated_at"`
}

// NewProfile creates a profile stamped with the current hardware
// fingerprint and no thresholds yet.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether the profile was calibrated on hardware
// matching the current machine and with the current schema version.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("profile v%d (%s/%s, %d cores, %d-bit words): parallel=%d words, fft=%d bits, calibrated %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.WordSize,
		p.OptimalParallelThreshold, p.OptimalFFTThreshold,
		p.CalibratedAt.Format(time.RFC3339))
}

// SaveProfile writes the profile as JSON, creating parent directories
// as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// loadProfile reads a profile from disk without validating it.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one
// when the file does not exist or cannot be parsed. The second return
// reports whether an existing profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the per-user profile location, falling
// back to the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
