package lanes

import (
	"strconv"

	"golang.org/x/sys/cpu"
)

// Capabilities reports what the host could in principle offer a real
// hardware warp, even though this build always executes the lockstep
// software simulation regardless of what it finds. This mirrors the
// teacher library's DispatchLevel reporting, trimmed to informational use:
// there is no code path here that branches on these bits.
type Capabilities struct {
	// HasAVX2/HasAVX512 describe the host's real vector ISA, for logging.
	HasAVX2    bool
	HasAVX512  bool
	SimulatedW int
}

// DetectCapabilities probes the host CPU via golang.org/x/sys/cpu and
// reports a simulated warp width w alongside what real SIMD the host has.
func DetectCapabilities(w int) Capabilities {
	return Capabilities{
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512:  cpu.X86.HasAVX512,
		SimulatedW: w,
	}
}

// String renders a short human-readable summary, e.g. for startup logs.
func (c Capabilities) String() string {
	w := strconv.Itoa(c.SimulatedW)
	switch {
	case c.HasAVX512:
		return "simulated-warp(w=" + w + ") host=avx512"
	case c.HasAVX2:
		return "simulated-warp(w=" + w + ") host=avx2"
	default:
		return "simulated-warp(w=" + w + ") host=scalar"
	}
}
