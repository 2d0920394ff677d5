package runloop

import (
	"github.com/bft-labs/runloop/pkg/lifecycle"
	"github.com/bft-labs/runloop/pkg/log"
	"github.com/bft-labs/runloop/pkg/processor"
	"github.com/bft-labs/runloop/pkg/report"
	"github.com/bft-labs/runloop/pkg/transition"
)

// Version information for the runloop module.
const (
	Version              = "1.0.0"
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the version of every sub-module.
func ModuleVersions() map[string]string {
	return map[string]string{
		"runloop":    Version,
		"transition": transition.Version,
		"lifecycle":  lifecycle.Version,
		"processor":  processor.Version,
		"report":     report.Version,
		"log":        log.Version,
	}
}

// CompatibilityMatrix returns the minimum compatible version of every
// sub-module.
func CompatibilityMatrix() map[string]string {
	return map[string]string{
		"runloop":    MinCompatibleVersion,
		"transition": transition.MinCompatibleVersion,
		"lifecycle":  lifecycle.MinCompatibleVersion,
		"processor":  processor.MinCompatibleVersion,
		"report":     report.MinCompatibleVersion,
		"log":        log.MinCompatibleVersion,
	}
}
