// Themisto is an authorization enforcement runtime for repository
// operations.
//
// It sits in front of a pluggable attribute-based decision engine,
// assembling decision requests from operation attributes, composing the
// applicable policy set per request, and converting raw engine decisions
// into deny-biased enforcement outcomes.
//
// Usage:
//
//	# Start the runtime with default configuration
//	themisto run
//
//	# Start with a custom configuration file
//	themisto run --config /path/to/config.yaml
//
//	# Validate configuration and policy documents without starting
//	themisto validate
//
//	# Show version information
//	themisto version
package main

func main() {
	Execute()
}
