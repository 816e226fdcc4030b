// Package config defines the YAML configuration surface of the enforcement
// runtime and its loading pipeline: file, defaults, THEMISTO_* environment
// overrides, validation.
package config
