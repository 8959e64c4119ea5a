// Package config holds the engine's console variables (cvars): typed,
// name-keyed tunables read every frame by the camera and renderer.
package config

// Provider is the read side consumed by the engine. Lookups of unknown names
// return the zero value.
type Provider interface {
	Bool(name string) bool
	Int(name string) int
	Float(name string) float32
}
