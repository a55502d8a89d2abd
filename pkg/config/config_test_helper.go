//go:build testing
// +build testing

package config

// ResetGlobalManager clears the global configuration manager so tests can
// re-run Initialize from a clean state.
func ResetGlobalManager() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalManager = nil
}
