// Package config loads and saves autofill settings as named sections in a
// JSON file, by default ~/.autofill/config.json.
package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates the global manager with the default sections and loads
// configPath. An empty path means DefaultConfigPath.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)
	for _, section := range []Section{
		NewAutofillSection(),
		NewURLBlocklistSection(),
		NewBrowserSection(),
	} {
		if err := manager.RegisterSection(section); err != nil {
			return err
		}
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

func globalSection[T Section](id string) T {
	var zero T
	if !IsInitialized() {
		return zero
	}
	section, ok := Global().GetSection(id)
	if !ok {
		return zero
	}
	typed, ok := section.(T)
	if !ok {
		return zero
	}
	return typed
}

// GetAutofill returns the autofill section, or nil before Initialize.
func GetAutofill() *AutofillSection {
	return globalSection[*AutofillSection](SectionIDAutofill)
}

// GetURLBlocklist returns the URL blocklist section, or nil before Initialize.
func GetURLBlocklist() *URLBlocklistSection {
	return globalSection[*URLBlocklistSection](SectionIDURLBlocklist)
}

// GetBrowser returns the browser section, or nil before Initialize.
func GetBrowser() *BrowserSection {
	return globalSection[*BrowserSection](SectionIDBrowser)
}

// IsURLBlocked reports whether autofill is blocked for url.
// Returns false if config is not initialized.
func IsURLBlocked(url string) bool {
	blocklist := GetURLBlocklist()
	if blocklist == nil {
		return false
	}
	return blocklist.IsBlocked(url)
}
