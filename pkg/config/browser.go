package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDBrowser is the identifier for the replay browser section
	SectionIDBrowser = "browser"

	defaultHeadless       = true
	defaultBrowserTimeout = 30 * time.Second
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// BrowserSection configures the browser used to replay fill scripts.
type BrowserSection struct {
	Headless       bool          `json:"headless"`
	Timeout        time.Duration `json:"timeout"`
	ViewportWidth  int           `json:"viewport_width"`
	ViewportHeight int           `json:"viewport_height"`
	mu             sync.RWMutex
}

// NewBrowserSection creates the section with defaults.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:       defaultHeadless,
		Timeout:        defaultBrowserTimeout,
		ViewportWidth:  defaultViewportWidth,
		ViewportHeight: defaultViewportHeight,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Browser settings for replaying fill scripts against live pages."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"headless":        s.Headless,
		"timeout":         s.Timeout.String(),
		"viewport_width":  s.ViewportWidth,
		"viewport_height": s.ViewportHeight,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "headless":
			headless, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = headless

		case "timeout":
			switch v := value.(type) {
			case string:
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for timeout: %w", err)
				}
				s.Timeout = d
			case float64:
				s.Timeout = time.Duration(v)
			case int64:
				s.Timeout = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for timeout: expected string or number, got %T", value)
			}

		case "viewport_width", "viewport_height":
			n, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if key == "viewport_width" {
				s.ViewportWidth = n
			} else {
				s.ViewportHeight = n
			}
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Timeout < time.Second || s.Timeout > 5*time.Minute {
		return fmt.Errorf("timeout must be between 1s and 5m, got %v", s.Timeout)
	}
	if s.ViewportWidth <= 0 || s.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", s.ViewportWidth, s.ViewportHeight)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Headless = defaultHeadless
	s.Timeout = defaultBrowserTimeout
	s.ViewportWidth = defaultViewportWidth
	s.ViewportHeight = defaultViewportHeight
}

// Settings returns headless, timeout and viewport size together.
func (s *BrowserSection) Settings() (headless bool, timeout time.Duration, width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless, s.Timeout, s.ViewportWidth, s.ViewportHeight
}
