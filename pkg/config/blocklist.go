package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

const (
	// MatchTypeGlob matches the URL against a glob such as "https://*.bank.example/*"
	MatchTypeGlob = "glob"
	// MatchTypePrefix matches URLs starting with the pattern
	MatchTypePrefix = "prefix"
	// MatchTypeExact matches the URL exactly
	MatchTypeExact = "exact"
	// SectionIDURLBlocklist is the identifier for the URL blocklist section
	SectionIDURLBlocklist = "url_blocklist"
)

// URLPattern is a page URL that must never be filled.
type URLPattern struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type compiledPattern struct {
	URLPattern
	g glob.Glob
}

func (p compiledPattern) matches(url string) bool {
	switch p.Type {
	case MatchTypeExact:
		return url == p.Pattern
	case MatchTypePrefix:
		return strings.HasPrefix(url, p.Pattern)
	default:
		return p.g != nil && p.g.Match(url)
	}
}

// URLBlocklistSection lists pages autofill refuses to touch. It satisfies
// autofill.URLPolicy.
type URLBlocklistSection struct {
	patterns []compiledPattern
	mu       sync.RWMutex
}

// NewURLBlocklistSection creates an empty blocklist.
func NewURLBlocklistSection() *URLBlocklistSection {
	return &URLBlocklistSection{}
}

// ID returns the section identifier.
func (s *URLBlocklistSection) ID() string {
	return SectionIDURLBlocklist
}

// Title returns the section title.
func (s *URLBlocklistSection) Title() string {
	return "Blocked URLs"
}

// Description returns the section description.
func (s *URLBlocklistSection) Description() string {
	return "Pages matching these patterns are never autofilled"
}

// Data returns the current configuration data.
func (s *URLBlocklistSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patterns := make([]interface{}, len(s.patterns))
	for i, p := range s.patterns {
		patterns[i] = map[string]interface{}{
			"pattern":     p.Pattern,
			"description": p.Description,
			"type":        p.Type,
		}
	}
	return map[string]interface{}{"patterns": patterns}
}

// SetData updates the configuration from the provided data.
func (s *URLBlocklistSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}
	raw, ok := data["patterns"]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("invalid patterns type: expected []interface{}, got %T", raw)
	}

	patterns := make([]URLPattern, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return fmt.Errorf("invalid pattern at index %d: expected map, got %T", i, item)
		}
		pattern, ok := m["pattern"].(string)
		if !ok {
			return fmt.Errorf("invalid pattern at index %d: missing or invalid pattern field", i)
		}
		p := URLPattern{Pattern: pattern, Type: MatchTypeGlob}
		if v, has := m["description"]; has {
			if p.Description, ok = v.(string); !ok {
				return fmt.Errorf("invalid pattern at index %d: description is not a string (got %T)", i, v)
			}
		}
		if v, has := m["type"]; has {
			if p.Type, ok = v.(string); !ok {
				return fmt.Errorf("invalid pattern at index %d: type is not a string (got %T)", i, v)
			}
		}
		patterns = append(patterns, p)
	}
	return s.SetPatterns(patterns)
}

// SetPatterns compiles and replaces the blocklist.
func (s *URLBlocklistSection) SetPatterns(patterns []URLPattern) error {
	compiled := make([]compiledPattern, 0, len(patterns))
	for i, p := range patterns {
		if strings.TrimSpace(p.Pattern) == "" {
			return fmt.Errorf("pattern at index %d is empty", i)
		}
		c := compiledPattern{URLPattern: p}
		switch p.Type {
		case MatchTypeExact, MatchTypePrefix:
		case MatchTypeGlob, "":
			c.Type = MatchTypeGlob
			g, err := glob.Compile(p.Pattern)
			if err != nil {
				return fmt.Errorf("invalid glob %q at index %d: %w", p.Pattern, i, err)
			}
			c.g = g
		default:
			return fmt.Errorf("pattern at index %d: unknown type %q", i, p.Type)
		}
		compiled = append(compiled, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = compiled
	return nil
}

// Patterns returns the configured patterns.
func (s *URLBlocklistSection) Patterns() []URLPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]URLPattern, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.URLPattern
	}
	return out
}

// Validate validates the current configuration.
func (s *URLBlocklistSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, p := range s.patterns {
		if p.Type == MatchTypeGlob && p.g == nil {
			return fmt.Errorf("pattern at index %d is not compiled", i)
		}
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *URLBlocklistSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = nil
}

// IsBlocked reports whether url matches any pattern.
func (s *URLBlocklistSection) IsBlocked(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patterns {
		if p.matches(url) {
			return true
		}
	}
	return false
}
