package config

import (
	"fmt"
	"sync"

	"github.com/entrhq/autofill/pkg/autofill"
	"github.com/entrhq/autofill/pkg/logging"
)

const (
	// SectionIDAutofill is the identifier for the fill behavior section
	SectionIDAutofill = "autofill"

	defaultDelayBetweenOperations = autofill.DefaultDelayBetweenOperations
	defaultLogLevel               = "info"
	maxDelayBetweenOperations     = 5000
)

// AutofillSection holds the default fill options.
type AutofillSection struct {
	SkipUsernameOnlyFill   bool   `json:"skip_username_only_fill"`
	OnlyEmptyFields        bool   `json:"only_empty_fields"`
	OnlyVisibleFields      bool   `json:"only_visible_fields"`
	FillNewPassword        bool   `json:"fill_new_password"`
	AutoCopyTOTP           bool   `json:"auto_copy_totp"`
	DelayBetweenOperations int    `json:"delay_between_operations"`
	LogLevel               string `json:"log_level"`
	mu                     sync.RWMutex
}

// NewAutofillSection creates the section with defaults.
func NewAutofillSection() *AutofillSection {
	s := &AutofillSection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *AutofillSection) ID() string {
	return SectionIDAutofill
}

// Title returns the section title.
func (s *AutofillSection) Title() string {
	return "Autofill"
}

// Description returns the section description.
func (s *AutofillSection) Description() string {
	return "Which fields are filled and how fill scripts are paced."
}

// Data returns the current configuration data.
func (s *AutofillSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"skip_username_only_fill":  s.SkipUsernameOnlyFill,
		"only_empty_fields":        s.OnlyEmptyFields,
		"only_visible_fields":      s.OnlyVisibleFields,
		"fill_new_password":        s.FillNewPassword,
		"auto_copy_totp":           s.AutoCopyTOTP,
		"delay_between_operations": s.DelayBetweenOperations,
		"log_level":                s.LogLevel,
	}
}

// SetData updates the configuration from the provided data.
func (s *AutofillSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flags := map[string]*bool{
		"skip_username_only_fill": &s.SkipUsernameOnlyFill,
		"only_empty_fields":       &s.OnlyEmptyFields,
		"only_visible_fields":     &s.OnlyVisibleFields,
		"fill_new_password":       &s.FillNewPassword,
		"auto_copy_totp":          &s.AutoCopyTOTP,
	}

	for key, value := range data {
		if dst, ok := flags[key]; ok {
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for %s: expected bool, got %T", key, value)
			}
			*dst = b
			continue
		}

		switch key {
		case "delay_between_operations":
			n, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for delay_between_operations: %w", err)
			}
			s.DelayBetweenOperations = n
		case "log_level":
			level, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for log_level: expected string, got %T", value)
			}
			s.LogLevel = level
		}
	}
	return nil
}

// toInt accepts the numeric types JSON decoding and callers produce.
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected whole number, got %v", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("expected number, got %T", value)
}

// Validate validates the current configuration.
func (s *AutofillSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.DelayBetweenOperations < 0 || s.DelayBetweenOperations > maxDelayBetweenOperations {
		return fmt.Errorf("delay_between_operations must be between 0 and %d ms, got %d",
			maxDelayBetweenOperations, s.DelayBetweenOperations)
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *AutofillSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SkipUsernameOnlyFill = false
	s.OnlyEmptyFields = false
	s.OnlyVisibleFields = false
	s.FillNewPassword = false
	s.AutoCopyTOTP = false
	s.DelayBetweenOperations = defaultDelayBetweenOperations
	s.LogLevel = defaultLogLevel
}

// ToOptions returns engine options for cipher. Per-call fields such as
// TabURL are left for the caller.
func (s *AutofillSection) ToOptions(cipher *autofill.Cipher) autofill.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return autofill.Options{
		SkipUsernameOnlyFill:   s.SkipUsernameOnlyFill,
		OnlyEmptyFields:        s.OnlyEmptyFields,
		OnlyVisibleFields:      s.OnlyVisibleFields,
		FillNewPassword:        s.FillNewPassword,
		Cipher:                 cipher,
		DelayBetweenOperations: s.DelayBetweenOperations,
	}
}

// ShouldCopyTOTP reports whether the login's TOTP code goes to the clipboard.
func (s *AutofillSection) ShouldCopyTOTP() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.AutoCopyTOTP
}

// Level returns the configured log level, LevelInfo when unparsable.
func (s *AutofillSection) Level() logging.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	level, _ := logging.ParseLevel(s.LogLevel)
	return level
}
