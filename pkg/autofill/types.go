package autofill

import (
	"encoding/json"
	"fmt"
)

// Field types reported by the page scanner that the engine cares about.
const (
	FieldTypeText      = "text"
	FieldTypePassword  = "password"
	FieldTypeEmail     = "email"
	FieldTypeTel       = "tel"
	FieldTypeSelectOne = "select-one"

	// tagSpan marks an element collected only so custom fields can target it.
	tagSpan = "span"

	autocompleteNewPassword = "new-password"
)

// SelectOption is one <option> of a select element.
type SelectOption struct {
	Value string `json:"value" yaml:"value"`
	Text  string `json:"text" yaml:"text"`
}

// SelectInfo describes the options of a select element.
type SelectInfo struct {
	Options []SelectOption `json:"options" yaml:"options"`
}

// PageField is one input, select or span element discovered on a page.
type PageField struct {
	// OPID is the opaque identifier the executor uses to find the element.
	OPID string `json:"opid" yaml:"opid"`

	// ElementNumber is the element's position in page order.
	ElementNumber int `json:"elementNumber" yaml:"elementNumber"`

	Viewable bool `json:"viewable" yaml:"viewable"`
	Disabled bool `json:"disabled" yaml:"disabled"`
	Readonly bool `json:"readonly" yaml:"readonly"`

	TagName string `json:"tagName" yaml:"tagName"`
	Type    string `json:"type" yaml:"type"`

	HTMLID           string `json:"htmlID" yaml:"htmlID"`
	HTMLName         string `json:"htmlName" yaml:"htmlName"`
	HTMLClass        string `json:"htmlClass" yaml:"htmlClass"`
	LabelTag         string `json:"label-tag" yaml:"label-tag"`
	LabelAria        string `json:"label-aria" yaml:"label-aria"`
	LabelLeft        string `json:"label-left" yaml:"label-left"`
	LabelRight       string `json:"label-right" yaml:"label-right"`
	LabelTop         string `json:"label-top" yaml:"label-top"`
	Placeholder      string `json:"placeholder" yaml:"placeholder"`
	AutoCompleteType string `json:"autoCompleteType" yaml:"autoCompleteType"`

	// Form is the key of the enclosing form in PageDetails.Forms, if any.
	Form string `json:"form" yaml:"form"`

	MaxLength int    `json:"maxLength" yaml:"maxLength"`
	Value     string `json:"value" yaml:"value"`

	SelectInfo *SelectInfo `json:"selectInfo,omitempty" yaml:"selectInfo,omitempty"`
}

// Form is a <form> element discovered on a page.
type Form struct {
	OPID       string `json:"opid" yaml:"opid"`
	HTMLID     string `json:"htmlID" yaml:"htmlID"`
	HTMLName   string `json:"htmlName" yaml:"htmlName"`
	HTMLAction string `json:"htmlAction" yaml:"htmlAction"`
	HTMLMethod string `json:"htmlMethod" yaml:"htmlMethod"`
}

// PageDetails is a snapshot of one frame produced by the page scanner.
type PageDetails struct {
	DocumentUUID string          `json:"documentUUID" yaml:"documentUUID"`
	FrameID      int             `json:"frameId" yaml:"frameId"`
	Title        string          `json:"title" yaml:"title"`
	URL          string          `json:"url" yaml:"url"`
	Forms        map[string]Form `json:"forms" yaml:"forms"`
	Fields       []PageField     `json:"fields" yaml:"fields"`
}

// isCustomFieldOnly reports whether the field may only receive custom field values.
func (f *PageField) isCustomFieldOnly() bool {
	return f.TagName == tagSpan
}

// isSelect reports whether the field only accepts one of its options. A
// select without options never receives a value.
func (f *PageField) isSelect() bool {
	return f.Type == FieldTypeSelectOne
}

func (f *PageField) selectOptions() []SelectOption {
	if f.SelectInfo == nil {
		return nil
	}
	return f.SelectInfo.Options
}

// isTextLike reports whether the field can hold a username.
func (f *PageField) isTextLike() bool {
	switch f.Type {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel:
		return true
	}
	return false
}

// ActionType is the kind of a FillOperation.
type ActionType string

const (
	ActionClick ActionType = "click_on_opid"
	ActionFocus ActionType = "focus_by_opid"
	ActionFill  ActionType = "fill_by_opid"
)

// FillOperation is one instruction for the executor.
type FillOperation struct {
	Action ActionType
	OPID   string
	Value  string
}

// MarshalJSON encodes the operation in tuple form, e.g. ["fill_by_opid", "p1", "secret"].
func (o FillOperation) MarshalJSON() ([]byte, error) {
	if o.Action == ActionFill {
		return json.Marshal([]string{string(o.Action), o.OPID, o.Value})
	}
	return json.Marshal([]string{string(o.Action), o.OPID})
}

// UnmarshalJSON decodes the tuple form written by MarshalJSON.
func (o *FillOperation) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("invalid fill operation: %w", err)
	}
	if len(parts) < 2 {
		return fmt.Errorf("invalid fill operation: expected at least 2 elements, got %d", len(parts))
	}

	action := ActionType(parts[0])
	switch action {
	case ActionClick, ActionFocus:
	case ActionFill:
		if len(parts) != 3 {
			return fmt.Errorf("invalid fill operation: %s requires a value", action)
		}
		o.Value = parts[2]
	default:
		return fmt.Errorf("invalid fill operation: unknown action %q", parts[0])
	}

	o.Action = action
	o.OPID = parts[1]
	return nil
}

func (o FillOperation) String() string {
	if o.Action == ActionFill {
		return fmt.Sprintf("%s(%s, %d chars)", o.Action, o.OPID, len(o.Value))
	}
	return fmt.Sprintf("%s(%s)", o.Action, o.OPID)
}

// ScriptProperties carries executor hints.
type ScriptProperties struct {
	// DelayBetweenOperations is the pause in milliseconds between operations.
	DelayBetweenOperations int `json:"delay_between_operations"`
}

// DefaultDelayBetweenOperations is the executor delay used when none is configured.
const DefaultDelayBetweenOperations = 20

// FillScript is the ordered list of operations for one frame.
type FillScript struct {
	DocumentUUID    string           `json:"documentUUID"`
	Properties      ScriptProperties `json:"properties"`
	Script          []FillOperation  `json:"script"`
	SavedURLs       []string         `json:"savedUrls,omitempty"`
	UntrustedIframe bool             `json:"untrustedIframe"`
}

// FillCount returns the number of fill operations in the script.
func (s *FillScript) FillCount() int {
	n := 0
	for _, op := range s.Script {
		if op.Action == ActionFill {
			n++
		}
	}
	return n
}

// Options controls script generation.
type Options struct {
	// SkipUsernameOnlyFill suppresses the fuzzy username fill on pages without password fields.
	SkipUsernameOnlyFill bool

	// OnlyEmptyFields restricts password-field discovery to fields without a value.
	OnlyEmptyFields bool

	// OnlyVisibleFields suppresses the retries that include hidden fields.
	OnlyVisibleFields bool

	// FillNewPassword includes fields marked autocomplete=new-password.
	FillNewPassword bool

	// Cipher is the credential to fill.
	Cipher *Cipher

	// TabURL is the URL of the top-level page, used for the untrusted iframe check.
	TabURL string

	// DelayBetweenOperations overrides DefaultDelayBetweenOperations when positive.
	DelayBetweenOperations int
}
