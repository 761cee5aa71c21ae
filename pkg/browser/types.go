package browser

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/autofill/pkg/autofill"
)

// Session is one browser with a single page used to collect and fill forms.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	Headless bool

	CreatedAt  time.Time
	LastUsedAt time.Time

	// CurrentURL is the URL of the page after the last navigation or click
	CurrentURL string

	// timeout applies to every selector operation, in milliseconds
	timeout float64

	mu sync.Mutex
	// frames maps the DocumentUUID of collected page details to its frame
	frames map[string]collectedFrame
}

type collectedFrame struct {
	frame   playwright.Frame
	details *autofill.PageDetails
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// Default values for sessions
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
)
