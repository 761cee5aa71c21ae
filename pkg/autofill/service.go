package autofill

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/autofill/pkg/totp"
)

var (
	// ErrNoPageDetails is returned when Autofill receives no frames.
	ErrNoPageDetails = errors.New("no page details")

	// ErrNoCipher is returned when the request carries no fillable cipher.
	ErrNoCipher = errors.New("no cipher to fill")

	// ErrNothingFilled is returned when no frame received a fill operation.
	ErrNothingFilled = errors.New("nothing to fill")

	// ErrBlockedURL is returned when every frame's URL is blocked by policy.
	ErrBlockedURL = errors.New("url blocked for autofill")
)

// Logger receives diagnostics from the engine. *logging.Logger satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

// URLPolicy decides whether a page may be filled.
type URLPolicy interface {
	IsBlocked(url string) bool
}

// Service generates fill scripts for the frames of a page.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	log     Logger
	regions RegionLookup
	policy  URLPolicy
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for engine diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegions replaces the built-in state and country tables.
func WithRegions(r RegionLookup) Option {
	return func(s *Service) {
		if r != nil {
			s.regions = r
		}
	}
}

// WithURLPolicy skips frames whose URL the policy blocks.
func WithURLPolicy(p URLPolicy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithClock sets the time source used for TOTP codes.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		log:     nopLogger{},
		regions: defaultRegions(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateFillScript builds the fill script for one frame. See the package
// level GenerateFillScript for the nil contract.
func (s *Service) GenerateFillScript(page *PageDetails, opts Options) *FillScript {
	return generateFillScript(page, opts, s.regions, s.log)
}

// Request is one autofill of a cipher into every frame of a page.
type Request struct {
	Pages   []*PageDetails
	Options Options

	// AutoCopyTOTP asks for the login's current TOTP code in the result.
	AutoCopyTOTP bool
}

// Result holds one script per filled frame, in request order.
type Result struct {
	Scripts []*FillScript

	// TOTP is the current code when requested and the login has a secret.
	TOTP string
}

// Autofill generates scripts for every frame of the request. Frames whose URL
// is blocked, or whose script would fill nothing, are left out.
func (s *Service) Autofill(req Request) (*Result, error) {
	if len(req.Pages) == 0 {
		return nil, ErrNoPageDetails
	}
	if !hasPayload(req.Options.Cipher) {
		return nil, ErrNoCipher
	}

	result := &Result{}
	blocked := 0
	for _, page := range req.Pages {
		if page == nil {
			continue
		}
		if s.policy != nil && s.policy.IsBlocked(page.URL) {
			s.log.Warnf("frame %d: autofill blocked for %s", page.FrameID, page.URL)
			blocked++
			continue
		}

		script := s.GenerateFillScript(page, req.Options)
		if script == nil || script.FillCount() == 0 {
			s.log.Debugf("frame %d: nothing to fill", page.FrameID)
			continue
		}
		if script.DocumentUUID == "" {
			script.DocumentUUID = uuid.NewString()
		}
		result.Scripts = append(result.Scripts, script)
	}

	if len(result.Scripts) == 0 {
		if blocked > 0 && blocked == countPages(req.Pages) {
			return nil, fmt.Errorf("%d frame(s): %w", blocked, ErrBlockedURL)
		}
		return nil, ErrNothingFilled
	}

	if req.AutoCopyTOTP {
		if login := req.Options.Cipher.Login(); login != nil && login.TOTP != "" {
			code, err := totp.Generate(login.TOTP, s.now())
			if err != nil {
				s.log.Warnf("totp not generated: %v", err)
			} else {
				result.TOTP = code
			}
		}
	}
	return result, nil
}

func countPages(pages []*PageDetails) int {
	n := 0
	for _, p := range pages {
		if p != nil {
			n++
		}
	}
	return n
}
