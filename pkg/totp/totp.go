// Package totp generates time-based one-time passwords for stored login
// secrets. A secret is either a bare base32 key, an otpauth://totp URI, or a
// steam:// key.
package totp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	otptotp "github.com/pquerna/otp/totp"
)

const (
	defaultPeriod = 30
	steamDigits   = 5
	steamAlphabet = "23456789BCDFGHJKMNPQRTVWXY"

	// rawDigits keeps the whole 31-bit truncated HOTP value in the decimal code.
	rawDigits = otp.Digits(10)
)

// ErrEmptySecret is returned when no key material is present.
var ErrEmptySecret = errors.New("totp: empty secret")

// Key is a parsed TOTP secret.
type Key struct {
	// Secret is the normalized base32 key.
	Secret    string
	Digits    otp.Digits
	Period    uint
	Algorithm otp.Algorithm
	Steam     bool
}

// Parse decodes a stored TOTP value.
func Parse(raw string) (*Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptySecret
	}

	key := &Key{Digits: otp.DigitsSix, Period: defaultPeriod, Algorithm: otp.AlgorithmSHA1}
	secret := raw

	switch lower := strings.ToLower(raw); {
	case strings.HasPrefix(lower, "otpauth://"):
		u, err := otp.NewKeyFromURL(raw)
		if err != nil {
			return nil, fmt.Errorf("totp: invalid uri: %w", err)
		}
		if !strings.EqualFold(u.Type(), "totp") {
			return nil, fmt.Errorf("totp: unsupported key type %q", u.Type())
		}
		if u.Period() == 0 {
			return nil, errors.New("totp: invalid period 0")
		}
		if u.Algorithm() == otp.AlgorithmMD5 {
			return nil, errors.New("totp: unsupported algorithm MD5")
		}
		secret = u.Secret()
		key.Digits = u.Digits()
		key.Period = uint(u.Period())
		key.Algorithm = u.Algorithm()
	case strings.HasPrefix(lower, "steam://"):
		secret = raw[len("steam://"):]
		key.Steam = true
		key.Digits = steamDigits
	}

	key.Secret = normalizeSecret(secret)
	if key.Secret == "" {
		return nil, ErrEmptySecret
	}
	if _, err := hotp.GenerateCodeCustom(key.Secret, 0, hotp.ValidateOpts{Digits: key.Digits, Algorithm: key.Algorithm}); err != nil {
		return nil, fmt.Errorf("totp: invalid secret: %w", err)
	}
	return key, nil
}

// normalizeSecret drops the separators and padding users paste along with
// base32 keys.
func normalizeSecret(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), "-", ""))
	return strings.TrimRight(s, "=")
}

// Code returns the code valid at t.
func (k *Key) Code(t time.Time) (string, error) {
	if !k.Steam {
		return otptotp.GenerateCodeCustom(k.Secret, t, otptotp.ValidateOpts{
			Period:    k.Period,
			Digits:    k.Digits,
			Algorithm: k.Algorithm,
		})
	}

	raw, err := otptotp.GenerateCodeCustom(k.Secret, t, otptotp.ValidateOpts{
		Period:    k.Period,
		Digits:    rawDigits,
		Algorithm: k.Algorithm,
	})
	if err != nil {
		return "", err
	}
	bin, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", fmt.Errorf("totp: unexpected hotp value %q: %w", raw, err)
	}

	var b strings.Builder
	for i := 0; i < int(k.Digits); i++ {
		b.WriteByte(steamAlphabet[bin%uint64(len(steamAlphabet))])
		bin /= uint64(len(steamAlphabet))
	}
	return b.String(), nil
}

// Remaining returns how long the code at t stays valid.
func (k *Key) Remaining(t time.Time) time.Duration {
	period := int64(k.Period)
	left := period - t.Unix()%period
	return time.Duration(left) * time.Second
}

// Generate parses raw and returns the code valid at t.
func Generate(raw string, t time.Time) (string, error) {
	key, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return key.Code(t)
}
