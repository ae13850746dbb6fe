package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const redacted = "[redacted]"

// Password is a write-only bcrypt digest. It can be set from a raw value and
// matched against one. The digest only leaves the type through driver.Valuer
// when it is written to the database.
type Password struct {
	digest []byte
}

// Set hashes raw with a per-call salt and replaces the current digest.
func (p *Password) Set(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
		}
		return fmt.Errorf("hash password: %w", err)
	}
	p.digest = digest
	return nil
}

// Matches reports whether raw hashes to the stored digest. An unset password
// never matches.
func (p Password) Matches(raw string) bool {
	if len(p.digest) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(p.digest, []byte(raw)) == nil
}

// IsSet reports whether a digest is present.
func (p Password) IsSet() bool {
	return len(p.digest) > 0
}

func (p Password) String() string   { return redacted }
func (p Password) GoString() string { return redacted }

// Value implements driver.Valuer.
func (p Password) Value() (driver.Value, error) {
	if len(p.digest) == 0 {
		return nil, errors.New("password digest is not set")
	}
	return string(p.digest), nil
}

// Scan implements sql.Scanner.
func (p *Password) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		p.digest = nil
	case string:
		p.digest = []byte(v)
	case []byte:
		p.digest = append([]byte(nil), v...)
	default:
		return fmt.Errorf("scan password digest: unsupported type %T", src)
	}
	return nil
}
