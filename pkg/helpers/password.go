package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned by Verify when the stored digest cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Upper bounds accepted from a stored argon2id digest.
const (
	maxArgon2Memory = 1024 * 1024 // KiB
	maxArgon2Time   = 16
	maxArgon2KeyLen = 128
)

// MaxPasswordBytes is the longest password every hasher accepts; bcrypt
// refuses more than 72 bytes.
const MaxPasswordBytes = 72

// PasswordHasher turns plaintext passwords into self-describing digests.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(digest, plain string) (bool, error)
}

// Argon2Hasher produces PHC encoded argon2id digests:
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Time: 3, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h *Argon2Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, h.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, h.Time, h.Memory, h.Threads, h.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify accepts argon2id and bcrypt digests regardless of the receiver's
// configuration, so changing PASSWORD_HASH_ALGO keeps old accounts working.
func (h *Argon2Hasher) Verify(digest, plain string) (bool, error) {
	return verifyDigest(digest, plain)
}

// BcryptHasher produces $2a$ digests.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher { return &BcryptHasher{Cost: bcrypt.DefaultCost} }

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(digest, plain string) (bool, error) {
	return verifyDigest(digest, plain)
}

// NewPasswordHasher returns the hasher for algo ("argon2id" or "bcrypt").
func NewPasswordHasher(algo string) (PasswordHasher, error) {
	switch algo {
	case "", "argon2id":
		return NewArgon2Hasher(), nil
	case "bcrypt":
		return NewBcryptHasher(), nil
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algo)
	}
}

func verifyDigest(digest, plain string) (bool, error) {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return verifyArgon2(digest, plain)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
		}
		return true, nil
	default:
		return false, ErrMalformedHash
	}
}

func verifyArgon2(digest, plain string) (bool, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}
	var (
		memory, iterations uint32
		threads            uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrMalformedHash
	}
	if threads == 0 || iterations == 0 || iterations > maxArgon2Time ||
		memory < 8*uint32(threads) || memory > maxArgon2Memory {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > maxArgon2KeyLen {
		return false, ErrMalformedHash
	}
	got := argon2.IDKey([]byte(plain), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
