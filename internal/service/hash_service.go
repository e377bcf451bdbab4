package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2HashService implements ports.HashService with Argon2id. The
// parameters follow the RFC 9106 low-memory recommendation (64 MiB,
// t=1, p=4); they are baked into each encoded hash, so stored
// credentials keep verifying if the defaults move later.
type Argon2HashService struct {
	memory  uint32
	passes  uint32
	lanes   uint8
	keyLen  uint32
	saltLen uint32
}

func NewArgon2HashService() *Argon2HashService {
	return &Argon2HashService{
		memory:  64 * 1024,
		passes:  1,
		lanes:   4,
		keyLen:  32,
		saltLen: 16,
	}
}

// Hash derives an Argon2id digest over a fresh random salt and encodes
// it in the standard $argon2id$v=19$m=...,t=...,p=...$salt$digest form.
func (s *Argon2HashService) Hash(password string) (string, error) {
	salt := make([]byte, s.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, s.passes, s.memory, s.lanes, s.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, s.memory, s.passes, s.lanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify recomputes the digest with the parameters carried inside
// encodedHash and compares in constant time.
func (s *Argon2HashService) Verify(password string, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return false, fmt.Errorf("malformed argon2 hash")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported hash algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing argon2 version: %w", err)
	}

	var memory, passes uint32
	var lanes uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &passes, &lanes); err != nil {
		return false, fmt.Errorf("parsing argon2 parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding digest: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, passes, memory, lanes, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
