package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// The server guards a single owner password, so hashing happens once at
// startup and verification once per login. That lets the parameters sit at
// the RFC 9106 low-memory profile without worrying about bulk throughput.
const (
	hashMemoryKiB  = 64 * 1024
	hashIterations = 3
	hashThreads    = 4
	saltBytes      = 16
	digestBytes    = 32

	// Bounds the work a single login attempt can demand.
	maxPasswordBytes = 1024
)

// HashPassword derives an argon2id digest of the owner password and returns
// it in the standard $argon2id$ encoded form.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, hashIterations, hashMemoryKiB, hashThreads, digestBytes)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemoryKiB,
		hashIterations,
		hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// VerifyPassword checks a login attempt against the stored encoded hash.
// Malformed hashes report as a plain mismatch rather than an error so the
// response does not reveal anything about the stored value.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if len(password) > maxPasswordBytes {
		return false, nil
	}

	salt, digest, cost, err := parseEncodedHash(encodedHash)
	if err != nil {
		return false, nil
	}

	// Redo the derivation with the parameters baked into the stored hash,
	// so old hashes keep verifying if the constants above ever change.
	attempt := argon2.IDKey([]byte(password), salt, cost.iterations, cost.memoryKiB, cost.threads, cost.digestLen)

	return subtle.ConstantTimeCompare(digest, attempt) == 1, nil
}

type argonCost struct {
	memoryKiB  uint32
	iterations uint32
	threads    uint8
	digestLen  uint32
}

func parseEncodedHash(encodedHash string) (salt, digest []byte, cost argonCost, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, cost, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, nil, cost, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, cost, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, cost, fmt.Errorf("incompatible version: %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &cost.memoryKiB, &cost.iterations, &cost.threads); err != nil {
		return nil, nil, cost, fmt.Errorf("invalid parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, cost, fmt.Errorf("invalid salt encoding: %w", err)
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, cost, fmt.Errorf("invalid hash encoding: %w", err)
	}

	//nolint:gosec // digest length fits uint32
	cost.digestLen = uint32(len(digest))
	return salt, digest, cost, nil
}
