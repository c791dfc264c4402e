package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	rerrors "github.com/rediacc/rdc/internal/errors"
)

const (
	envelopeMarker    = 1
	envelopeVersion   = 1
	envelopeAlgorithm = "xchacha20-poly1305"
	envelopeKDF       = "argon2id"

	saltSize = 16
	keySize  = chacha20poly1305.KeySize

	// maxKDFMemory bounds the memory an envelope may ask for, in KiB.
	maxKDFMemory = 1 << 20
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDFParams follows the second recommended option of RFC 9106.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// Envelope is the serialized form of one encrypted payload.
type Envelope struct {
	// Marker is always 1. It tells envelopes apart from plaintext documents
	// that happen to use the same field names.
	Marker     int    `json:"rdc_envelope"`
	Version    int    `json:"v"`
	Algorithm  string `json:"alg"`
	KDF        string `json:"kdf"`
	Time       uint32 `json:"t"`
	Memory     uint32 `json:"m"`
	Threads    uint8  `json:"p"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"tag"`
}

// ParseEnvelope reports whether data is an envelope and returns it.
func ParseEnvelope(data []byte) (*Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Marker != envelopeMarker || env.Version == 0 || env.Algorithm == "" || env.IV == "" || env.Tag == "" || env.Salt == "" {
		return nil, false
	}
	return &env, true
}

// Cipher seals and opens envelopes with keys derived from one password.
// Keys are cached per salt; a Cipher is not safe for concurrent use.
type Cipher struct {
	password []byte
	params   KDFParams
	salt     []byte
	keys     map[string][]byte
}

// NewCipher returns a Cipher for password, or nil when password is empty.
func NewCipher(password string) *Cipher {
	if password == "" {
		return nil
	}
	return newCipherWithParams(password, DefaultKDFParams())
}

func newCipherWithParams(password string, params KDFParams) *Cipher {
	return &Cipher{
		password: []byte(password),
		params:   params,
		keys:     make(map[string][]byte),
	}
}

func (c *Cipher) deriveKey(salt []byte, params KDFParams) []byte {
	cacheKey := fmt.Sprintf("%x/%d/%d/%d", salt, params.Time, params.Memory, params.Threads)
	if key, ok := c.keys[cacheKey]; ok {
		return key
	}
	key := argon2.IDKey(c.password, salt, params.Time, params.Memory, params.Threads, keySize)
	c.keys[cacheKey] = key
	return key
}

// Seal encrypts plaintext into a serialized envelope. The salt is drawn once
// per Cipher; the IV is drawn on every call.
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	if c.salt == nil {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("%w: generating salt: %v", rerrors.ErrEncryptFailed, err)
		}
		c.salt = salt
	}

	aead, err := chacha20poly1305.NewX(c.deriveKey(c.salt, c.params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrEncryptFailed, err)
	}

	iv := make([]byte, aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("%w: generating iv: %v", rerrors.ErrEncryptFailed, err)
	}

	sealed := aead.Seal(nil, iv, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-aead.Overhead()], sealed[len(sealed)-aead.Overhead():]

	env := Envelope{
		Marker:     envelopeMarker,
		Version:    envelopeVersion,
		Algorithm:  envelopeAlgorithm,
		KDF:        envelopeKDF,
		Time:       c.params.Time,
		Memory:     c.params.Memory,
		Threads:    c.params.Threads,
		Salt:       base64.StdEncoding.EncodeToString(c.salt),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Tag:        base64.StdEncoding.EncodeToString(tag),
	}
	return json.Marshal(env)
}

// Open authenticates and decrypts a serialized envelope.
func (c *Cipher) Open(data []byte) ([]byte, error) {
	env, ok := ParseEnvelope(data)
	if !ok {
		return nil, rerrors.ErrInvalidEnvelope
	}
	return c.OpenEnvelope(env)
}

// OpenEnvelope authenticates and decrypts env.
func (c *Cipher) OpenEnvelope(env *Envelope) ([]byte, error) {
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", rerrors.ErrInvalidEnvelope, env.Version)
	}
	if env.Algorithm != envelopeAlgorithm {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", rerrors.ErrInvalidEnvelope, env.Algorithm)
	}
	if env.KDF != envelopeKDF {
		return nil, fmt.Errorf("%w: unsupported kdf %q", rerrors.ErrInvalidEnvelope, env.KDF)
	}
	if env.Time == 0 || env.Threads == 0 || env.Memory == 0 || env.Memory > maxKDFMemory {
		return nil, fmt.Errorf("%w: unacceptable kdf parameters", rerrors.ErrInvalidEnvelope)
	}

	fields := map[string]string{"salt": env.Salt, "iv": env.IV, "ciphertext": env.Ciphertext, "tag": env.Tag}
	decoded := make(map[string][]byte, len(fields))
	for name, value := range fields {
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", rerrors.ErrInvalidEnvelope, name, err)
		}
		decoded[name] = raw
	}

	params := KDFParams{Time: env.Time, Memory: env.Memory, Threads: env.Threads}
	aead, err := chacha20poly1305.NewX(c.deriveKey(decoded["salt"], params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrDecryptFailed, err)
	}
	if len(decoded["iv"]) != aead.NonceSize() || len(decoded["tag"]) != aead.Overhead() {
		return nil, fmt.Errorf("%w: bad iv or tag length", rerrors.ErrInvalidEnvelope)
	}

	sealed := append(decoded["ciphertext"], decoded["tag"]...)
	plaintext, err := aead.Open(nil, decoded["iv"], sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong master password or corrupted data", rerrors.ErrDecryptFailed)
	}
	return plaintext, nil
}
