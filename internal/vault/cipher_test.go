package vault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	rerrors "github.com/rediacc/rdc/internal/errors"
)

// testKDFParams keeps argon2 cheap in tests.
var testKDFParams = KDFParams{Time: 1, Memory: 1024, Threads: 1}

func newTestCipher(password string) *Cipher {
	return newCipherWithParams(password, testKDFParams)
}

func TestNewCipherEmptyPassword(t *testing.T) {
	if c := NewCipher(""); c != nil {
		t.Fatalf("NewCipher(\"\") = %v, want nil", c)
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	c := newTestCipher("correct horse")
	plaintext := []byte(`{"token":"s3cr3t"}`)

	sealed, err := c.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if bytes.Contains(sealed, []byte("s3cr3t")) {
		t.Fatalf("sealed envelope leaks plaintext: %s", sealed)
	}

	got, err := newTestCipher("correct horse").Open(sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open() = %s, want %s", got, plaintext)
	}
}

func TestSealUsesFreshIV(t *testing.T) {
	c := newTestCipher("pw")

	first, err := c.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Seal([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(first, second) {
		t.Fatal("two seals of the same plaintext produced identical bytes")
	}

	e1, _ := ParseEnvelope(first)
	e2, _ := ParseEnvelope(second)
	if e1.IV == e2.IV {
		t.Errorf("IV reused: %s", e1.IV)
	}
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := newTestCipher("right").Seal([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = newTestCipher("wrong").Open(sealed)
	if !errors.Is(err, rerrors.ErrDecryptFailed) {
		t.Fatalf("Open() error = %v, want ErrDecryptFailed", err)
	}
}

func TestOpenTamperedCiphertext(t *testing.T) {
	c := newTestCipher("pw")
	sealed, err := c.Seal([]byte(`{"balance":100}`))
	if err != nil {
		t.Fatal(err)
	}

	env, _ := ParseEnvelope(sealed)
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	ciphertext[0] ^= 0xff
	env.Ciphertext = base64.StdEncoding.EncodeToString(ciphertext)
	tampered, _ := json.Marshal(env)

	if _, err := c.Open(tampered); !errors.Is(err, rerrors.ErrDecryptFailed) {
		t.Fatalf("Open() of tampered envelope error = %v, want ErrDecryptFailed", err)
	}
}

func TestOpenRejectsMalformedEnvelopes(t *testing.T) {
	c := newTestCipher("pw")
	valid, err := c.Seal([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	mutate := func(f func(*Envelope)) []byte {
		env, _ := ParseEnvelope(valid)
		f(env)
		data, _ := json.Marshal(env)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("plain text")},
		{"plain object", []byte(`{"hello":"world"}`)},
		{"missing marker", mutate(func(e *Envelope) { e.Marker = 0 })},
		{"unknown version", mutate(func(e *Envelope) { e.Version = 9 })},
		{"unknown algorithm", mutate(func(e *Envelope) { e.Algorithm = "rot13" })},
		{"unknown kdf", mutate(func(e *Envelope) { e.KDF = "md5" })},
		{"huge memory", mutate(func(e *Envelope) { e.Memory = maxKDFMemory + 1 })},
		{"bad base64", mutate(func(e *Envelope) { e.Salt = "%%%" })},
		{"short iv", mutate(func(e *Envelope) { e.IV = "AAAA" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Open(tt.data)
			if !errors.Is(err, rerrors.ErrInvalidEnvelope) {
				t.Errorf("Open() error = %v, want ErrInvalidEnvelope", err)
			}
		})
	}
}

func TestEnvelopeCarriesKDFParams(t *testing.T) {
	sealed, err := newTestCipher("pw").Seal([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	env, ok := ParseEnvelope(sealed)
	if !ok {
		t.Fatalf("ParseEnvelope(%s) = false", sealed)
	}
	if env.Time != testKDFParams.Time || env.Memory != testKDFParams.Memory || env.Threads != testKDFParams.Threads {
		t.Errorf("envelope params = %d/%d/%d, want %+v", env.Time, env.Memory, env.Threads, testKDFParams)
	}
	if env.KDF != "argon2id" || env.Algorithm != "xchacha20-poly1305" {
		t.Errorf("envelope kdf/alg = %s/%s", env.KDF, env.Algorithm)
	}
}
