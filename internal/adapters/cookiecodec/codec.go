package cookiecodec

// Package cookiecodec seals session payloads into tamper-evident cookie values
// using gorilla/securecookie, with one codec per configured secret.

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
)

// ErrNoSecrets is returned when a codec is built without any signing secret.
var ErrNoSecrets = errors.New("cookiecodec: at least one session secret is required")

const (
	hashKeyLen  = 64 // HMAC-SHA256 key
	blockKeyLen = 32 // AES-256 key

	kdfSalt      = "jokeboard/session-cookie/v1"
	kdfInfoHash  = "hash-key"
	kdfInfoBlock = "block-key"
)

// Options configures a Codec.
type Options struct {
	// Name is the cookie name; it is authenticated together with the value.
	Name string
	// Secrets lists signing secrets, current first. Encoding always uses Secrets[0].
	Secrets []string
	// Encrypt additionally encrypts the payload with AES.
	Encrypt bool
	// MaxAge bounds the age of the embedded timestamp. Zero disables the check.
	MaxAge time.Duration
}

// wirePayload is the serialized form inside the cookie. It is only turned into a
// domainauth.Session after the MAC has been verified.
type wirePayload struct {
	UserID string `json:"userId"`
}

// Codec encodes and decodes session cookies. It is immutable after construction
// and safe for concurrent use.
type Codec struct {
	name   string
	codecs []securecookie.Codec
}

// New derives per-secret keys and builds the codec chain.
func New(opts Options) (*Codec, error) {
	secrets := make([]string, 0, len(opts.Secrets))
	for _, s := range opts.Secrets {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) == 0 {
		return nil, ErrNoSecrets
	}
	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New("cookiecodec: cookie name is required")
	}

	codecs := make([]securecookie.Codec, 0, len(secrets))
	for i, secret := range secrets {
		hashKey, blockKey, err := deriveKeys(secret)
		if err != nil {
			return nil, fmt.Errorf("derive keys for secret %d: %w", i, err)
		}
		if !opts.Encrypt {
			blockKey = nil
		}
		sc := securecookie.New(hashKey, blockKey)
		sc.SetSerializer(securecookie.JSONEncoder{})
		sc.MaxAge(int(opts.MaxAge / time.Second))
		codecs = append(codecs, sc)
	}

	return &Codec{name: opts.Name, codecs: codecs}, nil
}

// Name returns the cookie name the codec authenticates.
func (c *Codec) Name() string { return c.name }

// Encode seals sess with the current secret.
func (c *Codec) Encode(sess domainauth.Session) (string, error) {
	v, err := c.codecs[0].Encode(c.name, wirePayload{UserID: sess.UserID})
	if err != nil {
		return "", fmt.Errorf("encode session cookie: %w", err)
	}
	return v, nil
}

// Decode verifies value against every secret, current first.
// Any failure yields ok=false.
func (c *Codec) Decode(value string) (domainauth.Session, bool) {
	if !canonical(value) {
		return domainauth.Session{}, false
	}
	var p wirePayload
	if err := securecookie.DecodeMulti(c.name, value, &p, c.codecs...); err != nil {
		return domainauth.Session{}, false
	}
	if p.UserID == "" {
		return domainauth.Session{}, false
	}
	return domainauth.NewSession(p.UserID), true
}

// canonical rejects values that only decode because the lenient base64 decoder
// ignores trailing bits or line breaks; those would let altered cookies verify.
func canonical(value string) bool {
	if value == "" || strings.ContainsAny(value, "\r\n") {
		return false
	}
	_, err := base64.URLEncoding.Strict().DecodeString(value)
	return err == nil
}

func deriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	hashKey = make([]byte, hashKeyLen)
	if _, err = io.ReadFull(hkdf.New(sha256.New, []byte(secret), []byte(kdfSalt), []byte(kdfInfoHash)), hashKey); err != nil {
		return nil, nil, err
	}
	blockKey = make([]byte, blockKeyLen)
	if _, err = io.ReadFull(hkdf.New(sha256.New, []byte(secret), []byte(kdfSalt), []byte(kdfInfoBlock)), blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}
