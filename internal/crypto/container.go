package crypto

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrDecryption         = errors.New("invalid password or corrupted data")
	ErrMalformedContainer = errors.New("malformed container")
)

// Container is one self-contained encrypted record. All fields are
// hex-encoded so the container can be embedded in a JSON document.
type Container struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// Validate reports whether every field is present and well-formed
func (c *Container) Validate() error {
	if _, _, _, ok := c.decode(); !ok {
		return ErrMalformedContainer
	}
	return nil
}

// Clone returns a copy of the container
func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}

// decode returns the raw ciphertext, IV and salt of the container
func (c *Container) decode() (ciphertext, iv, salt []byte, ok bool) {
	if c == nil || c.Ciphertext == "" || c.IV == "" || c.Salt == "" {
		return nil, nil, nil, false
	}

	var err error
	if ciphertext, err = hex.DecodeString(c.Ciphertext); err != nil {
		return nil, nil, nil, false
	}
	if iv, err = hex.DecodeString(c.IV); err != nil || len(iv) != IVSize {
		return nil, nil, nil, false
	}
	if salt, err = hex.DecodeString(c.Salt); err != nil || len(salt) != SaltSize {
		return nil, nil, nil, false
	}
	return ciphertext, iv, salt, true
}

// Encrypt serializes v to JSON and encrypts it under a key derived from
// password with a fresh salt and IV.
func Encrypt(v any, password []byte) (*Container, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize plaintext: %w", err)
	}
	defer ClearBytes(plaintext)

	salt, err := GenerateRandom(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	iv, err := GenerateRandom(IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	enc := NewEncryptor(DeriveKey(password, salt))
	defer enc.Destroy()

	ciphertext, err := enc.Encrypt(iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	return &Container{
		Ciphertext: hex.EncodeToString(ciphertext),
		IV:         hex.EncodeToString(iv),
		Salt:       hex.EncodeToString(salt),
	}, nil
}

// Decrypt decrypts the container with password and unmarshals the JSON
// plaintext into v. Every failure is reported as ErrDecryption.
func Decrypt(c *Container, password []byte, v any) error {
	ciphertext, iv, salt, ok := c.decode()
	if !ok {
		// Pay for the key derivation anyway so malformed input costs the
		// same as a wrong password.
		salt = make([]byte, SaltSize)
	}

	enc := NewEncryptor(DeriveKey(password, salt))
	defer enc.Destroy()

	if !ok {
		return ErrDecryption
	}

	plaintext, err := enc.Decrypt(iv, ciphertext)
	if err != nil {
		return ErrDecryption
	}
	defer ClearBytes(plaintext)

	if err := json.Unmarshal(plaintext, v); err != nil {
		return ErrDecryption
	}
	return nil
}
