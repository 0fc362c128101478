package crypto

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string            `json:"name"`
	Data  []byte            `json:"data"`
	Count int               `json:"count"`
	Tags  map[string]string `json:"tags"`
}

func samplePayload() payload {
	return payload{
		Name:  "report.pdf",
		Data:  []byte{0x00, 0x01, 0xfe, 0xff},
		Count: 3,
		Tags:  map[string]string{"k": "v"},
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	k1 := DeriveKey([]byte("password"), salt)
	k2 := DeriveKey([]byte("password"), salt)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_SaltAndPasswordSensitive(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	base := DeriveKey([]byte("password"), salt1)

	assert.NotEqual(t, base, DeriveKey([]byte("password"), salt2))
	assert.NotEqual(t, base, DeriveKey([]byte("Password"), salt1))
}

func TestPKCS7(t *testing.T) {
	tests := []struct {
		name   string
		length int
		padLen int
	}{
		{"empty", 0, 16},
		{"one byte", 1, 15},
		{"block minus one", 15, 1},
		{"full block", 16, 16},
		{"two blocks plus", 33, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{'a'}, tt.length)
			padded := pkcs7Pad(data, aes.BlockSize)

			require.Equal(t, 0, len(padded)%aes.BlockSize)
			assert.Equal(t, byte(tt.padLen), padded[len(padded)-1])

			unpadded, err := pkcs7Unpad(padded, aes.BlockSize)
			require.NoError(t, err)
			assert.Equal(t, data, unpadded)
		})
	}
}

func TestPKCS7_RejectsBadPadding(t *testing.T) {
	block := bytes.Repeat([]byte{'a'}, aes.BlockSize)

	zero := append([]byte(nil), block...)
	zero[len(zero)-1] = 0
	_, err := pkcs7Unpad(zero, aes.BlockSize)
	assert.ErrorIs(t, err, errBadPadding)

	tooLong := append([]byte(nil), block...)
	tooLong[len(tooLong)-1] = 17
	_, err = pkcs7Unpad(tooLong, aes.BlockSize)
	assert.ErrorIs(t, err, errBadPadding)

	inconsistent := append([]byte(nil), block...)
	inconsistent[len(inconsistent)-1] = 3
	inconsistent[len(inconsistent)-2] = 3
	inconsistent[len(inconsistent)-3] = 2
	_, err = pkcs7Unpad(inconsistent, aes.BlockSize)
	assert.ErrorIs(t, err, errBadPadding)

	_, err = pkcs7Unpad(block[:5], aes.BlockSize)
	assert.ErrorIs(t, err, errBadPadding)
}

func TestEncryptor_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, KeySize)
	iv := bytes.Repeat([]byte{0x09}, IVSize)
	plaintext := []byte("attack at dawn")

	enc := NewEncryptor(append([]byte(nil), key...))
	ciphertext, err := enc.Encrypt(iv, plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, aes.BlockSize)
	assert.Equal(t, []byte("attack at dawn"), plaintext, "plaintext must not be modified")

	decrypted, err := enc.Decrypt(iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	enc.Destroy()
	assert.Equal(t, make([]byte, KeySize), enc.key)
}

func TestEncryptor_RejectsShortIV(t *testing.T) {
	enc := NewEncryptor(bytes.Repeat([]byte{0x07}, KeySize))
	defer enc.Destroy()

	_, err := enc.Encrypt([]byte("short"), []byte("data"))
	assert.Error(t, err)
}

func TestContainer_RoundTrip(t *testing.T) {
	in := samplePayload()

	c, err := Encrypt(in, []byte("correct horse"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	var out payload
	require.NoError(t, Decrypt(c, []byte("correct horse"), &out))
	assert.Equal(t, in, out)
}

func TestContainer_FieldSizes(t *testing.T) {
	c, err := Encrypt(samplePayload(), []byte("pw"))
	require.NoError(t, err)

	iv, err := hex.DecodeString(c.IV)
	require.NoError(t, err)
	salt, err := hex.DecodeString(c.Salt)
	require.NoError(t, err)
	ct, err := hex.DecodeString(c.Ciphertext)
	require.NoError(t, err)

	assert.Len(t, iv, IVSize)
	assert.Len(t, salt, SaltSize)
	assert.Zero(t, len(ct)%aes.BlockSize)
}

func TestContainer_WrongPassword(t *testing.T) {
	c, err := Encrypt(samplePayload(), []byte("password1"))
	require.NoError(t, err)

	var out payload
	err = Decrypt(c, []byte("password2"), &out)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestContainer_Freshness(t *testing.T) {
	in := samplePayload()

	c1, err := Encrypt(in, []byte("same"))
	require.NoError(t, err)
	c2, err := Encrypt(in, []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, c1.IV, c2.IV)
	assert.NotEqual(t, c1.Salt, c2.Salt)
	assert.NotEqual(t, c1.Ciphertext, c2.Ciphertext)
}

func TestContainer_UniformFailures(t *testing.T) {
	good, err := Encrypt(samplePayload(), []byte("pw"))
	require.NoError(t, err)

	corrupted := good.Clone()
	raw, _ := hex.DecodeString(corrupted.Ciphertext)
	raw[len(raw)-1] ^= 0xff
	corrupted.Ciphertext = hex.EncodeToString(raw)

	// Valid padding and encryption, but not the expected JSON shape.
	notJSON, err := Encrypt("just a string", []byte("pw"))
	require.NoError(t, err)

	cases := map[string]*Container{
		"nil":            nil,
		"missing iv":     {Ciphertext: good.Ciphertext, Salt: good.Salt},
		"missing salt":   {Ciphertext: good.Ciphertext, IV: good.IV},
		"missing cipher": {IV: good.IV, Salt: good.Salt},
		"bad hex":        {Ciphertext: "zz", IV: good.IV, Salt: good.Salt},
		"short iv":       {Ciphertext: good.Ciphertext, IV: "00", Salt: good.Salt},
		"corrupted":      corrupted,
		"wrong shape":    notJSON,
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			var out payload
			err := Decrypt(c, []byte("pw"), &out)
			require.Error(t, err)
			assert.Same(t, ErrDecryption, err)
			assert.Equal(t, "invalid password or corrupted data", err.Error())
		})
	}
}

func TestContainer_Validate(t *testing.T) {
	var nilContainer *Container
	assert.ErrorIs(t, nilContainer.Validate(), ErrMalformedContainer)
	assert.ErrorIs(t, (&Container{}).Validate(), ErrMalformedContainer)

	c, err := Encrypt(samplePayload(), []byte("pw"))
	require.NoError(t, err)
	assert.NoError(t, c.Validate())

	dup := c.Clone()
	assert.Equal(t, c, dup)
	assert.NotSame(t, c, dup)
}

func TestConstantTimeCompare(t *testing.T) {
	assert.True(t, ConstantTimeCompare([]byte("abc"), []byte("abc")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("abcd")))
}

func TestClearBytes(t *testing.T) {
	b := []byte("secret")
	ClearBytes(b)
	assert.Equal(t, make([]byte, 6), b)
}
