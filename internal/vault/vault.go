package vault

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/illarion/twinvault/internal/crypto"
)

// realPlaintext builds the real-side plaintext: the content without decoy files
func realPlaintext(content Content) Content {
	return Content{
		Files:    nonNil(content.Files),
		AuxFiles: []FileRecord{},
		Metadata: cloneMetadata(content.Metadata),
	}
}

// dummyPlaintext builds the decoy-side plaintext with files as its visible files
func dummyPlaintext(files []FileRecord, metadata map[string]string) Content {
	return Content{
		Files:    nonNil(files),
		AuxFiles: []FileRecord{},
		Metadata: cloneMetadata(metadata),
	}
}

func nonNil(files []FileRecord) []FileRecord {
	if files == nil {
		return []FileRecord{}
	}
	return files
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}

// Create builds a new Structure. content.Files go to the real side,
// content.AuxFiles become the visible files of the decoy side.
// An empty dummyPassword creates a structure without a decoy side.
func Create(content Content, realPassword, dummyPassword []byte) (*Structure, error) {
	if len(realPassword) == 0 {
		return nil, ErrEmptyPassword
	}
	hasDummy := len(dummyPassword) > 0
	if hasDummy && crypto.ConstantTimeCompare(realPassword, dummyPassword) {
		return nil, ErrPasswordReuse
	}

	realVault, err := crypto.Encrypt(realPlaintext(content), realPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt real vault: %w", err)
	}

	s := &Structure{
		RealVault: realVault,
		Metadata: Metadata{
			Created:  time.Now().UTC(),
			HasReal:  true,
			HasDummy: hasDummy,
			VaultID:  uuid.NewString(),
		},
	}

	if hasDummy {
		dummyVault, err := crypto.Encrypt(dummyPlaintext(content.AuxFiles, content.Metadata), dummyPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt dummy vault: %w", err)
		}
		s.DummyVault = dummyVault
	}

	return s, nil
}

// AddDummy adds or replaces the decoy side of s. The real password is
// verified against the real container, which is copied unchanged.
func AddDummy(s *Structure, realPassword, dummyPassword []byte, dummyFiles []FileRecord) (*Structure, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	if len(dummyPassword) == 0 {
		return nil, ErrEmptyPassword
	}
	if crypto.ConstantTimeCompare(realPassword, dummyPassword) {
		return nil, ErrPasswordReuse
	}

	var real Content
	if err := crypto.Decrypt(s.RealVault, realPassword, &real); err != nil {
		return nil, ErrAuthentication
	}
	metadata := real.Metadata
	real.Wipe()

	dummyVault, err := crypto.Encrypt(dummyPlaintext(dummyFiles, metadata), dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt dummy vault: %w", err)
	}

	out := s.Clone()
	out.DummyVault = dummyVault
	out.Metadata.HasDummy = true
	return out, nil
}

// Unlock resolves password against s. The real container is always tried
// first, then the decoy container. The two attempts never run concurrently.
func Unlock(s *Structure, password []byte) (Mode, *Content, error) {
	if s == nil {
		return "", nil, ErrNotFound
	}

	if s.RealVault != nil {
		var content Content
		if err := crypto.Decrypt(s.RealVault, password, &content); err == nil {
			return ModeReal, &content, nil
		}
	}

	if s.DummyVault != nil {
		var content Content
		if err := crypto.Decrypt(s.DummyVault, password, &content); err == nil {
			return ModeDummy, &content, nil
		}
	}

	return "", nil, ErrInvalidCredentials
}

// Reseal re-encrypts the side identified by mode with content and password.
// The other container is copied forward verbatim.
func Reseal(s *Structure, mode Mode, content Content, password []byte) (*Structure, error) {
	if s == nil {
		return nil, ErrNotFound
	}

	out := s.Clone()
	switch mode {
	case ModeReal:
		c, err := crypto.Encrypt(realPlaintext(content), password)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt real vault: %w", err)
		}
		out.RealVault = c
		out.Metadata.HasReal = true
	case ModeDummy:
		if s.DummyVault == nil {
			return nil, fmt.Errorf("%w: no dummy container to reseal", ErrMalformedStructure)
		}
		c, err := crypto.Encrypt(dummyPlaintext(content.Files, content.Metadata), password)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt dummy vault: %w", err)
		}
		out.DummyVault = c
	default:
		return nil, fmt.Errorf("unknown vault mode %q", mode)
	}

	out.Metadata.HasDummy = out.DummyVault != nil
	return out, nil
}
