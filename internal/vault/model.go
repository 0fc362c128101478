package vault

import (
	"fmt"
	"time"

	"github.com/illarion/twinvault/internal/crypto"
)

// Mode identifies which side of a Structure a password opened
type Mode string

const (
	ModeReal  Mode = "real"
	ModeDummy Mode = "dummy"
)

// FileRecord is a single file stored inside one side of the vault
type FileRecord struct {
	Name      string    `json:"name"`
	Payload   []byte    `json:"payload"`
	Size      int64     `json:"size"`
	DateAdded time.Time `json:"dateAdded"`
}

// Content is the plaintext of one container.
// AuxFiles carries the decoy files into Create and is always empty once encrypted.
type Content struct {
	Files    []FileRecord      `json:"files"`
	AuxFiles []FileRecord      `json:"auxFiles"`
	Metadata map[string]string `json:"metadata"`
}

// Metadata is stored unencrypted next to the containers
type Metadata struct {
	Created  time.Time `json:"created"`
	HasReal  bool      `json:"hasReal"`
	HasDummy bool      `json:"hasDummy"`
	VaultID  string    `json:"vaultId"`
}

// Structure is the persisted dual-vault artifact
type Structure struct {
	RealVault  *crypto.Container `json:"realVault"`
	DummyVault *crypto.Container `json:"dummyVault"`
	Metadata   Metadata          `json:"metadata"`
}

// Validate checks the structural invariants of a loaded Structure
func (s *Structure) Validate() error {
	if s == nil {
		return ErrNotFound
	}
	if s.RealVault == nil || !s.Metadata.HasReal {
		return fmt.Errorf("%w: real container missing", ErrMalformedStructure)
	}
	if err := s.RealVault.Validate(); err != nil {
		return fmt.Errorf("%w: real container: %v", ErrMalformedStructure, err)
	}
	if s.Metadata.HasDummy != (s.DummyVault != nil) {
		return fmt.Errorf("%w: hasDummy does not match dummy container", ErrMalformedStructure)
	}
	if s.DummyVault != nil {
		if err := s.DummyVault.Validate(); err != nil {
			return fmt.Errorf("%w: dummy container: %v", ErrMalformedStructure, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the structure
func (s *Structure) Clone() *Structure {
	if s == nil {
		return nil
	}
	return &Structure{
		RealVault:  s.RealVault.Clone(),
		DummyVault: s.DummyVault.Clone(),
		Metadata:   s.Metadata,
	}
}

// ContainerCount returns how many containers the structure holds
func (s *Structure) ContainerCount() int {
	n := 0
	if s.RealVault != nil {
		n++
	}
	if s.DummyVault != nil {
		n++
	}
	return n
}

// AddFiles adds records, replacing any existing record with the same name
func (c *Content) AddFiles(records ...FileRecord) {
	for _, rec := range records {
		if rec.Size < 0 {
			rec.Size = 0
		}
		if existing := c.FindFile(rec.Name); existing != nil {
			*existing = rec
			continue
		}
		c.Files = append(c.Files, rec)
	}
}

// RemoveFile removes a record by name
func (c *Content) RemoveFile(name string) bool {
	for i, f := range c.Files {
		if f.Name == name {
			c.Files = append(c.Files[:i], c.Files[i+1:]...)
			return true
		}
	}
	return false
}

// FindFile finds a record by name
func (c *Content) FindFile(name string) *FileRecord {
	for i := range c.Files {
		if c.Files[i].Name == name {
			return &c.Files[i]
		}
	}
	return nil
}

// Names returns the names of all visible files in order
func (c *Content) Names() []string {
	names := make([]string, len(c.Files))
	for i, f := range c.Files {
		names[i] = f.Name
	}
	return names
}

// TotalSize returns the sum of the visible files' sizes
func (c *Content) TotalSize() int64 {
	var total int64
	for _, f := range c.Files {
		total += f.Size
	}
	return total
}

// Wipe zeroes every payload held by the content
func (c *Content) Wipe() {
	for i := range c.Files {
		crypto.ClearBytes(c.Files[i].Payload)
	}
	for i := range c.AuxFiles {
		crypto.ClearBytes(c.AuxFiles[i].Payload)
	}
}
