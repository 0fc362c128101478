package core

import (
	"context"
	"fmt"

	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/vault"
)

// Session is one unlocked side of a vault. It is not safe for concurrent use.
type Session struct {
	svc       *Service
	structure *vault.Structure
	mode      vault.Mode
	content   *vault.Content
	password  []byte
	closed    bool
}

func newSession(svc *Service, st *vault.Structure, mode vault.Mode, content *vault.Content, password []byte) *Session {
	return &Session{
		svc:       svc,
		structure: st,
		mode:      mode,
		content:   content,
		password:  clonePassword(password),
	}
}

// Mode returns the side this session unlocked
func (s *Session) Mode() vault.Mode {
	return s.mode
}

// Structure returns the structure as last saved by this session
func (s *Session) Structure() *vault.Structure {
	return s.structure
}

// Files returns the visible files of the unlocked side
func (s *Session) Files() []vault.FileRecord {
	if s.closed {
		return nil
	}
	return s.content.Files
}

// File returns a visible file by name
func (s *Session) File(name string) (*vault.FileRecord, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	f := s.content.FindFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return f, nil
}

// TotalSize returns the total payload size of the visible files
func (s *Session) TotalSize() int64 {
	if s.closed {
		return 0
	}
	return s.content.TotalSize()
}

// AddFiles adds records to the unlocked side, replacing same-name files,
// then reseals that side and saves the whole structure.
func (s *Session) AddFiles(ctx context.Context, records ...vault.FileRecord) error {
	if s.closed {
		return ErrSessionClosed
	}

	next := s.copyContent()
	next.AddFiles(records...)
	return s.commit(ctx, next)
}

// RemoveFiles removes files by name and returns the names actually removed.
// Unknown names are reported with ErrFileNotFound after the others are saved.
func (s *Session) RemoveFiles(ctx context.Context, names ...string) ([]string, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	next := s.copyContent()
	var removed, missing []string
	for _, name := range names {
		if next.RemoveFile(name) {
			removed = append(removed, name)
		} else {
			missing = append(missing, name)
		}
	}

	if len(removed) > 0 {
		if err := s.commit(ctx, next); err != nil {
			return nil, err
		}
	}
	if len(missing) > 0 {
		return removed, fmt.Errorf("%w: %v", ErrFileNotFound, missing)
	}
	return removed, nil
}

// Close wipes the session's password and plaintext
func (s *Session) Close() {
	if s.closed {
		return
	}
	crypto.ClearBytes(s.password)
	s.content.Wipe()
	s.content = nil
	s.closed = true
}

// copyContent returns a copy whose file list can change without touching
// the session's current content
func (s *Session) copyContent() vault.Content {
	return vault.Content{
		Files:    append([]vault.FileRecord(nil), s.content.Files...),
		Metadata: s.content.Metadata,
	}
}

// commit reseals the unlocked side with next and saves the structure.
// The session only adopts next once the save succeeded.
func (s *Session) commit(ctx context.Context, next vault.Content) error {
	pw := clonePassword(s.password)
	st, err := offload(ctx, func() (*vault.Structure, error) {
		defer crypto.ClearBytes(pw)
		return vault.Reseal(s.structure, s.mode, next, pw)
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to reseal vault: %w", err)
	}

	if err := s.svc.SaveVault(ctx, st); err != nil {
		return err
	}

	s.structure = st
	s.content = &next
	s.svc.log.Debug().Int("files", len(next.Files)).Msg("vault resealed")
	return nil
}
