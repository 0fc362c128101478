package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/storage"
	"github.com/illarion/twinvault/internal/vault"
)

// Engine is the set of operations the presentation layer may invoke
type Engine interface {
	Encrypt(ctx context.Context, data any, password []byte) (*crypto.Container, error)
	Decrypt(ctx context.Context, c *crypto.Container, password []byte, out any) error
	CreateDualVault(ctx context.Context, content vault.Content, realPassword, dummyPassword []byte) (*vault.Structure, error)
	ValidatePassword(ctx context.Context, s *vault.Structure, password []byte) UnlockResult
	AddDummyPassword(ctx context.Context, s *vault.Structure, realPassword, dummyPassword []byte, dummyFiles []vault.FileRecord) (*vault.Structure, error)
	SaveVault(ctx context.Context, s *vault.Structure) error
	LoadVault(ctx context.Context) (*vault.Structure, error)
}

// UnlockResult is the outcome of ValidatePassword
type UnlockResult struct {
	Success bool
	Mode    vault.Mode
	Content *vault.Content
	Error   string
}

// Service implements Engine on top of a Store
type Service struct {
	store storage.Store
	log   *logger.Logger
}

var _ Engine = (*Service)(nil)

// NewService creates a Service persisting through store
func NewService(store storage.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.Named("engine"),
	}
}

// Store returns the underlying store
func (s *Service) Store() storage.Store {
	return s.store
}

// offload runs fn on its own goroutine and waits for it or for ctx.
// When ctx wins, the late result is handed to discard.
func offload[T any](ctx context.Context, fn func() (T, error), discard func(T)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		if discard != nil {
			go func() {
				if r := <-done; r.err == nil {
					discard(r.v)
				}
			}()
		}
		return zero, ctx.Err()
	}
}

// clonePassword gives a worker goroutine its own copy of a password, so the
// caller may clear its buffer as soon as the call returns.
func clonePassword(p []byte) []byte {
	return append([]byte(nil), p...)
}

func wipeContent(c *vault.Content) {
	if c != nil {
		c.Wipe()
	}
}

// Encrypt encrypts data under password into a fresh container
func (s *Service) Encrypt(ctx context.Context, data any, password []byte) (*crypto.Container, error) {
	pw := clonePassword(password)
	return offload(ctx, func() (*crypto.Container, error) {
		defer crypto.ClearBytes(pw)
		return crypto.Encrypt(data, pw)
	}, nil)
}

// Decrypt decrypts c into out. Failures are reported as crypto.ErrDecryption.
func (s *Service) Decrypt(ctx context.Context, c *crypto.Container, password []byte, out any) error {
	pw := clonePassword(password)
	raw, err := offload(ctx, func() (json.RawMessage, error) {
		defer crypto.ClearBytes(pw)
		var raw json.RawMessage
		err := crypto.Decrypt(c, pw, &raw)
		return raw, err
	}, func(raw json.RawMessage) { crypto.ClearBytes(raw) })
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(raw)

	// out is only written on the caller's goroutine
	if err := json.Unmarshal(raw, out); err != nil {
		return crypto.ErrDecryption
	}
	return nil
}

// CreateDualVault builds a new structure from content
func (s *Service) CreateDualVault(ctx context.Context, content vault.Content, realPassword, dummyPassword []byte) (*vault.Structure, error) {
	realPw, dummyPw := clonePassword(realPassword), clonePassword(dummyPassword)
	start := time.Now()
	st, err := offload(ctx, func() (*vault.Structure, error) {
		defer crypto.ClearBytes(realPw)
		defer crypto.ClearBytes(dummyPw)
		return vault.Create(content, realPw, dummyPw)
	}, nil)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("containers", st.ContainerCount()).Dur("took", time.Since(start)).Msg("vault created")
	return st, nil
}

// ValidatePassword resolves password against st. It never returns an
// error; failures are reported in the result.
func (s *Service) ValidatePassword(ctx context.Context, st *vault.Structure, password []byte) UnlockResult {
	if st == nil {
		return UnlockResult{Error: "no vault found"}
	}

	type unlocked struct {
		mode    vault.Mode
		content *vault.Content
	}

	pw := clonePassword(password)
	start := time.Now()
	res, err := offload(ctx, func() (unlocked, error) {
		defer crypto.ClearBytes(pw)
		mode, content, err := vault.Unlock(st, pw)
		return unlocked{mode, content}, err
	}, func(u unlocked) { wipeContent(u.content) })

	s.log.Debug().Dur("took", time.Since(start)).Bool("success", err == nil).Msg("password validated")

	switch {
	case err == nil:
		return UnlockResult{Success: true, Mode: res.mode, Content: res.content}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return UnlockResult{Error: err.Error()}
	default:
		return UnlockResult{Error: vault.ErrInvalidCredentials.Error()}
	}
}

// AddDummyPassword adds or replaces the decoy side of st
func (s *Service) AddDummyPassword(ctx context.Context, st *vault.Structure, realPassword, dummyPassword []byte, dummyFiles []vault.FileRecord) (*vault.Structure, error) {
	realPw, dummyPw := clonePassword(realPassword), clonePassword(dummyPassword)
	out, err := offload(ctx, func() (*vault.Structure, error) {
		defer crypto.ClearBytes(realPw)
		defer crypto.ClearBytes(dummyPw)
		return vault.AddDummy(st, realPw, dummyPw, dummyFiles)
	}, nil)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("files", len(dummyFiles)).Msg("decoy side updated")
	return out, nil
}

// SaveVault persists st, replacing any previous structure
func (s *Service) SaveVault(ctx context.Context, st *vault.Structure) error {
	return s.store.Save(ctx, st)
}

// LoadVault returns the persisted structure, or nil when none exists
func (s *Service) LoadVault(ctx context.Context) (*vault.Structure, error) {
	st, err := s.store.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return st, err
}

// Init creates and saves an empty vault. An empty dummyPassword creates
// a vault without a decoy side.
func (s *Service) Init(ctx context.Context, realPassword, dummyPassword []byte) (*vault.Structure, error) {
	if s.store.Exists() {
		return nil, ErrAlreadyExists
	}

	st, err := s.CreateDualVault(ctx, vault.Content{}, realPassword, dummyPassword)
	if err != nil {
		return nil, err
	}
	if err := s.SaveVault(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Open loads the vault and unlocks it with password
func (s *Service) Open(ctx context.Context, password []byte) (*Session, error) {
	st, err := s.LoadVault(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, vault.ErrNotFound
	}

	res := s.ValidatePassword(ctx, st, password)
	if !res.Success {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, vault.ErrInvalidCredentials
	}

	return newSession(s, st, res.Mode, res.Content, password), nil
}

// AddDecoy loads the vault, sets its decoy side and saves it
func (s *Service) AddDecoy(ctx context.Context, realPassword, dummyPassword []byte, dummyFiles []vault.FileRecord) error {
	st, err := s.LoadVault(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return vault.ErrNotFound
	}

	updated, err := s.AddDummyPassword(ctx, st, realPassword, dummyPassword, dummyFiles)
	if err != nil {
		return err
	}
	if err := s.SaveVault(ctx, updated); err != nil {
		return fmt.Errorf("failed to save vault: %w", err)
	}
	return nil
}
