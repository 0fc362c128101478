package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/illarion/twinvault/internal/config"
	"github.com/illarion/twinvault/internal/core"
	"github.com/illarion/twinvault/internal/crypto"
	"github.com/illarion/twinvault/internal/keyring"
	"github.com/illarion/twinvault/internal/logger"
	"github.com/illarion/twinvault/internal/security"
	"github.com/illarion/twinvault/internal/storage"
	"github.com/illarion/twinvault/internal/vault"
)

// EnvFile is loaded from the working directory when present
const EnvFile = ".env"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)

	errSaveFailed = errors.New("failed to save vault, try again")
)

// PasswordSource tells where a password came from
type PasswordSource int

const (
	SourceEnv PasswordSource = iota
	SourceKeyring
	SourcePrompt
)

// App bundles what every command needs
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   storage.Store
	Service *core.Service
}

// OpenApp loads configuration and opens the configured store. Exits on error.
func OpenApp() *App {
	cfg, err := config.Load(EnvFile)
	if err != nil {
		HandleError(err)
	}

	log := logger.NewConsole(cfg.LogLevel)
	store, err := storage.Open(cfg.Backend, cfg.VaultPath(), log)
	if err != nil {
		HandleError(err)
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Service: core.NewService(store, log),
	}
}

// Close releases the store
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Log.Warn().Err(err).Msg("failed to close store")
	}
}

// VaultID returns the identifier of the stored vault, or "" when there is none
func (a *App) VaultID(ctx context.Context) string {
	st, err := a.Service.LoadVault(ctx)
	if err != nil || st == nil {
		return ""
	}
	return st.Metadata.VaultID
}

// GetPassword retrieves password from environment or prompts user.
// The caller is responsible for calling crypto.ClearBytes on the returned password.
func GetPassword(prompt string) ([]byte, PasswordSource, error) {
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, SourceEnv, nil
	}

	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, SourcePrompt, err
	}
	return password, SourcePrompt, nil
}

// GetPasswordForInit reads a new password, from the environment or
// with confirmation on the terminal
func GetPasswordForInit(prompt string) ([]byte, error) {
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, nil
	}
	return core.ReadPasswordConfirm(prompt)
}

// OpenSession unlocks the vault. Password sources are tried in order:
// environment, keyring, prompt. A keyring entry that no longer opens the
// vault falls back to the prompt. The caller owns the returned password.
func OpenSession(ctx context.Context, a *App) (*core.Session, []byte, PasswordSource) {
	if password := core.GetPasswordFromEnv(); password != nil {
		sess, err := a.Service.Open(ctx, password)
		if err != nil {
			crypto.ClearBytes(password)
			HandleError(err)
		}
		return sess, password, SourceEnv
	}

	if id := a.VaultID(ctx); id != "" {
		password, err := keyring.GetPassword(id)
		switch {
		case err == nil:
			sess, err := a.Service.Open(ctx, password)
			if err == nil {
				return sess, password, SourceKeyring
			}
			crypto.ClearBytes(password)
			if !errors.Is(err, vault.ErrInvalidCredentials) {
				HandleError(err)
			}
			warnColor.Fprintln(os.Stderr, "Password in keyring no longer opens this vault")
		case !errors.Is(err, keyring.ErrNotFound):
			a.Log.Debug().Err(err).Msg("keyring unavailable")
		}
	}

	password, err := core.ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	sess, err := a.Service.Open(ctx, password)
	if err != nil {
		crypto.ClearBytes(password)
		HandleError(err)
	}
	return sess, password, SourcePrompt
}

// OfferToSavePassword asks whether to remember a prompted password
func OfferToSavePassword(vaultID string, password []byte) {
	if vaultID == "" || !core.IsTerminal() || keyring.HasPassword(vaultID) {
		return
	}

	fmt.Fprint(os.Stderr, "Save password to OS keyring? [y/N]: ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		return
	}

	if err := keyring.SavePassword(vaultID, password); err != nil {
		warnColor.Fprintf(os.Stderr, "Could not save to keyring: %s\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Password saved to keyring")
}

// saveError marks persistence failures of a mutating command
func saveError(err error) error {
	if errors.Is(err, storage.ErrPersistence) {
		return fmt.Errorf("%w: %w", errSaveFailed, err)
	}
	return err
}

// HandleError prints err for the user and exits
func HandleError(err error) {
	errorColor.Fprint(os.Stderr, "Error: ")
	switch {
	case errors.Is(err, errSaveFailed):
		fmt.Fprintln(os.Stderr, errSaveFailed)
	case errors.Is(err, vault.ErrNotFound):
		fmt.Fprintln(os.Stderr, "no vault found")
		fmt.Fprintln(os.Stderr, "Run 'twinvault init' first")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintln(os.Stderr, "a vault already exists at this location")
		fmt.Fprintln(os.Stderr, "Use 'twinvault status' to see it")
	case errors.Is(err, vault.ErrInvalidCredentials):
		fmt.Fprintln(os.Stderr, "invalid password")
	case errors.Is(err, vault.ErrPasswordReuse):
		fmt.Fprintln(os.Stderr, "decoy password must differ from the vault password")
	case errors.Is(err, vault.ErrAuthentication):
		fmt.Fprintln(os.Stderr, "wrong password")
	case errors.Is(err, vault.ErrEmptyPassword):
		fmt.Fprintln(os.Stderr, "password must not be empty")
	case errors.Is(err, vault.ErrMalformedStructure):
		fmt.Fprintln(os.Stderr, "vault file is corrupted")
	case errors.Is(err, security.ErrFileExists):
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Remove it or choose another directory with --out")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
