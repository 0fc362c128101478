package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/twinvault/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "ls":
		runLs(ctx, os.Args[2:])
	case "add":
		runAdd(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "get":
		runGet(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "decoy":
		runDecoy(ctx, os.Args[2:])
	case "status":
		runStatus(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// parseFlags parses args with fs and exits on error
func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runInit(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	decoy := fs.Bool("decoy", false, "Also set a decoy password")
	parseFlags(fs, args)

	cmd.Init(ctx, *decoy)
}

func runLs(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Ls(ctx)
}

func runAdd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Add(ctx, fs.Args())
}

func runRm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Remove(ctx, fs.Args())
}

func runGet(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	out := fs.String("out", ".", "Directory to write files to")
	parseFlags(fs, args)

	cmd.Get(ctx, *out, fs.Args())
}

func runDiff(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	parseFlags(fs, args)

	switch fs.NArg() {
	case 1:
		cmd.Diff(ctx, fs.Arg(0), "")
	case 2:
		cmd.Diff(ctx, fs.Arg(0), fs.Arg(1))
	default:
		fmt.Fprintln(os.Stderr, "Usage: twinvault diff <name> [local-file]")
		os.Exit(1)
	}
}

func runDecoy(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("decoy", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Decoy(ctx, fs.Args())
}

func runStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Status(ctx)
}

func runCompact(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Compact(ctx)
}

func runKeyring(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: twinvault keyring <save|delete|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave(ctx)
	case "delete":
		cmd.KeyringDelete(ctx)
	case "status":
		cmd.KeyringStatus(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: twinvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("twinvault - encrypted file vault with a decoy password")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  twinvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a new vault")
	fmt.Println("  ls          List files in the vault")
	fmt.Println("  add         Store files in the vault")
	fmt.Println("  rm          Remove files from the vault")
	fmt.Println("  get         Write files from the vault to disk")
	fmt.Println("  diff        Compare a vault file with a local file")
	fmt.Println("  decoy       Set the decoy password and decoy files")
	fmt.Println("  status      Show vault status (no password needed)")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Manage password in OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  twinvault init --decoy           # Create vault with a decoy password")
	fmt.Println("  twinvault add id_ed25519 .env    # Store files")
	fmt.Println("  twinvault get --out /tmp/x .env  # Write a file to /tmp/x")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TWINVAULT_PASSWORD   Password to use instead of prompting")
	fmt.Println("  TWINVAULT_DATA_DIR   Directory holding the vault")
	fmt.Println("  TWINVAULT_FILE       Vault file name")
	fmt.Println("  TWINVAULT_BACKEND    Storage backend: json (default) or bolt")
	fmt.Println("  TWINVAULT_LOG_LEVEL  debug, info, warn (default), error")
	fmt.Println()
	fmt.Println("Use 'twinvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("twinvault init [--decoy]")
		fmt.Println()
		fmt.Println("Creates an empty vault at the configured location.")
		fmt.Println("Prompts for a password that will be used for encryption.")
		fmt.Println("With --decoy, also prompts for a second password that opens")
		fmt.Println("a separate set of files. The two passwords must differ.")
		fmt.Println("Passwords are not stored anywhere - you must remember them.")
	case "ls":
		fmt.Println("twinvault ls")
		fmt.Println()
		fmt.Println("Lists the files the given password opens.")
	case "add":
		fmt.Println("twinvault add <file> [file...]")
		fmt.Println()
		fmt.Println("Encrypts and stores files in the vault under their base name.")
		fmt.Println("A stored file with the same name is replaced. Directories are skipped.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  twinvault add .env")
		fmt.Println("  twinvault add ~/.ssh/id_ed25519 notes.txt")
	case "rm":
		fmt.Println("twinvault rm <name> [name...]")
		fmt.Println()
		fmt.Println("Removes files from the vault.")
	case "get":
		fmt.Println("twinvault get [--out DIR] [name...]")
		fmt.Println()
		fmt.Println("Decrypts files and writes them to DIR (default: current directory).")
		fmt.Println("Without names, writes every file. Existing files are never overwritten.")
		fmt.Println("Warns when a written file is not ignored by git.")
	case "diff":
		fmt.Println("twinvault diff <name> [local-file]")
		fmt.Println()
		fmt.Println("Shows a line diff between a vault file and a local file.")
		fmt.Println("local-file defaults to <name> in the current directory.")
	case "decoy":
		fmt.Println("twinvault decoy [file...]")
		fmt.Println()
		fmt.Println("Sets the decoy password and the files it opens.")
		fmt.Println("Requires the vault password. Replaces any previous decoy files.")
	case "status":
		fmt.Println("twinvault status")
		fmt.Println()
		fmt.Println("Shows the vault location, backend, creation time and size.")
		fmt.Println("Does not require a password.")
	case "compact":
		fmt.Println("twinvault compact")
		fmt.Println()
		fmt.Println("Compacts the bolt database to reclaim unused disk space.")
		fmt.Println("This is done automatically after 'rm'.")
		fmt.Println("Does not require a password.")
	case "keyring":
		fmt.Println("twinvault keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Stores a vault password in the OS keyring so that commands")
		fmt.Println("do not prompt for it.")
	case "completion":
		fmt.Println("twinvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(twinvault completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(twinvault completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  twinvault completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
