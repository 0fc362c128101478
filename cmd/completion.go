package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_twinvault() {
    local cur prev words cword
    _init_completion || return

    local commands="init ls add rm get diff decoy status compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        init)
            COMPREPLY=($(compgen -W "--decoy" -- "$cur"))
            ;;
        add|decoy)
            _filedir
            ;;
        get)
            if [[ "$prev" == "--out" ]]; then
                _filedir -d
            elif [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--out" -- "$cur"))
            fi
            ;;
        diff)
            _filedir
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _twinvault twinvault
`

const zshCompletion = `#compdef twinvault

_twinvault() {
    local -a commands
    commands=(
        'init:Create a new vault'
        'ls:List files in the vault'
        'add:Store files in the vault'
        'rm:Remove files from the vault'
        'get:Write files from the vault to disk'
        'diff:Compare a vault file with a local file'
        'decoy:Set the decoy password and files'
        'status:Show vault status'
        'compact:Compact vault to reclaim disk space'
        'keyring:Manage password in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'twinvault commands' commands
            ;;
        args)
            case "${words[2]}" in
                init)
                    _arguments '--decoy[Also set a decoy password]'
                    ;;
                add|decoy|diff)
                    _arguments '*:file:_files'
                    ;;
                get)
                    _arguments '--out[Target directory]:directory:_files -/'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'twinvault commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_twinvault "$@"
`

const fishCompletion = `# twinvault fish completions

set -l commands init ls add rm get diff decoy status compact keyring help completion

complete -c twinvault -f

# Commands
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a new vault'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List files in the vault'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a add -d 'Store files in the vault'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove files from the vault'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a get -d 'Write files to disk'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare with a local file'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a decoy -d 'Set decoy password and files'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c twinvault -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

complete -c twinvault -n "__fish_seen_subcommand_from init" -l decoy -d 'Also set a decoy password'
complete -c twinvault -n "__fish_seen_subcommand_from add decoy diff" -F
complete -c twinvault -n "__fish_seen_subcommand_from get" -l out -r -a "(__fish_complete_directories)" -d 'Target directory'

# keyring subcommands
complete -c twinvault -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c twinvault -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c twinvault -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
