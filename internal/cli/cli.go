// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for lumino.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdList
	CmdExport
	CmdImport
	CmdClear
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string

	// Command-specific
	Query      string
	File       string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --format, --output)
	Options map[string]string
}

const usageText = `lumino - terminal chat for the Gemini API

Lumino keeps your conversations on your own disk and talks to the
Google generative language API for replies.

Usage:
  lumino                       Start TUI (default)
  lumino chat                  Interactive chat in the current terminal
  lumino list                  List saved chats
  lumino export <n>            Export a chat to a file
  lumino import <file>         Import a previously exported chat
  lumino clear --confirm       Delete all chats
  lumino config [show|set|path] Configuration
  lumino version               Show version
  lumino help                  Show this help

List Command:
  lumino list                  List all chats, newest first, favorites on top
  lumino list --favorites      Favorites only
  lumino list --search TEXT    Filter by title substring

Export / Import:
  lumino export 1              Export the first listed chat as JSON
    --format json|md           Export format (default: json)
    --output DIR               Output directory (default: current)
  lumino import chat.json      Import an exported chat as a new chat

Config Commands:
  lumino config show           Show current configuration (API key masked)
  lumino config set KEY VALUE  Set a configuration value
  lumino config set api-key    Prompt for the API key without echo
  lumino config path           Print the config file location

  Keys: api-key, model, temperature, max-tokens, theme, font-size,
        enter-to-send, auto-scroll, language

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --model NAME    Override the configured model for this run

Environment:
  LUMINO_API_KEY / GEMINI_API_KEY   API key (overrides config and saved settings)
  LUMINO_DATA_DIR                   Data directory (default ~/.lumino)
  LUMINO_DEBUG                      Enable debug logging

Examples:
  lumino                              Start the TUI
  lumino chat --model gemini-1.5-pro-latest
  lumino list --favorites
  lumino export 2 --format md --output ~/notes
  lumino config set temperature 0.9

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("lumino version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out from Parse for testing.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "list", "ls", "l":
		parseListArgs(&parsedArgs, remaining)
		return CmdList, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "import":
		if len(remaining) > 0 {
			parsedArgs.File = remaining[0]
		}
		return CmdImport, parsedArgs

	case "clear":
		for _, arg := range remaining {
			if arg == "--confirm" {
				parsedArgs.Options["confirm"] = "true"
			}
		}
		return CmdClear, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command - show help rather than guessing
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseListArgs parses list command specific arguments.
func parseListArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--favorites", arg == "-f":
			args.Options["favorites"] = "true"
		case arg == "--search" && i+1 < len(remaining):
			args.Query = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--search="):
			args.Query = strings.TrimPrefix(arg, "--search=")
		}
	}
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--format" && i+1 < len(remaining):
			args.Options["format"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			args.Options["format"] = strings.TrimPrefix(arg, "--format=")
		case arg == "--output" && i+1 < len(remaining):
			args.Options["output"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--output="):
			args.Options["output"] = strings.TrimPrefix(arg, "--output=")
		case !strings.HasPrefix(arg, "-") && args.Query == "":
			// First positional arg selects the chat (list position or id).
			args.Query = arg
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}
