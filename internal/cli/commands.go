// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Handlers for the non-interactive lumino commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/lumino-tui/internal/config"
	"github.com/jeranaias/lumino-tui/internal/export"
	"github.com/jeranaias/lumino-tui/internal/gemini"
	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/store"
	"github.com/jeranaias/lumino-tui/internal/ui/styles"
	"github.com/jeranaias/lumino-tui/internal/util"
)

// Env bundles the shared dependencies every command handler needs.
type Env struct {
	Store  *store.Store
	Config *config.Config
	Client *gemini.Client
}

// =============================================================================
// LIST
// =============================================================================

// HandleList handles the "list" command.
func HandleList(env *Env, args Args) error {
	filter := store.FilterAll
	if args.Options["favorites"] == "true" {
		filter = store.FilterFavorites
	}

	chats := env.Store.List(filter, args.Query)
	if len(chats) == 0 {
		fmt.Println("No chats found.")
		return nil
	}

	for i, chat := range chats {
		mark := " "
		if chat.Favorite {
			mark = "*"
		}
		fmt.Printf("%3d. %s %s %3d msgs  %s\n",
			i+1,
			mark,
			util.PadRight(chat.TitlePreview(40), 40),
			chat.MessageCount(),
			util.RelativeTime(chat.UpdatedTime()),
		)
	}
	return nil
}

// resolveChat maps a positional argument (1-based list position or chat id
// prefix) to a chat. Positions follow the same ordering as "lumino list".
func resolveChat(env *Env, ref string) (*model.Chat, error) {
	if ref == "" {
		return nil, fmt.Errorf("missing chat reference, run: lumino list")
	}

	chats := env.Store.List(store.FilterAll, "")

	if n := util.StrToInt(ref, 0); n >= 1 && n <= len(chats) {
		return chats[n-1], nil
	}

	for _, chat := range chats {
		if strings.HasPrefix(chat.ID, ref) {
			return chat, nil
		}
	}
	return nil, fmt.Errorf("no chat matches %q", ref)
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// HandleExport handles the "export" command.
func HandleExport(env *Env, args Args) error {
	chat, err := resolveChat(env, args.Query)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	if dir := args.Options["output"]; dir != "" {
		opts.OutputDir = dir
	}

	var path string
	switch args.Options["format"] {
	case "", "json":
		path, err = export.ExportJSON(chat, opts)
	case "md", "markdown":
		path, err = export.ExportMarkdown(chat, opts)
	default:
		return fmt.Errorf("unknown format %q (want json or md)", args.Options["format"])
	}
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println(styles.RenderSuccess("Exported to " + path))
	}
	return nil
}

// HandleImport handles the "import" command.
func HandleImport(env *Env, args Args) error {
	if args.File == "" {
		return fmt.Errorf("missing file, run: lumino import <file>")
	}

	data, err := os.ReadFile(args.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.File, err)
	}

	if err := env.Store.ImportChat(string(data)); err != nil {
		return fmt.Errorf("import %s: %w", args.File, err)
	}

	if !args.Quiet {
		imported := env.Store.Chats()[0]
		fmt.Println(styles.RenderSuccess(fmt.Sprintf("Imported %q as a new chat", imported.Title)))
	}
	return nil
}

// =============================================================================
// CLEAR
// =============================================================================

// HandleClear handles the "clear" command. Deleting everything is
// irreversible, so a --confirm flag is required.
func HandleClear(env *Env, args Args) error {
	if args.Options["confirm"] != "true" {
		return fmt.Errorf("this deletes all chats; re-run with --confirm")
	}

	n := len(env.Store.Chats())
	env.Store.ClearAll()

	if !args.Quiet {
		fmt.Println(styles.RenderSuccess(fmt.Sprintf("Deleted %d chat(s)", n)))
	}
	return nil
}

// =============================================================================
// VERSION / HELP
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
