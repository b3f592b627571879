// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the lumino CLI.
//
// Handles the "lumino chat" command which provides an interactive REPL
// on top of the same store the TUI uses.
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /new                Start a new chat
//   /list               List chats
//   /switch <n>         Switch to chat n (list position)
//   /favorite           Toggle favorite on the current chat
//   /history            Show the current chat's messages
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/storage"
	"github.com/jeranaias/lumino-tui/internal/store"
	"github.com/jeranaias/lumino-tui/internal/ui/styles"
	"github.com/jeranaias/lumino-tui/internal/util"
	"golang.org/x/term"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dataDir, err := storage.DataDir()
	if err != nil {
		dataDir = os.TempDir()
	}
	historyFile := filepath.Join(dataDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}

	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists command history to file with secure permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// MODEL OVERRIDE
// =============================================================================

// modelOverride wraps an exchanger and forces a specific model identifier,
// used for the --model flag without touching saved settings.
type modelOverride struct {
	inner store.Exchanger
	model string
}

// NewModelOverride returns an exchanger that forces the given model for
// every turn. An empty model returns the inner exchanger unchanged.
func NewModelOverride(inner store.Exchanger, forced string) store.Exchanger {
	if forced == "" {
		return inner
	}
	return modelOverride{inner: inner, model: forced}
}

func (o modelOverride) SendTurn(ctx context.Context, text string, settings model.Settings) (string, error) {
	settings.Model = o.model
	return o.inner.SendTurn(ctx, text, settings)
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat handles the "chat" command with full interactive support.
func HandleChat(env *Env, args Args) error {
	exchanger := NewModelOverride(env.Client, args.Model)

	// Continue the current chat if one is selected, start fresh otherwise.
	chatID := env.Store.CurrentChatID()
	if chatID == "" {
		chatID = env.Store.NewChat()
	}

	if !args.Quiet {
		printWelcome(env, args)
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(promptStyle.Render("lumino> "))
		if err != nil {
			// Ctrl+C, Ctrl+D, or a closed terminal all exit gracefully.
			fmt.Println()
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			keepGoing, err := handleSlashCommand(env, &chatID, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				fmt.Println(infoStyle.Render("Goodbye!"))
				return nil
			}
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		if err := env.Store.SubmitTurn(context.Background(), exchanger, chatID, line); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			continue
		}

		printLastReply(env, chatID)
	}
}

// printLastReply prints the newest assistant message of a chat, rendered
// as markdown when stdout is a terminal.
func printLastReply(env *Env, chatID string) {
	chat := env.Store.Chat(chatID)
	if chat == nil || chat.LastMessage() == nil {
		return
	}
	reply := chat.LastMessage()
	if reply.Role != model.RoleAssistant {
		return
	}

	fmt.Println()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style := "light"
		if env.Store.Settings().Theme == model.ThemeDark {
			style = "dark"
		}
		if out, err := glamour.Render(reply.Content, style); err == nil {
			fmt.Print(out)
			fmt.Println()
			return
		}
	}
	fmt.Println(reply.Content)
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (keepGoing, error) where keepGoing=false means exit.
func handleSlashCommand(env *Env, chatID *string, input string) (bool, error) {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	rest := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printChatHelp()
		return true, nil

	case "/new":
		*chatID = env.Store.NewChat()
		fmt.Println(commandStyle.Render("[Started a new chat]"))
		return true, nil

	case "/list":
		return true, HandleList(env, Args{})

	case "/switch":
		if len(rest) == 0 {
			return true, fmt.Errorf("usage: /switch <n>")
		}
		chat, err := resolveChat(env, rest[0])
		if err != nil {
			return true, err
		}
		env.Store.SelectChat(chat.ID)
		*chatID = chat.ID
		fmt.Printf("%s %s\n", commandStyle.Render("[Switched to]"), chat.Title)
		return true, nil

	case "/favorite", "/fav":
		env.Store.ToggleFavorite(*chatID)
		chat := env.Store.Chat(*chatID)
		if chat != nil && chat.Favorite {
			fmt.Println(commandStyle.Render("[Marked favorite]"))
		} else {
			fmt.Println(commandStyle.Render("[Unmarked favorite]"))
		}
		return true, nil

	case "/history":
		printChatHistory(env, *chatID)
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(env *Env, args Args) {
	s := env.Store.Settings()
	modelName := s.Model
	if args.Model != "" {
		modelName = args.Model
	}

	fmt.Println()
	fmt.Println(welcomeStyle.Render("lumino interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n", infoStyle.Render("Model:"), commandStyle.Render(modelName))
	if s.APIKey == "" {
		fmt.Printf("%s %s\n",
			infoStyle.Render("API key:"),
			errorStyle.Render("not configured (set LUMINO_API_KEY or run: lumino config set api-key)"))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printChatHelp prints available slash commands.
func printChatHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/new", "Start a new chat"},
		{"/list", "List chats"},
		{"/switch <n>", "Switch to chat n"},
		{"/favorite", "Toggle favorite on this chat"},
		{"/history", "Show this chat's messages"},
		{"/quit, /q", "Exit chat"},
	}

	fmt.Println()
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-14s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

// printChatHistory prints the current chat's messages.
func printChatHistory(env *Env, chatID string) {
	chat := env.Store.Chat(chatID)
	if chat == nil || len(chat.Messages) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	for i, msg := range chat.Messages {
		role := msg.Role.DisplayName()
		if msg.Role == model.RoleUser {
			role = lipgloss.NewStyle().Foreground(styles.Cyan).Render(role)
		} else {
			role = lipgloss.NewStyle().Foreground(styles.Purple).Render(role)
		}

		content := util.CollapseWhitespace(util.TruncateRunes(msg.Content, 100))
		fmt.Printf("  %d. %s: %s\n", i+1, role, content)
	}
	fmt.Println()
}
