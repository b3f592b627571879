// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - "lumino config" command handler.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/lumino-tui/internal/config"
	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/ui/styles"
)

// HandleConfig handles the "config" command.
func HandleConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(env)
	case "set":
		return handleConfigSet(env, args)
	case "path":
		path, err := config.PathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, set, or path)", args.Subcommand)
	}
}

func handleConfigShow(env *Env) error {
	s := env.Store.Settings()

	fmt.Println("Current settings:")
	fmt.Printf("  %-14s %s\n", "api-key:", s.MaskedAPIKey())
	fmt.Printf("  %-14s %s\n", "model:", s.Model)
	fmt.Printf("  %-14s %g\n", "temperature:", s.Temperature)
	fmt.Printf("  %-14s %d\n", "max-tokens:", s.MaxTokens)
	fmt.Printf("  %-14s %s\n", "theme:", s.Theme)
	fmt.Printf("  %-14s %s\n", "font-size:", s.FontSize)
	fmt.Printf("  %-14s %t\n", "enter-to-send:", s.EnterToSend)
	fmt.Printf("  %-14s %t\n", "auto-scroll:", s.AutoScroll)
	fmt.Printf("  %-14s %s\n", "language:", s.Language)

	if env.Config.APIKeyFromEnv() {
		fmt.Println()
		fmt.Println(styles.RenderInfo("API key supplied via environment; it overrides the saved value."))
	}
	return nil
}

func handleConfigSet(env *Env, args Args) error {
	key := strings.ToLower(args.ConfigKey)
	if key == "" {
		return fmt.Errorf("missing key, run: lumino config set KEY VALUE")
	}

	value := args.ConfigVal

	// The API key is prompted without echo when no value is given, so it
	// never lands in shell history.
	if key == "api-key" && value == "" {
		fmt.Print("API key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		value = strings.TrimSpace(string(raw))
		if value == "" {
			return fmt.Errorf("empty API key")
		}
	}

	patch, err := patchForKey(key, value)
	if err != nil {
		return err
	}

	env.Store.UpdateSettings(patch)
	mirrorToConfig(env.Config, env.Store.Settings())
	if err := env.Config.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if !args.Quiet {
		shown := value
		if key == "api-key" {
			shown = env.Store.Settings().MaskedAPIKey()
		}
		fmt.Println(styles.RenderSuccess(fmt.Sprintf("Set %s = %s", key, shown)))
	}
	return nil
}

// patchForKey translates a config key/value pair into a settings patch.
func patchForKey(key, value string) (model.SettingsPatch, error) {
	var patch model.SettingsPatch

	switch key {
	case "api-key":
		patch.APIKey = &value

	case "model":
		if value == "" {
			return patch, fmt.Errorf("model must not be empty")
		}
		patch.Model = &value

	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 2 {
			return patch, fmt.Errorf("temperature must be a number in [0, 2]")
		}
		patch.Temperature = &f

	case "max-tokens":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return patch, fmt.Errorf("max-tokens must be a positive integer")
		}
		patch.MaxTokens = &n

	case "theme":
		if value != model.ThemeLight && value != model.ThemeDark {
			return patch, fmt.Errorf("theme must be %q or %q", model.ThemeLight, model.ThemeDark)
		}
		patch.Theme = &value

	case "font-size":
		switch value {
		case model.FontSizeSmall, model.FontSizeMedium, model.FontSizeLarge:
			patch.FontSize = &value
		default:
			return patch, fmt.Errorf("font-size must be small, medium, or large")
		}

	case "enter-to-send":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, fmt.Errorf("enter-to-send must be true or false")
		}
		patch.EnterToSend = &b

	case "auto-scroll":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return patch, fmt.Errorf("auto-scroll must be true or false")
		}
		patch.AutoScroll = &b

	case "language":
		if value == "" {
			return patch, fmt.Errorf("language must not be empty")
		}
		patch.Language = &value

	default:
		return patch, fmt.Errorf("unknown config key %q", key)
	}

	return patch, nil
}

// mirrorToConfig copies the live settings into the config file record so
// a fresh state file on another machine starts from the same values.
func mirrorToConfig(cfg *config.Config, s model.Settings) {
	if !cfg.APIKeyFromEnv() {
		cfg.APIKey = s.APIKey
	}
	cfg.Model = s.Model
	cfg.Temperature = s.Temperature
	cfg.MaxTokens = s.MaxTokens
	cfg.Theme = s.Theme
	cfg.FontSize = s.FontSize
	cfg.EnterToSend = s.EnterToSend
	cfg.AutoScroll = s.AutoScroll
	cfg.Language = s.Language
}
