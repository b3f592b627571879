// lumino - a terminal chat client for the Gemini API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/lumino-tui/internal/cli"
	"github.com/jeranaias/lumino-tui/internal/config"
	"github.com/jeranaias/lumino-tui/internal/gemini"
	"github.com/jeranaias/lumino-tui/internal/logging"
	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/storage"
	"github.com/jeranaias/lumino-tui/internal/store"
	"github.com/jeranaias/lumino-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	env, logFile, err := bootstrap(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	switch cmd {
	case cli.CmdTUI:
		exchanger := cli.NewModelOverride(env.Client, args.Model)
		if err := ui.Run(env.Store, exchanger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdChat:
		exit(cli.HandleChat(env, args))
	case cli.CmdList:
		exit(cli.HandleList(env, args))
	case cli.CmdExport:
		exit(cli.HandleExport(env, args))
	case cli.CmdImport:
		exit(cli.HandleImport(env, args))
	case cli.CmdClear:
		exit(cli.HandleClear(env, args))
	case cli.CmdConfig:
		exit(cli.HandleConfig(env, args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

func exit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and persisted state and wires the shared
// dependencies. The TUI logs to a file so log lines never tear the screen;
// everything else logs to stderr.
func bootstrap(cmd cli.Command, args cli.Args) (*cli.Env, *os.File, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if args.Verbose {
		cfg.Debug = true
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		if dataDir, err = storage.DataDir(); err != nil {
			return nil, nil, err
		}
	}

	var logFile *os.File
	if cmd == cli.CmdTUI {
		if logFile, err = logging.InitFile(dataDir, cfg.Debug); err != nil {
			logging.Discard()
		}
	} else {
		logging.InitConsole(cfg.Debug)
	}

	stateStore, err := storage.NewStateStoreWithDir(dataDir)
	if err != nil {
		return nil, nil, err
	}

	state, err := stateStore.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrStateNotFound) {
			return nil, nil, fmt.Errorf("load state: %w", err)
		}
		// First run: seed settings from the config file and environment.
		state = model.NewAppState()
		state.Settings = cfg.Settings()
	}

	// An environment-supplied key always wins over the persisted one.
	if cfg.APIKeyFromEnv() {
		state.Settings.APIKey = cfg.APIKey
	}

	client := gemini.NewClient().
		WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)

	env := &cli.Env{
		Store:  store.New(state, stateStore),
		Config: cfg,
		Client: client,
	}
	return env, logFile, nil
}
