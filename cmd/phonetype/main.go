// Copyright 2025 The Phonetype Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the phonetic conversion server and CLI.

Phonetype turns Latin text typed phonetically into Bengali script using an
ordered table of find/replace patterns with contextual rules. It can run as a
MessagePack IPC server for editors and input methods, as an interactive
prompt, or convert a single text and exit.

# Usage

Start the server with default settings:

	phonetype

Convert once:

	phonetype -convert "amar sOnar bangla"

Try a custom table interactively with debug logging:

	phonetype -c -rules my-rules.yaml -d

Start a custom table from the bundled one:

	phonetype -make-rules > my-rules.yaml

# Configuration

Runtime configuration lives in config.toml under the user config directory
(~/.config/phonetype on most systems, or $PHONETYPE_CONFIG_DIR) and is created
with defaults on first run:

	[server]
	max_limit = 64
	max_input = 4096

	[suggest]
	default_limit = 8
	cache_size = 2048

	[rules]
	path = ""
	legacy_exact_bound = false
	inclusive_prefix_bound = false

	[cli]
	default_limit = 5
	show_suggestions = true

A relative rules path is looked up next to the config file, then next to the
executable, then in the working directory. The -rules flag takes precedence
over the config.

# IPC Protocol

See package server. In short, each request is a msgpack map

	{"id": "req1", "a": "convert", "t": "ami"}

answered by

	{"id": "req1", "o": "আমি", "t": 21}

# Command Line Flags

	-version      Show version info
	-d            Enable debug logging
	-c            Run the interactive prompt instead of the server
	-config path  Config file to use instead of the default location
	-rules path   Rules file (.json, .yaml or .toml)
	-limit n      Suggestions shown per line in the prompt
	-convert text Convert text, print it and exit
	-make-rules   Print the bundled rules as YAML and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/phonetype/internal/cli"
	"github.com/bastiangx/phonetype/pkg/config"
	"github.com/bastiangx/phonetype/pkg/phonetic"
	"github.com/bastiangx/phonetype/pkg/ruleset"
	"github.com/bastiangx/phonetype/pkg/server"
	"github.com/bastiangx/phonetype/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "phonetype"
	gh      = "https://github.com/bastiangx/phonetype"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, rules, engine and the selected front end together.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive prompt instead of the IPC server")
	configFile := flag.String("config", "", "Path to a custom config.toml")
	rulesFile := flag.String("rules", "", "Rules file to load instead of the configured or bundled one")
	limit := flag.Int("limit", -1, fmt.Sprintf("Suggestions per line in the prompt (default from config, %d)", defaultConfig.CLI.DefaultLimit))
	convertText := flag.String("convert", "", "Convert the given text, print it and exit")
	makeRules := flag.Bool("make-rules", false, "Print the bundled rules as YAML and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *makeRules {
		if err := dumpBundledRules(); err != nil {
			log.Fatalf("Failed to dump bundled rules: %v", err)
		}
		return
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))

	rules, err := loadRules(*rulesFile, appConfig, configPath)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}

	var opts []phonetic.Option
	if appConfig.Rules.LegacyExactBound {
		opts = append(opts, phonetic.WithLegacyExactBound())
	}
	if appConfig.Rules.InclusivePrefixBound {
		opts = append(opts, phonetic.WithInclusivePrefixBound())
	}
	engine := phonetic.New(rules, opts...)

	if *convertText != "" {
		fmt.Println(engine.Convert(*convertText))
		return
	}

	indexer := suggest.NewIndexer(engine, appConfig.Suggest.CacheSize)

	if *cliMode {
		log.SetReportTimestamp(false)
		cliLimit := appConfig.CLI.DefaultLimit
		if *limit >= 0 {
			cliLimit = *limit
		}
		log.Debug("Input info:", "limit", cliLimit, "suggestions", appConfig.CLI.ShowSuggestions)

		inputHandler := cli.NewInputHandler(engine, indexer, cliLimit, appConfig.CLI.ShowSuggestions)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, indexer, appConfig)
	log.Debug("Server ready", "pid", os.Getpid(), "patterns", rules.Len(), "rules", rules.Meta().Name)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadRules picks the -rules flag, then the configured path, then the bundled table.
func loadRules(flagPath string, cfg *config.Config, configPath string) (*ruleset.Ruleset, error) {
	if flagPath != "" {
		log.Debugf("Loading rules from flag: %s", flagPath)
		return ruleset.LoadFile(flagPath)
	}

	path, err := cfg.ResolveRulesPath(configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debugf("Loading rules from config: %s", path)
		return ruleset.LoadFile(path)
	}

	log.Debug("Using bundled rules")
	return ruleset.Bundled()
}

func dumpBundledRules() error {
	doc, err := ruleset.BundledDocument()
	if err != nil {
		return err
	}
	data, err := ruleset.Encode(doc, ruleset.FormatYAML)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ " + AppName + " ] phonetic Latin to Bengali conversion")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
