package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lsbridge/lsbridge/internal/analysis"
	"github.com/lsbridge/lsbridge/internal/bridge"
	"github.com/lsbridge/lsbridge/internal/config"
	"github.com/lsbridge/lsbridge/internal/lsp"
	"github.com/lsbridge/lsbridge/internal/snippet"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	var (
		serviceCommand string
		serviceArgs    []string
		settingsPath   string
		snippetsPath   string
		listenWS       string
	)

	cmd := &cobra.Command{
		Use:          "lsbridge",
		Short:        "Bridge an LSP editor to an offset-based language analysis service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceCommand == "" {
				return fmt.Errorf("--service is required")
			}
			return run(serviceCommand, serviceArgs, settingsPath, snippetsPath, listenWS)
		},
	}

	cmd.Flags().StringVar(&serviceCommand, "service", "", "analysis service command")
	cmd.Flags().StringSliceVar(&serviceArgs, "service-arg", nil, "argument passed to the analysis service (repeatable)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "settings file (defaults to the project config folder)")
	cmd.Flags().StringVar(&snippetsPath, "snippets", "", "user snippet file (defaults to the project config folder)")
	cmd.Flags().StringVar(&listenWS, "listen-ws", "", "serve the editor connection on a websocket address instead of stdio")

	return cmd
}

func run(serviceCommand string, serviceArgs []string, settingsPath, snippetsPath, listenWS string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	configFolder, err := getProjectConfigFolder(projectRoot)
	if err != nil {
		return err
	}
	if settingsPath == "" {
		settingsPath = filepath.Join(configFolder, "settings.yaml")
	}
	if snippetsPath == "" {
		snippetsPath = filepath.Join(configFolder, "snippets.json")
	}

	settings, err := config.Load(settingsPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
	}

	snippets, err := snippet.LoadTable(snippetsPath)
	if err != nil {
		log.Printf("Warning: failed to load user snippets: %v", err)
		snippets = snippet.NewTable(snippet.Builtin())
	}

	service, err := analysis.Dial(context.Background(), serviceCommand, serviceArgs...)
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Close(); err != nil {
			log.Printf("error closing analysis service: %v", err)
		}
	}()

	server := lsp.NewServer(service)
	docs := server.DocumentManager()

	diagnostics := bridge.NewDiagnosticsManager(service, docs, server,
		bridge.WithQuietPeriod(settings.QuietPeriod()),
		bridge.WithValidationOptions(bridge.ValidationOptions{
			NoSyntaxValidation:   settings.NoSyntaxValidation,
			NoSemanticValidation: settings.NoSemanticValidation,
		}),
	)
	defer diagnostics.Dispose()

	server.RegisterDiagnostics(diagnostics)
	server.RegisterCompletionProvider(bridge.NewCompleter(service, docs, snippets))
	server.RegisterHoverProvider(bridge.NewHoverProvider(service, docs))
	server.RegisterSignatureProvider(bridge.NewSignatureProvider(service, docs))
	server.RegisterSymbolProvider(bridge.NewOutliner(service, docs))
	server.RegisterNavigationProvider(bridge.NewNavigator(service, docs))
	server.RegisterFormattingProvider(bridge.NewFormatter(service, docs))
	server.RegisterCommandProvider(snippet.NewCommandProvider(snippetsPath))

	watcher, err := config.NewWatcher(settingsPath, func(s config.Settings) {
		diagnostics.SetOptions(bridge.ValidationOptions{
			NoSyntaxValidation:   s.NoSyntaxValidation,
			NoSemanticValidation: s.NoSemanticValidation,
		})
	})
	if err != nil {
		log.Printf("Warning: settings watcher unavailable: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Printf("error closing settings watcher: %v", err)
			}
		}()
	}

	if listenWS != "" {
		return server.ListenWebSocket(listenWS)
	}
	return server.Start(os.Stdin, os.Stdout)
}
