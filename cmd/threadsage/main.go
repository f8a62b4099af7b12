package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
	"github.com/threadsage/threadsage/internal/pipeline"
	"github.com/threadsage/threadsage/internal/prompt"
	"github.com/threadsage/threadsage/internal/tui"
)

func main() {
	// Initialize logger with default configuration
	logging.Initialize(nil)

	// Define program-wide flags
	var logLevel string
	var logJSON bool

	rootCmd := &cobra.Command{
		Use:   "threadsage",
		Short: "Answers GitHub issue comments with AI-generated replies",
		Long:  `A single-shot responder for GitHub Actions: when an issue comment starts with the trigger word, it rebuilds the conversation, asks the configured model, and publishes the answer as a comment.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Use a subcommand or --help for available commands.")
			fmt.Println("In a workflow, run 'threadsage respond'.")
		},
	}

	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	// Configure logging based on flags
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Initialize(&logging.Config{
			Level:      logging.ParseLevel(logLevel),
			Output:     os.Stderr,
			JSONFormat: logJSON,
		})

		logging.Info("Starting threadsage", "version", "1.0.0")
	}

	respondCmd := &cobra.Command{
		Use:   "respond",
		Short: "Process the trigger comment and publish a reply",
		Long:  `Reads the trigger event from the environment, decides whether the comment addresses the bot, and publishes at most one reply on the issue. Meant to be invoked from an issue_comment workflow.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logging.Error("Failed to load configuration", "error", err)
				fmt.Fprintf(os.Stderr, "Error loading configuration: %s\n", err)
				os.Exit(1)
			}

			p, err := pipeline.New(cfg)
			if err != nil {
				logging.Error("Failed to build pipeline", "error", err)
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}

			if err := p.Run(context.Background()); err != nil {
				logging.Error("Respond failed", "error", err)
				os.Exit(1)
			}
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List the configured model aliases",
		Run: func(cmd *cobra.Command, args []string) {
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				logging.Error("Failed to get file parameter", "error", err)
				os.Exit(1)
			}
			if path == "" {
				path = strings.TrimSpace(os.Getenv("THREADSAGE_MODELS_FILE"))
			}
			if path == "" {
				path = config.DefaultModelsFile
			}

			table, err := config.LoadAliasTable(path)
			if err != nil {
				logging.Error("Failed to load model table", "path", path, "error", err)
				fmt.Fprintf(os.Stderr, "Error loading model table: %s\n", err)
				os.Exit(1)
			}

			for _, alias := range table.Aliases() {
				suffix := ""
				if alias == models.DefaultAlias {
					suffix = " (default)"
				}
				fmt.Printf("%s = %s%s\n", alias, table[alias], suffix)
			}
		},
	}
	modelsCmd.Flags().String("file", "", "Path to the model table (defaults to THREADSAGE_MODELS_FILE or "+config.DefaultModelsFile+")")

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the system prompt the responder would use",
		Run: func(cmd *cobra.Command, args []string) {
			override, err := cmd.Flags().GetString("file")
			if err != nil {
				logging.Error("Failed to get file parameter", "error", err)
				os.Exit(1)
			}

			cfg := &config.Config{}
			cfg.Prompt.OverridePath = override
			if cfg.Prompt.OverridePath == "" {
				cfg.Prompt.OverridePath = strings.TrimSpace(os.Getenv("THREADSAGE_SYSTEM_PROMPT_FILE"))
			}
			cfg.Prompt.Inline = os.Getenv("THREADSAGE_SYSTEM_PROMPT")

			text, source := prompt.Resolve(cfg)
			logging.Info("Resolved system prompt", "source", source)
			fmt.Println(text)
		},
	}
	promptCmd.Flags().String("file", "", "Path to a system prompt file")

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively create the model table",
		Long:  `Interactive setup that writes the alias-to-model table into the repository and suggests the matching workflow environment.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := tui.Run(); err != nil {
				logging.Error("Failed to run setup", "error", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.AddCommand(respondCmd, modelsCmd, promptCmd, setupCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		logging.Error("Failed to execute command", "error", err)
		os.Exit(1)
	}
}
