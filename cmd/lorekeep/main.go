// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/lorekeep/lorekeep"
	"github.com/lorekeep/lorekeep/ai"
	"github.com/lorekeep/lorekeep/ai/openai"
	"github.com/lorekeep/lorekeep/api"
	"github.com/lorekeep/lorekeep/reembed"
	"github.com/lorekeep/lorekeep/router"
	"github.com/lorekeep/lorekeep/storage/badger"
)

func main() {
	// .env is optional; flags read their EnvVars during parsing, so it
	// has to be loaded before Run.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "lorekeep",
		Usage: "Personal knowledge curation assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the note store directory",
				Value:   "./lorekeep_db",
				EnvVars: []string{"LOREKEEP_DB"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"LOREKEEP_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"LOREKEEP_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "chat-model",
				Usage:   "Chat model name for routing, analysis, and summarization",
				Value:   "qwen2.5:3b",
				EnvVars: []string{"LOREKEEP_CHAT_MODEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"LOREKEEP_ADDR"},
					},
				},
			},
			{
				Name:      "process",
				Usage:     "Process a single input and print the result as JSON",
				ArgsUsage: "<input>",
				Action:    processCommand,
			},
			{
				Name:      "search",
				Usage:     "Search stored notes and print the results as JSON",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Search mode: semantic, text, hybrid, or tags",
						Value: "semantic",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print note and tag statistics for a store",
				Action: statsCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for every stored note",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of notes to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of batches embedded in parallel",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N notes",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)
}

func openAssistant(c *cli.Context) (*lorekeep.Assistant, error) {
	config := aiConfigFromFlags(c)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return lorekeep.NewAssistant(c.String("db"), lorekeep.WithAIConfig(config))
}

func serveCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	server := api.NewServer(assistant.Dispatcher())
	return server.Run(c.String("addr"))
}

func processCommand(c *cli.Context) error {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	result := assistant.Process(context.Background(), input)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search requires a query")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	handler := assistant.Dispatcher().Handler(router.AgentQuery)
	result := handler.Process(context.Background(), router.ActionSearch, map[string]any{
		"query":       query,
		"search_type": c.String("type"),
		"limit":       c.Int("limit"),
	})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewNoteRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	count, err := repo.CountNotes(ctx)
	if err != nil {
		return err
	}

	tagSets, err := repo.ListTagSets(ctx)
	if err != nil {
		return err
	}

	tagCounts := make(map[string]int)
	totalUses := 0
	for _, tags := range tagSets {
		for _, tag := range tags {
			tagCounts[tag]++
			totalUses++
		}
	}

	fmt.Printf("Notes:       %d\n", count)
	fmt.Printf("Unique tags: %d\n", len(tagCounts))
	fmt.Printf("Tag uses:    %d\n", totalUses)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewNoteRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	config := aiConfigFromFlags(c)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		Concurrency:    c.Int("concurrency"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Store: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func setup(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
