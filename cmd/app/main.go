package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/halmos/ponens/internal"
	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/mcpserver"
	"github.com/halmos/ponens/internal/runner"
	"github.com/halmos/ponens/internal/storage"
	pkgconfig "github.com/halmos/ponens/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// check verifies proof documents given as file arguments and prints one
// verdict per proof. Exits non-zero if any proof fails.
func check(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: ponens check FILE...")
	}

	failed := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		results, err := runner.VerifyDocument(ctx, data)
		if err != nil {
			return fmt.Errorf("verify %s: %w", path, err)
		}
		for _, r := range results {
			if r.Succeeded() {
				fmt.Printf("%s: VALID: %s\n", path, r.Name)
			} else {
				failed = true
				fmt.Printf("%s: FAILED: %s: line %d (%s): %s\n",
					path, r.Name, r.Failure.LineNumber, r.Failure.Kind, r.Failure.Detail)
			}
		}
	}
	if failed {
		return cli.Exit("one or more proofs failed", 1)
	}
	return nil
}

// mcp runs the MCP server on stdin/stdout against the configured corpus.
func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Corpus.Path, 0o755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	return mcpserver.New(store, db).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "ponens",
		Usage:  "Hilbert-style proof verifier with a REST API, SQLite verdict index, and MCP tools",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Verify proof documents and print verdicts",
				ArgsUsage: "FILE...",
				Action:    check,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: mcp,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
