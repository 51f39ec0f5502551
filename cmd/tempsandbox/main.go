// Package main provides the CLI entry point for tempsandbox.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/tempsandbox/pkg/adapters/logger"
	"github.com/user/tempsandbox/pkg/config"
	"github.com/user/tempsandbox/pkg/ports"
	"github.com/user/tempsandbox/pkg/sandbox"
)

var version = "dev"

var errMissingArgument = errors.New("missing argument")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.NewConsole(ports.LevelError).Error("Command failed: %s", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "tempsandbox",
		Usage:   l10n.T("Manage disposable sandbox directories for tests"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "caller",
				Aliases: []string{"c"},
				Usage:   l10n.T("File that owns the sandbox, usually a test file"),
				EnvVars: []string{"TEMPSANDBOX_CALLER"},
			},
			&cli.StringFlag{
				Name:    "work-dir",
				Usage:   l10n.T("Directory the caller is relative to (default: current directory)"),
				EnvVars: []string{"TEMPSANDBOX_WORK_DIR"},
			},
			&cli.StringFlag{
				Name:    "temp-dir",
				Usage:   l10n.T("Parent directory of all sandboxes (default: system temp dir)"),
				EnvVars: []string{"TEMPSANDBOX_TEMP_DIR"},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: l10n.T("YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  l10n.T("Create the sandbox, wiping any previous one, and print its path"),
				Action: runCreate,
			},
			{
				Name:      "path",
				Usage:     l10n.T("Print the absolute path of a sandbox path"),
				ArgsUsage: "<path>",
				Action:    runPath,
			},
			{
				Name:      "write",
				Usage:     l10n.T("Write a file; contents are read from stdin when omitted"),
				ArgsUsage: "<path> [contents]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: l10n.T("Parse contents as JSON and store them re-indented"),
					},
				},
				Action: runWrite,
			},
			{
				Name:      "read",
				Usage:     l10n.T("Print a file; JSON files are printed re-indented"),
				ArgsUsage: "<path>",
				Action:    runRead,
			},
			{
				Name:      "hash",
				Usage:     l10n.T("Print the MD5 of a file"),
				ArgsUsage: "<path>",
				Action:    runHash,
			},
			{
				Name:      "list",
				Usage:     l10n.T("List files below a sandbox directory"),
				ArgsUsage: "[subdir]",
				Action:    runList,
			},
			{
				Name:      "snapshot",
				Usage:     l10n.T("Print a JSON map of file paths to MD5 hashes"),
				ArgsUsage: "[subdir]",
				Action:    runSnapshot,
			},
			{
				Name:      "delete",
				Usage:     l10n.T("Delete paths matching glob patterns"),
				ArgsUsage: "<pattern>...",
				Action:    runDelete,
			},
			{
				Name:   "clean",
				Usage:  l10n.T("Delete the sandbox contents but keep its root"),
				Action: runClean,
			},
			{
				Name:   "destroy",
				Usage:  l10n.T("Delete the sandbox"),
				Action: runDestroy,
			},
		},
	}
}

// loadConfig merges the config file with flags; flags win.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("work-dir") {
		cfg.WorkDir = c.String("work-dir")
	}
	if c.IsSet("temp-dir") {
		cfg.TempDir = c.String("temp-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func newLogger(c *cli.Context, level ports.LogLevel) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	if c.App.ErrWriter == nil || c.App.ErrWriter == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewWriter(level, c.App.ErrWriter)
}

// open creates the sandbox for --caller. Every command but create reuses the
// existing directory. The CLI always uses the fixed "dir" suffix so that
// separate invocations address the same sandbox.
func open(c *cli.Context, reuse bool) (*sandbox.Sandbox, ports.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(c, cfg.Level())

	opts := cfg.Options(c.String("caller"))
	opts.RandomDir = false
	opts.Reuse = reuse
	opts.Logger = log

	sb, err := sandbox.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return sb, log, nil
}

func arg(c *cli.Context, i int, name string) (string, error) {
	if c.NArg() <= i {
		return "", fmt.Errorf("%w: %s", errMissingArgument, name)
	}
	return c.Args().Get(i), nil
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func runCreate(c *cli.Context) error {
	sb, log, err := open(c, false)
	if err != nil {
		return err
	}
	log.Info("Created %s", sb.Dir())
	fmt.Fprintln(c.App.Writer, sb.Dir())
	return nil
}

func runPath(c *cli.Context) error {
	p, err := arg(c, 0, "path")
	if err != nil {
		return err
	}
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	abs, err := sb.Resolve(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, abs)
	return nil
}

func runWrite(c *cli.Context) error {
	p, err := arg(c, 0, "path")
	if err != nil {
		return err
	}

	var raw string
	if c.NArg() > 1 {
		raw = strings.Join(c.Args().Slice()[1:], " ")
	} else {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}

	var contents any = raw
	if c.Bool("json") {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("parse contents: %w", err)
		}
		contents = v
	}

	sb, log, err := open(c, true)
	if err != nil {
		return err
	}
	if err := sb.CreateFile(p, contents); err != nil {
		return err
	}
	log.Info("Wrote %s", p)
	return nil
}

func runRead(c *cli.Context) error {
	p, err := arg(c, 0, "path")
	if err != nil {
		return err
	}
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	v, err := sb.ReadFile(p)
	if err != nil {
		return err
	}
	if s, ok := v.(string); ok {
		fmt.Fprintln(c.App.Writer, s)
		return nil
	}
	return printJSON(c.App.Writer, v)
}

func runHash(c *cli.Context) error {
	p, err := arg(c, 0, "path")
	if err != nil {
		return err
	}
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	sum, err := sb.GetFileHash(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, sum)
	return nil
}

func runList(c *cli.Context) error {
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	files, err := sb.GetFileList(c.Args().First())
	if err != nil {
		return err
	}
	printLines(c.App.Writer, files)
	return nil
}

func runSnapshot(c *cli.Context) error {
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	hashes, err := sb.GetAllFilesHash(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, hashes)
}

func runDelete(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("%w: pattern", errMissingArgument)
	}
	sb, log, err := open(c, true)
	if err != nil {
		return err
	}
	removed, err := sb.Delete(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	for _, p := range removed {
		log.Info("Removed %s", p)
	}
	printLines(c.App.Writer, removed)
	return nil
}

func runClean(c *cli.Context) error {
	sb, _, err := open(c, true)
	if err != nil {
		return err
	}
	removed, err := sb.Clean(c.Context)
	if err != nil {
		return err
	}
	printLines(c.App.Writer, removed)
	return nil
}

func runDestroy(c *cli.Context) error {
	sb, log, err := open(c, true)
	if err != nil {
		return err
	}
	removed, err := sb.Destroy()
	if err != nil {
		return err
	}
	for _, p := range removed {
		log.Info("Removed %s", p)
	}
	printLines(c.App.Writer, removed)
	return nil
}
