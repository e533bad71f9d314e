// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// gen-construct-docs generates the construct.yaml reference document and
// writes it to CONSTRUCT.md and docs/source/construct-yaml.md.
//
// Usage:
//
//	go run ./cmd/gen-construct-docs
//	go run ./cmd/gen-construct-docs --check
//	go run ./cmd/gen-construct-docs --platform osx-arm64 --stdout
package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"

	"grimm.is/constructdoc/internal/config"
	"grimm.is/constructdoc/internal/configdoc"
	"grimm.is/constructdoc/internal/construct"
	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/logging"
	"grimm.is/constructdoc/internal/platform"
)

// CLI is the command line.
type CLI struct {
	Config   string `short:"c" help:"Generator configuration file (HCL). Defaults to docgen.hcl under --root when present."`
	Root     string `short:"r" help:"Repository root that outputs resolve against." default:"." type:"existingdir"`
	Platform string `short:"p" help:"Platform (<os>-<arch>) used to evaluate selectors. Defaults to the host platform."`
	Template string `short:"t" help:"Template file to render instead of the embedded one." type:"existingfile"`
	Check    bool   `help:"Report out-of-date documents instead of writing them."`
	Stdout   bool   `help:"Print the document to stdout instead of writing it."`
	Verbose  bool   `short:"v" help:"Enable debug logging."`
}

// environment is the process state run depends on.
type environment struct {
	Stdout io.Writer
	Stderr io.Writer
	GOOS   string
	GOARCH string
	Getenv func(string) string
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("gen-construct-docs"),
		kong.Description("Generate the construct.yaml reference documentation."),
		kong.UsageOnError(),
	)

	env := environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		Getenv: os.Getenv,
	}
	if err := run(cli, env); err != nil {
		logging.Error("Documentation generation failed", append([]any{"error", err}, errors.LogFields(err)...)...)
		os.Exit(1)
	}
}

func run(cli CLI, env environment) error {
	host, hostErr := platform.Host(env.GOOS, env.GOARCH)

	cfgPath, required := cli.Config, cli.Config != ""
	if !required {
		cfgPath = filepath.Join(cli.Root, config.DefaultPath)
	}
	cfg, loaded, err := config.LoadOrDefault(cfgPath, required, config.Env{HostPlatform: host, Getenv: env.Getenv})
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cli.Verbose, env.Stderr)
	logging.SetDefault(logger)
	if loaded {
		logger.Debug("Loaded configuration", "path", cfgPath)
	}

	platformID := cli.Platform
	if platformID == "" {
		platformID = cfg.Platform
	}
	if platformID == "" {
		if hostErr != nil {
			return errors.Wrap(hostErr, errors.KindConfig, "determine host platform (set --platform)")
		}
		platformID = host
	}
	registry := cfg.Registry()
	switch {
	case !registry.IsValid(platformID):
		logger.Warn("Platform is not in the valid set", "platform", platformID)
	case !registry.IsSupported(platformID):
		logger.Info("Platform is valid but not actively tested", "platform", platformID)
	}
	if matching, err := platform.Matching(platformID); err == nil {
		logger.Debug("Evaluating selectors", "platform", platformID, "matching", matching)
	}

	source, err := fieldSource(cfg, cli.Root, logger)
	if err != nil {
		return err
	}

	collector := configdoc.NewCollector(source, evaluateSelectors, registry, logger)
	meta, err := collector.Collect(platformID)
	if err != nil {
		return err
	}

	renderer, err := configdoc.NewRenderer(templateOption(cli, cfg))
	if err != nil {
		return err
	}
	doc, err := renderer.Render(meta)
	if err != nil {
		return err
	}

	if cli.Stdout {
		_, err := io.WriteString(env.Stdout, doc)
		return errors.Wrap(err, errors.KindIO, "write stdout")
	}

	writer := configdoc.NewWriter(logger, cfg.OutputPaths(cli.Root)...)
	if cli.Check {
		return check(writer, doc, env.Stdout, logger)
	}
	return writer.Write(doc)
}

func newLogger(cfg *config.Config, verbose bool, out io.Writer) *logging.Logger {
	level, ok := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{
		Level:  level,
		Output: out,
		JSON:   cfg.Log.JSON,
	}).WithComponent("gen-construct-docs")
	if !ok {
		logger.Warn("Invalid log level, defaulting to info", "level", cfg.Log.Level)
	}
	return logger
}

func fieldSource(cfg *config.Config, root string, logger *logging.Logger) (configdoc.FieldSource, error) {
	if cfg.Schema.Source == config.SourceGo {
		return configdoc.StructSource{
			Dir:      config.ResolvePath(root, cfg.Schema.Dir),
			TypeName: cfg.Schema.Type,
		}, nil
	}
	return construct.Load(logger)
}

func evaluateSelectors(platformID string) (configdoc.SelectorMap, error) {
	sel, err := platform.Selectors(platformID)
	if err != nil {
		return nil, err
	}
	return configdoc.SelectorMap(sel), nil
}

// templateOption prefers --template (relative to the working directory) over
// the config's template (relative to the root).
func templateOption(cli CLI, cfg *config.Config) configdoc.RenderOption {
	if cli.Template != "" {
		return configdoc.WithTemplateFile(cli.Template)
	}
	return configdoc.WithTemplateFile(config.ResolvePath(cli.Root, cfg.Template))
}

func check(writer *configdoc.Writer, doc string, out io.Writer, logger *logging.Logger) error {
	drifts, err := writer.Check(doc)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		logger.Info("Documents up to date", "paths", writer.Paths())
		return nil
	}

	for _, d := range drifts {
		if d.Missing {
			logger.Warn("Document missing", "path", d.Path)
			continue
		}
		logger.Warn("Document out of date", "path", d.Path)
		if _, err := io.WriteString(out, d.Diff); err != nil {
			return errors.Wrapf(err, errors.KindIO, "write diff for %s", d.Path)
		}
	}
	err = errors.Errorf(errors.KindStale, "%d of %d documents out of date", len(drifts), len(writer.Paths()))
	return errors.Attr(err, "hint", "go run ./cmd/gen-construct-docs")
}
