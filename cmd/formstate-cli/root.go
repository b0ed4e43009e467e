package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/formfile"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

var errNoSource = errors.New("one of --file or --openapi is required")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	file        string
	form        string
	openapiPath string
	operation   string
	settleDelay time.Duration
	logLevel    string
	logFormat   string
	output      string
}

func newRootCommand(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.Discard(),
	}

	root := &cobra.Command{
		Use:   "formstate",
		Short: "Validate and fill declarative forms from the terminal",
		Long: `formstate loads field descriptors from form files (JSON, YAML, TOML) or
from the request body of an OpenAPI operation and drives them through the
form controller.

Examples:
  formstate inspect --file forms/signup.yaml
  formstate check --file forms --form signup --values answers.yaml
  formstate fill --openapi api.json --operation createUser --output form`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(a.logLevel, a.logFormat, a.stderr)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.file, "file", "", "form file or directory of form files")
	flags.StringVar(&a.form, "form", "", "form id inside --file (optional when it holds a single form)")
	flags.StringVar(&a.openapiPath, "openapi", "", "OpenAPI document to extract fields from")
	flags.StringVar(&a.operation, "operation", "", "operation id inside --openapi")
	flags.DurationVar(&a.settleDelay, "settle-delay", cfg.SettleDelay, "error suppression window after an edit")
	flags.StringVar(&a.logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	flags.StringVar(&a.output, "output", cfg.Output, "output format")

	root.AddCommand(
		newFillCommand(a),
		newCheckCommand(a),
		newInspectCommand(a),
	)
	return root
}

// loadFields resolves the descriptor list named by the source flags.
func (a *app) loadFields(ctx context.Context) ([]model.Field, error) {
	switch {
	case a.openapiPath != "" && a.file != "":
		return nil, errors.New("--file and --openapi are mutually exclusive")
	case a.openapiPath != "":
		return a.loadOpenAPI(ctx)
	case a.file != "":
		return a.loadFormFile()
	default:
		return nil, errNoSource
	}
}

func (a *app) loadOpenAPI(ctx context.Context) ([]model.Field, error) {
	if a.operation == "" {
		return nil, errors.New("--operation is required with --openapi")
	}
	extraction, err := openapi.ExtractFile(ctx, a.openapiPath, a.operation)
	if err != nil {
		return nil, err
	}
	if len(extraction.Skipped) > 0 {
		a.logger.Info("skipped non-string properties",
			slog.String("operation", extraction.OperationID),
			slog.String("properties", strings.Join(extraction.Skipped, ",")),
		)
	}
	a.logger.Debug("loaded openapi fields",
		slog.String("operation", extraction.OperationID),
		slog.Int("fields", len(extraction.Fields)),
	)
	return extraction.Fields, nil
}

func (a *app) loadFormFile() ([]model.Field, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	id := a.form
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return nil, fmt.Errorf("--form is required, available forms: %s", strings.Join(ids, ", "))
		}
		id = ids[0]
	}
	form, ok := store.Form(id)
	if !ok {
		return nil, fmt.Errorf("form %q not found, available forms: %s", id, strings.Join(store.IDs(), ", "))
	}
	a.logger.Debug("loaded form",
		slog.String("form", form.ID),
		slog.String("source", form.Source),
		slog.Int("fields", len(form.Fields)),
	)
	return form.Fields, nil
}

func (a *app) openStore() (*formfile.Store, error) {
	info, err := os.Stat(a.file)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return formfile.LoadFS(os.DirFS(a.file))
	}
	return formfile.LoadFile(a.file)
}
