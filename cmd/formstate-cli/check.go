package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/metrics"
	"github.com/goliatone/go-formstate/pkg/model"
)

var errNotReady = errors.New("form not ready: required fields are empty or invalid")

type fieldReport struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Type   model.FieldType `json:"type"`
	Value  string          `json:"value"`
	Error  string          `json:"error,omitempty"`
	Status string          `json:"status"`
}

type checkReport struct {
	Ready  bool          `json:"ready"`
	Fields []fieldReport `json:"fields"`
}

func newCheckCommand(a *app) *cobra.Command {
	var valuesPath string
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Replay a values file through the controller and report each field",
		Long: `check applies every value from a JSON or YAML mapping (field id to value) as
an edit, settles the field and prints the resulting display state. The
command exits non-zero when the form is not ready.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.output != "json" && a.output != "pretty" {
				return fmt.Errorf("unsupported --output %q for check: use json or pretty", a.output)
			}
			fields, err := a.loadFields(cmd.Context())
			if err != nil {
				return err
			}
			values, err := a.readValues(valuesPath)
			if err != nil {
				return err
			}

			opts := []formstate.Option{
				formstate.WithSettleDelay(a.settleDelay),
				formstate.WithLogger(a.logger),
			}
			registry := prometheus.NewRegistry()
			if withMetrics {
				collector := metrics.New()
				if err := collector.Register(registry); err != nil {
					return err
				}
				opts = append(opts, formstate.WithObserver(collector))
			}

			report, err := runCheck(fields, values, opts...)
			if err != nil {
				return err
			}
			if err := a.writeReport(report); err != nil {
				return err
			}
			if withMetrics {
				if err := writeMetrics(a.stderr, registry); err != nil {
					return err
				}
			}
			if !report.Ready {
				return errNotReady
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON or YAML values file, - for stdin (required)")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print controller metrics to stderr")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func runCheck(fields []model.Field, values map[string]string, opts ...formstate.Option) (checkReport, error) {
	ctrl, err := formstate.New(fields, nil, opts...)
	if err != nil {
		return checkReport{}, err
	}
	defer ctrl.Close()

	ids := model.IDs(fields)
	var unknown []string
	for id := range values {
		if !slices.Contains(ids, id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return checkReport{}, fmt.Errorf("%w: %s", formstate.ErrUnknownField, strings.Join(unknown, ", "))
	}

	for _, id := range ids {
		value, ok := values[id]
		if !ok {
			continue
		}
		if err := ctrl.OnFieldEdit(id, value); err != nil {
			return checkReport{}, err
		}
		ctrl.Settle(id)
	}

	report := checkReport{Ready: ctrl.Ready()}
	for _, view := range ctrl.Fields() {
		value := view.Value
		if view.Field.Type == model.FieldTypePassword && value != "" {
			value = strings.Repeat("*", 8)
		}
		report.Fields = append(report.Fields, fieldReport{
			ID:     view.Field.ID,
			Label:  view.DisplayLabel(),
			Type:   view.Field.Type,
			Value:  value,
			Error:  view.Error,
			Status: view.Status.String(),
		})
	}
	return report, nil
}

func (a *app) readValues(path string) (map[string]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	// JSON documents are valid YAML, so one decoder covers both.
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values %s: %w", path, err)
	}
	return values, nil
}

func (a *app) writeReport(report checkReport) error {
	if a.output == "json" {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tSTATUS\tVALUE\tERROR")
	for _, field := range report.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", field.Label, field.Status, field.Value, field.Error)
	}
	fmt.Fprintf(tw, "\nready: %t\n", report.Ready)
	return tw.Flush()
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
