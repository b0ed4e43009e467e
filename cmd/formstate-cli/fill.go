package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func newFillCommand(a *app) *cobra.Command {
	var confirm bool
	var maxAttempts int

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Prompt for every field and print the collected values",
		Long: `fill asks for each field in order, shows the validation error of a rejected
answer and asks again. Once every required field is valid the values are
printed as json, form (url-encoded) or pretty text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := tui.ParseOutputFormat(a.output)
			if !ok {
				return fmt.Errorf("unsupported --output %q for fill: use json, form or pretty", a.output)
			}
			fields, err := a.loadFields(cmd.Context())
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithOutputFormat(format),
				tui.WithConfirmSubmit(confirm),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
				tui.WithLogger(a.logger),
				tui.WithControllerOptions(formstate.WithSettleDelay(a.settleDelay)),
			)
			if err != nil {
				return err
			}
			payload, err := renderer.Render(cmd.Context(), fields)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(payload))
			return err
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "ask for confirmation before printing")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "re-prompt limit per field (0 = unlimited)")
	return cmd
}
