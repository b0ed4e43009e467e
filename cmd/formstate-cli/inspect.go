package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/openapi"
)

func newInspectCommand(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved field descriptors as JSON",
		Long: `inspect prints the normalised descriptor list for the selected source. With
--list it prints the form ids of --file or the operation ids of --openapi
instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				ids, err := a.listSources(cmd)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, strings.Join(ids, "\n"))
				return err
			}

			fields, err := a.loadFields(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(fields)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list form or operation ids instead of fields")
	return cmd
}

func (a *app) listSources(cmd *cobra.Command) ([]string, error) {
	switch {
	case a.openapiPath != "":
		data, err := os.ReadFile(a.openapiPath)
		if err != nil {
			return nil, err
		}
		return openapi.OperationIDs(cmd.Context(), data)
	case a.file != "":
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		return store.IDs(), nil
	default:
		return nil, errNoSource
	}
}
