package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-msgform"
	"github.com/goliatone/go-msgform/pkg/contract"
)

func newContractCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Show the backend operations declared by the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.contractSource()
			if err != nil {
				return err
			}

			doc := contract.DefaultDocument()
			if src != nil {
				doc, err = msgform.NewLoader(contract.WithHTTPFallback(a.cfg.Timeout)).Load(ctx, src)
				if err != nil {
					return err
				}
			}
			if raw {
				_, err := a.stdout.Write(doc.Raw())
				return err
			}

			ops, err := msgform.NewParser().Operations(ctx, doc)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "# %s\n", doc.Location())
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "OPERATION\tMETHOD\tPATH\tSUMMARY")
			for _, id := range ops.IDs() {
				op := ops[id]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.ID, strings.ToUpper(op.Method), op.Path, op.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the contract document as loaded")
	return cmd
}
