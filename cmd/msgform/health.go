package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend answers its welcome endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := a.runtime(ctx)
			if err != nil {
				return err
			}
			welcome, err := rt.Client.Home(ctx)
			if err != nil {
				return fmt.Errorf("backend %s unreachable: %w", rt.Client.BaseURL(), err)
			}
			fmt.Fprintf(a.stdout, "%s: %s\n", rt.Client.BaseURL(), welcome)
			return nil
		},
	}
}
