package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd(a *app) *cobra.Command {
	var name, text string

	cmd := &cobra.Command{
		Use:   "send [name] [message...]",
		Short: "Encrypt and store a message under a name",
		Example: `  msgform send alice "meet at noon"
  msgform send --name alice --message "meet at noon"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !cmd.Flags().Changed("name") {
				name = args[0]
				args = args[1:]
			}
			if len(args) > 0 && !cmd.Flags().Changed("message") {
				text = strings.Join(args, " ")
			}

			ctx := cmd.Context()
			rt, err := a.runtime(ctx)
			if err != nil {
				return err
			}
			view, outcome := rt.Forms.HandleSend(ctx, name, text)
			return a.show(ctx, rt, view, outcome)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name to store the message under")
	cmd.Flags().StringVar(&text, "message", "", "message to encrypt")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "get [name]",
		Aliases: []string{"retrieve"},
		Short:   "Retrieve and decrypt the message stored under a name",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("name") {
				name = args[0]
			}

			ctx := cmd.Context()
			rt, err := a.runtime(ctx)
			if err != nil {
				return err
			}
			view, outcome := rt.Forms.HandleRetrieve(ctx, name)
			return a.show(ctx, rt, view, outcome)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name to look up")
	return cmd
}
