package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/prompt"
)

func newPromptCmd(a *app) *cobra.Command {
	var multiline bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the store and retrieve forms interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := a.runtime(ctx)
			if err != nil {
				return err
			}
			renderer, err := rt.Renderers.Get(a.cfg.Renderer)
			if err != nil {
				return err
			}

			session, err := prompt.New(formclient.NewPage(rt.Forms),
				prompt.WithDriver(prompt.NewSurveyDriver(a.stdout)),
				prompt.WithRenderer(renderer),
				prompt.WithRenderOptions(a.renderOptions()),
				prompt.WithMultiline(multiline),
			)
			if err != nil {
				return err
			}
			if err := session.Run(ctx); err != nil && !errors.Is(err, prompt.ErrAborted) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&multiline, "multiline", false, "edit the message in a multi-line prompt")
	return cmd
}
