package main

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prerender/internal/adapters/fs"
	"github.com/3-lines-studio/prerender/internal/adapters/minify"
	"github.com/3-lines-studio/prerender/internal/core"
	"github.com/3-lines-studio/prerender/internal/usecase"
)

func newRoutesCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the concrete routes a generate run would render",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sources, err := paramSources(cfg)
			if err != nil {
				return err
			}

			service := usecase.NewGenerateService(nil, nil, minify.New(), fs.NewOSFileSystem(),
				usecase.WithLogger(logger),
			)

			routes, err := service.ExpandRoutes(cmd.Context(), generateInput(cfg, sources))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plain {
				for _, route := range routes {
					fmt.Fprintln(out, route)
				}
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Route", "File"})
			for _, route := range routes {
				rel, err := core.OutputPath(route)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{route, filepath.Join(cfg.OutputDir, rel)})
			}
			t.AppendFooter(table.Row{fmt.Sprintf("%d routes", len(routes)), ""})
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print one route per line")
	return cmd
}
