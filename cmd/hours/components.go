package main

import (
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/render"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the distinct labels of a dimension inside a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		win, err := getWindow(cmd)
		if err != nil {
			return err
		}

		dimFlag, _ := cmd.Flags().GetString("dim")
		if dimFlag == "" {
			comps, err := a.svc.AllComponents(win)
			if err != nil {
				return domainErr(err)
			}
			w.Success(comps, render.RenderComponents(model.Dimensions, comps))
			return nil
		}

		d, err := model.ParseDimension(dimFlag)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}
		labels, err := a.svc.Components(win, d)
		if err != nil {
			return domainErr(err)
		}
		w.Success(labels, render.RenderComponents([]model.Dimension{d}, map[model.Dimension][]string{d: labels}))
		return nil
	},
}

func init() {
	addWindowFlags(componentsCmd)
	componentsCmd.Flags().String("dim", "", "Dimension to list (default: every dimension)")
	rootCmd.AddCommand(componentsCmd)
}
