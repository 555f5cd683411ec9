package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/render"
)

const (
	formatTree     = "tree"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy",
	Short: "Sum time spent into a tree of dimension labels",
	Long: `Group the time logs inside the window by an ordered list of dimensions
and sum time spent at every level. Dimensions may repeat.

Dimensions: NAMESPACE, PROJECT, ISSUE, USER, PRODUCT, LABEL.`,
	Example: `  hours hierarchy --from 2024-01-01 --to 2024-02-01 --dims NAMESPACE,PROJECT,ISSUE
  hours hierarchy --dims USER,PRODUCT --format markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		win, err := getWindow(cmd)
		if err != nil {
			return err
		}
		rawDims, _ := cmd.Flags().GetStringSlice("dims")
		dims, err := model.ParseDimensions(rawDims)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case formatTree, formatJSON, formatMarkdown:
		default:
			return cmdErr(fmt.Errorf("invalid format %q: must be one of tree, json, markdown", format), output.ErrValidation)
		}

		root, err := a.svc.Hierarchy(win, dims)
		if err != nil {
			return domainErr(err)
		}

		if w.JSONMode {
			w.Success(root, "")
			return nil
		}

		switch format {
		case formatJSON:
			data, err := json.MarshalIndent(root, "", "  ")
			if err != nil {
				return cmdErr(err, output.ErrGeneral)
			}
			w.Document(string(data))
		case formatMarkdown:
			md := render.HierarchyMarkdown(root, dims, win)
			rendered, err := render.RenderMarkdown(md)
			if err != nil {
				rendered = md
			}
			w.Document(rendered)
		default:
			w.Info("%s grouped by %s", win, joinDims(dims))
			w.Success(root, render.RenderHierarchy(root, dims))
		}
		return nil
	},
}

func joinDims(dims []model.Dimension) string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}
	return strings.Join(names, " > ")
}

func init() {
	addWindowFlags(hierarchyCmd)
	hierarchyCmd.Flags().StringSlice("dims", []string{"NAMESPACE", "PROJECT", "ISSUE"}, "Ordered dimensions, one tree level each")
	hierarchyCmd.Flags().String("format", formatTree, "Output format: tree, json, markdown")
	rootCmd.AddCommand(hierarchyCmd)
}
