package main

import (
	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/render"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every user of the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		users, err := getApp(cmd).svc.Users()
		if err != nil {
			return domainErr(err)
		}
		w.Success(users, render.RenderUsers(users))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
