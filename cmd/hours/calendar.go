package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/render"
)

var errCancelled = errors.New("cancelled")

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Daily totals of one user across a calendar year",
	Long: `Sum one user's time per day for every day of the year. Without --user
an interactive picker lists the users of the archive.`,
	Example: `  hours calendar --year 2024 --user 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		a := getApp(cmd)

		year, _ := cmd.Flags().GetInt("year")
		if year < 1 || year > 9999 {
			return cmdErr(fmt.Errorf("invalid year %d", year), output.ErrValidation)
		}

		var user model.User
		if cmd.Flags().Changed("user") {
			id, _ := cmd.Flags().GetInt("user")
			snap, err := a.pub.Current()
			if err != nil {
				return domainErr(err)
			}
			// An unknown id still goes through the report so it fails the same way.
			user, _ = snap.User(id)
			user.ID = id
		} else {
			if w.JSONMode || !isInteractive() {
				return cmdErr(errors.New("--user is required when not running in a terminal"), output.ErrValidation)
			}
			picked, err := pickUser(a)
			if errors.Is(err, errCancelled) {
				w.Info("Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			user = picked
		}

		days, err := a.svc.Calendar(year, user.ID)
		if err != nil {
			return domainErr(err)
		}

		return w.Report(days, func() (string, error) {
			return render.RenderCalendar(user, year, days), nil
		})
	},
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func pickUser(a *app) (model.User, error) {
	users, err := a.svc.Users()
	if err != nil {
		return model.User{}, domainErr(err)
	}
	if len(users) == 0 {
		return model.User{}, cmdErr(errors.New("the archive has no users"), output.ErrNotFound)
	}

	opts := make([]huh.Option[int], 0, len(users))
	for _, u := range users {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d)", u.Name, u.ID), u.ID))
	}

	var id int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Whose calendar?").
				Options(opts...).
				Value(&id),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return model.User{}, errCancelled
		}
		return model.User{}, cmdErr(fmt.Errorf("interactive form failed: %w", err), output.ErrGeneral)
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{ID: id}, nil
}

func init() {
	calendarCmd.Flags().Int("year", time.Now().Year(), "Calendar year")
	calendarCmd.Flags().Int("user", 0, "User id")
	rootCmd.AddCommand(calendarCmd)
}
