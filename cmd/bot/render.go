package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/spf13/cobra"
)

func renderMonthCmd() *cobra.Command {
	var (
		month            string
		out              string
		appointmentsPath string
		timezone         string
	)

	cmd := &cobra.Command{
		Use:   "render-month",
		Short: "Render the month calendar image to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("load timezone %q: %w", timezone, err)
			}

			now := time.Now().In(loc)
			state := calendar.NewViewState(now)
			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, loc)
				if err != nil {
					return fmt.Errorf("parse month %q: expected YYYY-MM", month)
				}
				state = calendar.NewViewState(m)
			}

			var appointments []model.Appointment
			if appointmentsPath != "" {
				raw, err := os.ReadFile(appointmentsPath)
				if err != nil {
					return fmt.Errorf("read appointments: %w", err)
				}
				if err := json.Unmarshal(raw, &appointments); err != nil {
					return fmt.Errorf("decode appointments: %w", err)
				}
			}

			view := calendar.Project(state, appointments, nil, now)
			png, err := common.GenerateMonthImage(view)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}

			fmt.Printf("Wrote %s (%d bytes, %d appointments)\n", out, len(png), len(appointments))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to render as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&out, "out", "month.png", "output PNG path")
	cmd.Flags().StringVar(&appointmentsPath, "appointments", "", "JSON file with an array of appointments")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "IANA timezone used for today and the grid")

	return cmd
}
