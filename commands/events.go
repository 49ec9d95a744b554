package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newEventsCommand(a *app) *cobra.Command {
	var f services.EventFilter
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Campus events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Events.List(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tTITLE\tDATE\tTIME\tLOCATION\tSEATS", func(w io.Writer) {
					for _, e := range list {
						seats := "unlimited"
						if e.Capacity > 0 {
							seats = fmt.Sprintf("%d/%d", len(e.Attendees), e.Capacity)
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s-%s\t%s\t%s\n", e.ID, e.Title, e.Date, e.StartTime, e.EndTime, e.Location, seats)
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&f.UpcomingOnly, "upcoming", false, "only events that have not started")
	fl.BoolVar(&f.AttendingOnly, "attending", false, "only events you RSVPed to")
	fl.StringVar(&f.Search, "search", "", "title or location contains")

	cmd.AddCommand(
		newEventCreateCommand(a),
		newEventDeleteCommand(a),
		newRSVPCommand(a, "rsvp", true),
		newRSVPCommand(a, "cancel-rsvp", false),
	)
	return cmd
}

func newEventCreateCommand(a *app) *cobra.Command {
	var e models.Event
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Announce an event (faculty, staff, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Title = args[0]
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Events.Create(ctx, e)
				if err != nil {
					return err
				}
				a.printf("Created event #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&e.Description, "description", "", "description")
	fl.StringVar(&e.Location, "location", "", "location")
	fl.StringVar(&e.Date, "date", "", "date (YYYY-MM-DD)")
	fl.StringVar(&e.StartTime, "start", "", "start time (HH:MM)")
	fl.StringVar(&e.EndTime, "end", "", "end time (HH:MM)")
	fl.IntVar(&e.Capacity, "capacity", 0, "seats, 0 for unlimited")
	return cmd
}

func newEventDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Remove an event (faculty, staff, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "event-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Events.Delete(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted event #%d\n", id)
				return nil
			})
		},
	}
}

func newRSVPCommand(a *app, use string, attend bool) *cobra.Command {
	short := "Reserve a seat at an event"
	if !attend {
		short = "Give up your seat at an event"
	}
	return &cobra.Command{
		Use:   use + " <event-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "event-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				var err error
				if attend {
					_, err = a.svc.Events.RSVP(ctx, id)
				} else {
					_, err = a.svc.Events.CancelRSVP(ctx, id)
				}
				if err != nil {
					return err
				}
				a.printf("RSVP updated for event #%d\n", id)
				return nil
			})
		},
	}
}
