package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newFacilitiesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "facilities",
		Aliases: []string{"fac"},
		Short:   "Browse and manage campus facilities",
	}
	cmd.AddCommand(
		newFacilityListCommand(a),
		newFacilityShowCommand(a),
		newFacilityCreateCommand(a),
		newFacilityDeleteCommand(a),
	)
	return cmd
}

func newFacilityListCommand(a *app) *cobra.Command {
	var f services.FacilityFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Facilities.List(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tNAME\tTYPE\tLOCATION\tCAPACITY\tAVAILABLE", func(w io.Writer) {
					for _, fac := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%t\n", fac.ID, fac.Name, fac.Type, fac.Location, fac.Capacity, fac.Available)
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Type, "type", "", "facility type")
	fl.IntVar(&f.MinCapacity, "min-capacity", 0, "minimum capacity")
	fl.BoolVar(&f.AvailableOnly, "available", false, "only available facilities")
	fl.StringVar(&f.Search, "search", "", "name or location contains")
	return cmd
}

func newFacilityShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a facility and its bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				fac, err := a.svc.Facilities.Get(ctx, id)
				if err != nil {
					return err
				}
				bookings, err := a.svc.Facilities.Bookings(ctx, id)
				if err != nil {
					return err
				}
				if a.json {
					return a.printJSON(map[string]any{"facility": fac, "bookings": bookings})
				}
				a.printf("%s (%s) at %s, capacity %d\n\n", fac.Name, fac.Type, fac.Location, fac.Capacity)
				return printBookings(a, bookings)
			})
		},
	}
}

func newFacilityCreateCommand(a *app) *cobra.Command {
	fac := models.Facility{Available: true}
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Add a facility (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fac.Name = args[0]
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Facilities.Create(ctx, fac)
				if err != nil {
					return err
				}
				a.printf("Created facility #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&fac.Type, "type", "", "facility type")
	fl.StringVar(&fac.Location, "location", "", "location")
	fl.IntVar(&fac.Capacity, "capacity", 0, "capacity")
	fl.BoolVar(&fac.Available, "available", true, "open for booking")
	return cmd
}

func newFacilityDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a facility (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Facilities.Delete(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted facility #%d\n", id)
				return nil
			})
		},
	}
}

func newBookingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List, make and cancel facility bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Facilities.MyBookings(ctx)
				if err != nil {
					return err
				}
				return printBookings(a, list)
			})
		},
	}
	cmd.AddCommand(newBookCommand(a), newCancelBookingCommand(a))
	return cmd
}

func printBookings(a *app, list []models.Booking) error {
	return a.table(list, "ID\tFACILITY\tDATE\tTIME\tPURPOSE\tSTATUS", func(w io.Writer) {
		for _, b := range list {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s-%s\t%s\t%s\n", b.ID, b.FacilityID, b.Date, b.StartTime, b.EndTime, b.Purpose, b.Status)
		}
	})
}

func newBookCommand(a *app) *cobra.Command {
	var b models.Booking
	cmd := &cobra.Command{
		Use:   "book <facility-id>",
		Short: "Book a facility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "facility-id")
			if err != nil {
				return err
			}
			b.FacilityID = id
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Facilities.Book(ctx, b)
				if err != nil {
					return err
				}
				a.printf("Booked #%d on %s %s-%s\n", out.ID, out.Date, out.StartTime, out.EndTime)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&b.Date, "date", "", "date (YYYY-MM-DD)")
	fl.StringVar(&b.StartTime, "start", "", "start time (HH:MM)")
	fl.StringVar(&b.EndTime, "end", "", "end time (HH:MM)")
	fl.StringVar(&b.Purpose, "purpose", "", "purpose of the booking")
	return cmd
}

func newCancelBookingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "booking-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Facilities.CancelBooking(ctx, id); err != nil {
					return err
				}
				a.printf("Cancelled booking #%d\n", id)
				return nil
			})
		},
	}
}
