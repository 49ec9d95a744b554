package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newLostFoundCommand(a *app) *cobra.Command {
	var f services.LostItemFilter
	var status string
	cmd := &cobra.Command{
		Use:     "lostfound",
		Aliases: []string{"lost-found"},
		Short:   "Lost and found board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Status = models.LostItemStatus(strings.ToUpper(status))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.LostFound.List(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tTITLE\tCATEGORY\tLOCATION\tSTATUS\tREPORTED", func(w io.Writer) {
					for _, it := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Title, it.Category, it.Location, it.Status, it.ReportedAt.Local().Format("2006-01-02"))
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&status, "status", "", "LOST, FOUND or CLAIMED")
	fl.StringVar(&f.Category, "category", "", "category")
	fl.StringVar(&f.Search, "search", "", "title, description or location contains")

	cmd.AddCommand(newReportCommand(a), newLostStatusCommand(a), newLostDeleteCommand(a))
	return cmd
}

func newReportCommand(a *app) *cobra.Command {
	var it models.LostItem
	var found bool
	cmd := &cobra.Command{
		Use:   "report <title>",
		Short: "Report a lost or found item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it.Title = args[0]
			it.Status = models.ItemLost
			if found {
				it.Status = models.ItemFound
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.LostFound.Report(ctx, it)
				if err != nil {
					return err
				}
				a.printf("Reported item #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&it.Description, "description", "", "description")
	fl.StringVar(&it.Category, "category", "", "category")
	fl.StringVar(&it.Location, "location", "", "where it was lost or found")
	fl.BoolVar(&found, "found", false, "you found the item")
	return cmd
}

func newLostStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <item-id> <LOST|FOUND|CLAIMED>",
		Short: "Update a report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item-id")
			if err != nil {
				return err
			}
			status := models.LostItemStatus(strings.ToUpper(args[1]))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.LostFound.UpdateStatus(ctx, id, status)
				if err != nil {
					return err
				}
				a.printf("Item #%d is now %s\n", out.ID, out.Status)
				return nil
			})
		},
	}
}

func newLostDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Remove a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.LostFound.Delete(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted item #%d\n", id)
				return nil
			})
		},
	}
}
