package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"campus/models"
	"campus/services"
)

func newCafeteriaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cafeteria",
		Aliases: []string{"cafe"},
		Short:   "Browse the menu and place orders",
	}
	cmd.AddCommand(
		newMenuCommand(a),
		newOrderCommand(a),
		newOrdersCommand(a),
		newOrderStatusCommand(a),
		newAddItemCommand(a),
		newDeleteItemCommand(a),
	)
	return cmd
}

func newMenuCommand(a *app) *cobra.Command {
	var f services.MenuFilter
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Cafeteria.Items(ctx, f)
				if err != nil {
					return err
				}
				return a.table(list, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE", func(w io.Writer) {
					for _, it := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%t\n", it.ID, it.Name, it.Category, it.Price, it.Available)
					}
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Category, "category", "", "category")
	fl.BoolVar(&f.AvailableOnly, "available", false, "only available items")
	fl.Float64Var(&f.MaxPrice, "max-price", 0, "maximum price")
	fl.StringVar(&f.Search, "search", "", "name contains")
	return cmd
}

// parseOrderLines reads "itemID:quantity" pairs; the quantity defaults to 1.
func parseOrderLines(args []string) (models.OrderRequest, error) {
	var req models.OrderRequest
	for _, arg := range args {
		idPart, qtyPart, found := strings.Cut(arg, ":")
		id, err := parseID(idPart, "item id")
		if err != nil {
			return req, err
		}
		qty := 1
		if found {
			if qty, err = strconv.Atoi(qtyPart); err != nil || qty <= 0 {
				return req, fmt.Errorf("quantity must be a positive number, got %q", qtyPart)
			}
		}
		req.Items = append(req.Items, models.OrderLine{ItemID: id, Quantity: qty})
	}
	return req, nil
}

func newOrderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order <item-id[:qty]>...",
		Short: "Place an order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseOrderLines(args)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, preview, err := a.svc.Cafeteria.PlaceOrder(ctx, req)
				if err != nil {
					return err
				}
				a.printf("Order #%d placed, total %.2f", out.ID, out.Total)
				if preview != out.Total {
					a.printf(" (menu showed %.2f)", preview)
				}
				a.printf("\n")
				return nil
			})
		},
	}
}

func newOrdersCommand(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				list, err := a.svc.Cafeteria.Orders(ctx, models.OrderStatus(strings.ToUpper(status)))
				if err != nil {
					return err
				}
				return a.table(list, "ID\tUSER\tITEMS\tTOTAL\tSTATUS\tPLACED", func(w io.Writer) {
					for _, o := range list {
						fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%s\t%s\n", o.ID, o.UserID, len(o.Items), o.Total, o.Status, o.CreatedAt.Local().Format("2006-01-02 15:04"))
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "order status")
	return cmd
}

func newOrderStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Move an order along (staff, admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order-id")
			if err != nil {
				return err
			}
			status := models.OrderStatus(strings.ToUpper(args[1]))
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Cafeteria.UpdateOrderStatus(ctx, id, status)
				if err != nil {
					return err
				}
				a.printf("Order #%d is now %s\n", out.ID, out.Status)
				return nil
			})
		},
	}
}

func newAddItemCommand(a *app) *cobra.Command {
	it := models.CafeteriaItem{Available: true}
	cmd := &cobra.Command{
		Use:   "add-item <name>",
		Short: "Add a menu item (staff, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it.Name = args[0]
			return a.run(cmd.Context(), func(ctx context.Context) error {
				out, err := a.svc.Cafeteria.CreateItem(ctx, it)
				if err != nil {
					return err
				}
				a.printf("Added item #%d\n", out.ID)
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&it.Category, "category", "", "category")
	fl.Float64Var(&it.Price, "price", 0, "price")
	fl.BoolVar(&it.Available, "available", true, "can be ordered")
	return cmd
}

func newDeleteItemCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-item <item-id>",
		Short: "Remove a menu item (staff, admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "item-id")
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), func(ctx context.Context) error {
				if err := a.svc.Cafeteria.DeleteItem(ctx, id); err != nil {
					return err
				}
				a.printf("Deleted item #%d\n", id)
				return nil
			})
		},
	}
}
