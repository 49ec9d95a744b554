package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"campus/client"
	"campus/models"
	"campus/session"
)

func newLoginCommand(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}
			var res session.LoginResult
			err := client.Retry(cmd.Context(), a.retries, func(ctx context.Context) error {
				var err error
				res, err = a.session.Login(ctx, args[0], password)
				if err != nil && !client.IsNetworkError(err) {
					return errors.New(res.Message)
				}
				return err
			})
			if err != nil {
				return err
			}
			if res.Role == "" {
				a.printf("Logged in as %s; your profile could not be loaded yet\n", args[0])
				return nil
			}
			a.printf("Logged in as %s (%s)\n", args[0], res.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when empty)")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Logout()
			a.printf("Logged out\n")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				user, err := a.session.CurrentUser(ctx)
				if err != nil {
					return err
				}
				if a.json {
					return a.printJSON(user)
				}
				a.printf("%s <%s>\nrole: %s\nscreens: %s\n", user.FullName, user.Email, user.Role, strings.Join(user.Role.Screens(), ", "))
				return nil
			})
		},
	}
}

func newRegisterCommand(a *app) *cobra.Command {
	var req models.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]
			if role != "" {
				req.Role = models.ParseRole(role)
				if !req.Role.Valid() {
					return models.Invalid("role", "unknown role %q", role)
				}
			}
			if req.Password == "" {
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Password = p
			}
			res, err := a.session.Register(cmd.Context(), req)
			if err != nil && !client.IsNetworkError(err) {
				return errors.New(res.Message)
			}
			if err != nil {
				return err
			}
			a.printf("Registered %s (%s). You can now log in.\n", req.Username, res.User.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&req.Password, "password", "p", "", "password (read from stdin when empty)")
	f.StringVar(&req.FullName, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&role, "role", "", "STUDENT, FACULTY or STAFF")
	return cmd
}

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the landing screen for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), func(ctx context.Context) error {
				d, err := a.svc.Dashboard.Load(ctx)
				if err != nil {
					return err
				}
				if a.json {
					return a.printJSON(d)
				}
				a.printf("Welcome, %s (%s)\n", d.User.FullName, d.User.Role)
				a.printf("Screens: %s\n", strings.Join(d.Screens, ", "))
				section(a, "Upcoming exams", len(d.UpcomingExams), func(i int) string {
					e := d.UpcomingExams[i]
					return fmt.Sprintf("%s  %s %s-%s  %s", e.Title, e.Date, e.StartTime, e.EndTime, e.Location)
				})
				section(a, "Upcoming events", len(d.UpcomingEvents), func(i int) string {
					e := d.UpcomingEvents[i]
					return fmt.Sprintf("%s  %s %s  %s", e.Title, e.Date, e.StartTime, e.Location)
				})
				section(a, "My bookings", len(d.MyBookings), func(i int) string {
					b := d.MyBookings[i]
					return fmt.Sprintf("#%d facility %d  %s %s-%s  %s", b.ID, b.FacilityID, b.Date, b.StartTime, b.EndTime, b.Purpose)
				})
				section(a, "Open orders", len(d.OpenOrders), func(i int) string {
					o := d.OpenOrders[i]
					return fmt.Sprintf("#%d  %s  %.2f", o.ID, o.Status, o.Total)
				})
				if m := d.Metrics; m != nil {
					a.printf("\nUsers %d, facilities %d, bookings %d, open orders %d, exams %d, events %d, lost items %d\n",
						m.Users, m.Facilities, m.Bookings, m.OpenOrders, m.Exams, m.Events, m.LostItems)
				}
				return nil
			})
		},
	}
}

func section(a *app, title string, n int, line func(i int) string) {
	if n == 0 {
		return
	}
	a.printf("\n%s\n", title)
	for i := 0; i < n; i++ {
		a.printf("  %s\n", line(i))
	}
}
