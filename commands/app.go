package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"campus/client"
	"campus/config"
	"campus/services"
	"campus/session"
)

const annotationServer = "server"

// app carries what every client command shares: one HTTP client, one
// session and the screen services built on them.
type app struct {
	apiURL    string
	tokenFile string
	retries   int
	json      bool

	out     io.Writer
	client  *client.Client
	session *session.Manager
	svc     *services.Services
}

func (a *app) setup(out io.Writer) {
	baseURL := config.APIBaseURL
	if a.apiURL != "" {
		baseURL = a.apiURL
	}
	tokenFile := config.TokenFile
	if a.tokenFile != "" {
		tokenFile = a.tokenFile
	}

	a.out = out
	a.client = client.New(baseURL, client.WithTimeout(config.HTTPTimeout), client.WithLogger(config.Log))
	a.session = session.NewManager(a.client, session.NewFileStore(tokenFile), session.WithLogger(config.Log))
	a.svc = services.New(a.client, a.session, services.WithLogger(config.Log))
}

// run restores the stored session and then calls fn. Both steps are
// retried on network errors when --retry is set.
func (a *app) run(ctx context.Context, fn func(context.Context) error) error {
	if err := client.Retry(ctx, a.retries, a.session.Initialize); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}
	return client.Retry(ctx, a.retries, fn)
}

// userMessage extends client.UserMessage with the session errors.
func userMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, session.ErrNotAuthenticated):
		return "You are not logged in. Run `campus login` first."
	}
	var roleErr *session.RoleError
	if errors.As(err, &roleErr) {
		return "You do not have permission to perform this action."
	}
	return client.UserMessage(err)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table prints rows under a header, or v as JSON with --json.
func (a *app) table(v any, header string, rows func(w io.Writer)) error {
	if a.json {
		return a.printJSON(v)
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func parseID(s, name string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, s)
	}
	return id, nil
}
