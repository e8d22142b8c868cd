package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/ctorralba/pgprobe/internal/core/domain"
	"github.com/ctorralba/pgprobe/internal/core/ports"
	"github.com/ctorralba/pgprobe/internal/core/services"
)

// Fixed diagnostic queries. Sent verbatim; none of them take parameters.
const (
	uptimeQuery = `SELECT date_trunc('second', current_timestamp - pg_postmaster_start_time()) AS uptime`

	versionQuery = `SELECT version()`

	publicTablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`

	extensionsQuery = `SELECT name, installed_version, default_version FROM pg_available_extensions WHERE installed_version IS NOT NULL ORDER BY name`
)

const welcomeBanner = `
    ==================================================
    =  pgprobe - interactive PostgreSQL diagnostics  =
    ==================================================
`

const helpMenu = `
    Help Menu:
    =   0 - Exit the program
    =   1 - Save your connection information to a file
    =   2 - Get the uptime of your database
    =   3 - Get the version of your database
    =   4 - List all public tables in your database
    =   5 - List all installed extensions
    =   6 - Run a custom query
    =   7 - Attempt to reestablish the connection
    =   8 - Load a connection profile from a file
`

// Dispatcher is the interactive loop: it reads one menu selection at a
// time, invokes the mapped operation, renders result or error, and reports
// the connection status before every prompt. Only selection 0 (or losing
// the input stream) leaves the loop.
type Dispatcher struct {
	session *services.Session
	store   ports.ProfileStore
	in      *bufio.Reader
	out     io.Writer
}

// NewDispatcher creates a dispatcher reading selections from in and
// writing everything user-visible to out.
func NewDispatcher(session *services.Session, store ports.ProfileStore, in io.Reader, out io.Writer) *Dispatcher {
	return &Dispatcher{
		session: session,
		store:   store,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run drives the menu loop until the operator selects Exit or the input
// stream ends. Operation failures are rendered and the loop continues.
func (d *Dispatcher) Run(ctx context.Context) {
	fmt.Fprint(d.out, welcomeBanner)
	fmt.Fprint(d.out, helpMenu)

	for {
		d.printStatus()

		selection, err := d.prompt("Please enter an option: ")
		if err != nil {
			// Terminal stream closed; leave as if Exit had been chosen.
			fmt.Fprintln(d.out, "\nExiting...")
			return
		}

		if selection == "0" {
			fmt.Fprintln(d.out, "Exiting...")
			return
		}

		if err := d.dispatch(ctx, selection); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(d.out, "\nExiting...")
				return
			}
			d.renderError(err)
		}
	}
}

// dispatch executes one menu selection. It returns io.EOF only when the
// input stream died mid-prompt; every other failure comes back as a
// taxonomy error for rendering.
func (d *Dispatcher) dispatch(ctx context.Context, selection string) error {
	switch selection {
	case "1":
		return d.saveProfile()
	case "2":
		return d.runQuery(ctx, uptimeQuery)
	case "3":
		return d.runQuery(ctx, versionQuery)
	case "4":
		return d.runQuery(ctx, publicTablesQuery)
	case "5":
		return d.runQuery(ctx, extensionsQuery)
	case "6":
		return d.customQuery(ctx)
	case "7":
		if err := d.session.Reconnect(ctx); err != nil {
			return err
		}
		fmt.Fprintln(d.out, "Reconnected.")
		return nil
	case "8":
		return d.loadProfile(ctx)
	default:
		fmt.Fprint(d.out, helpMenu)
		return domain.NewError(domain.KindInvalidSelection,
			fmt.Sprintf("unrecognized option %q", selection), nil)
	}
}

// saveProfile persists the session's current profile under a name the
// operator supplies.
func (d *Dispatcher) saveProfile() error {
	profile, ok := d.session.Profile()
	if !ok {
		return domain.NewError(domain.KindNoProfile, "no connection information to save", nil)
	}

	name, err := d.prompt("Profile name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return domain.NewError(domain.KindInvalidSelection, "profile name cannot be empty", nil)
	}

	if err := d.store.Save(name, profile); err != nil {
		return err
	}

	fmt.Fprintf(d.out, "Successfully saved profile %q.\n", name)
	return nil
}

// loadProfile reads a profile by name and connects with it.
func (d *Dispatcher) loadProfile(ctx context.Context) error {
	name, err := d.prompt("Profile name: ")
	if err != nil {
		return err
	}

	profile, err := d.store.Load(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Profile %q found, connecting.\n", name)

	if err := d.session.Connect(ctx, profile); err != nil {
		return err
	}

	fmt.Fprintln(d.out, "Successfully connected.")
	return nil
}

// customQuery prompts for SQL text and runs it verbatim. The operator is
// trusted; there is no parameterization or injection guarding here.
func (d *Dispatcher) customQuery(ctx context.Context) error {
	sql, err := d.prompt("SQL> ")
	if err != nil {
		return err
	}
	if sql == "" {
		return nil
	}
	return d.runQuery(ctx, sql)
}

func (d *Dispatcher) runQuery(ctx context.Context, sql string) error {
	result, err := d.session.RunQuery(ctx, sql)
	if err != nil {
		return err
	}
	d.renderResult(result)
	return nil
}

// renderResult prints a query result as a table.
func (d *Dispatcher) renderResult(result *domain.QueryResult) {
	if result.Empty() {
		fmt.Fprintln(d.out, "(no rows)")
		return
	}

	data := pterm.TableData{result.Columns}
	for _, row := range result.Rows {
		data = append(data, row)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(d.out).WithData(data).Render(); err != nil {
		fmt.Fprintf(d.out, "could not render result: %v\n", err)
	}
}

// renderError reports an operation failure to the operator. Taxonomy
// errors carry their kind; anything else prints as-is.
func (d *Dispatcher) renderError(err error) {
	red := color.New(color.FgRed)
	if kind := domain.KindOf(err); kind != domain.KindUnknown {
		red.Fprintf(d.out, "Error (%s): %v\n", kind, err)
		return
	}
	red.Fprintf(d.out, "Error: %v\n", err)
}

func (d *Dispatcher) printStatus() {
	fmt.Fprint(d.out, "Connection status: ")
	if d.session.Status() == services.Connected {
		color.New(color.FgGreen, color.Bold).Fprintln(d.out, "Connected")
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(d.out, "Disconnected")
	}
}

// prompt prints a label and reads one trimmed line of input. A final line
// without a trailing newline still counts; the stream only reads as closed
// once no input remains.
func (d *Dispatcher) prompt(label string) (string, error) {
	fmt.Fprint(d.out, label)
	line, err := d.in.ReadString('\n')
	if err != nil {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}
