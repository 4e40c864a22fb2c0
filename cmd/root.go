package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"concert-booking-cli/config"
	"concert-booking-cli/model"
	"concert-booking-cli/service"
	"concert-booking-cli/store"
	"concert-booking-cli/tui"
)

const appName = "tms"

type BuildInfo struct {
	Version string
	Commit  string
}

func (b BuildInfo) String() string {
	s := fmt.Sprintf("%s %s", appName, b.Version)
	if b.Commit != "none" && b.Commit != "" {
		s += fmt.Sprintf(" (%s)", b.Commit)
	}
	return s
}

type options struct {
	customer     bool
	admin        bool
	envFile      string
	defaultVenue string
	logLevel     string
}

// startProgram runs the interactive session. Tests replace it.
var startProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// promptCredentials collects sign-up details. Tests replace it.
var promptCredentials = promptSignUp

func NewRootCommand(info BuildInfo, stderr io.Writer) *cobra.Command {
	var o options

	root := &cobra.Command{
		Use:   appName + " (--customer [username] [password] | --admin) <customerFile> <concertFile> <bookingFile> [venueFile...]",
		Short: "Concert ticket management from the terminal",
		Long: `Browse concerts, check ticket costs and book seats as a customer,
or manage prices and review bookings as an admin. All changes are written
back to the data files when the session ends.

In customer mode up to two leading arguments are read as username and
password. An argument counts as a data file when it contains a path
separator or an extension, starts with "assets", or names an existing file.`,
		Version:       info.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			if o.customer == o.admin {
				return errors.New(InvalidMode)
			}
			cfg, err := config.Load(o.envFile)
			if err != nil {
				return err
			}
			if c.Flags().Changed("default-venue") {
				cfg.DefaultVenue = o.defaultVenue
			}
			if c.Flags().Changed("log-level") {
				cfg.LogLevel = o.logLevel
			}
			return run(o, cfg, args, stderr)
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")
	root.Flags().BoolVar(&o.customer, "customer", false, "run in customer mode")
	root.Flags().BoolVar(&o.admin, "admin", false, "run in admin mode")
	root.Flags().StringVar(&o.envFile, "env-file", ".env", "optional file of environment variables to load")
	root.Flags().StringVar(&o.defaultVenue, "default-venue", config.DefaultVenuePath, "fallback venue layout, used when no venue file matches a concert")
	root.Flags().StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of " + appName,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), info.String())
		},
	})
	return root
}

// Execute runs the root command with args.
func Execute(info BuildInfo, args []string) error {
	root := NewRootCommand(info, os.Stderr)
	root.SetArgs(args)
	return root.Execute()
}

func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	level, ok := cfg.Level()
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		Level:           level,
		ReportTimestamp: true,
	})
	if !ok {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
	}
	return logger
}

func run(o options, cfg config.Config, args []string, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)

	var creds customerArgs
	var err error
	if o.customer {
		creds, err = parseCustomerArgs(args)
	} else {
		creds.files, err = parseFileArgs(args)
	}
	if err != nil {
		return err
	}

	paths := store.Paths{
		Customers: creds.files.customers,
		Concerts:  creds.files.concerts,
		Bookings:  creds.files.bookings,
		Venues:    withDefaultVenue(creds.files.venues, cfg.DefaultVenue),
	}
	catalog, err := store.Load(paths, logger)
	if err != nil {
		return err
	}
	office := service.New(catalog, logger)

	var customer *model.Customer
	if o.customer {
		c, err := signIn(office, creds)
		if err != nil {
			return err
		}
		customer = &c
	}

	saved := false
	save := func() error {
		if err := store.Save(paths, office.Catalog(), logger); err != nil {
			return err
		}
		saved = true
		return nil
	}

	programOpts := []tea.ProgramOption{}
	if !cfg.NoAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	var recentIDs []string
	recent, err := store.LoadRecentConcerts(paths.Concerts)
	if err != nil {
		logger.Debug("concert history unavailable", "err", err)
	}
	for _, r := range recent {
		recentIDs = append(recentIDs, r.ConcertID)
	}
	remember := func(c model.Concert) {
		if err := store.RememberConcert(paths.Concerts, c.ID, c.Artist); err != nil {
			logger.Debug("could not update concert history", "err", err)
		}
	}

	// Log lines written while the screen is owned by the TUI are held back
	// and flushed once it exits.
	var held bytes.Buffer
	logger.SetOutput(&held)
	err = startProgram(tui.New(tui.Options{
		Office:   office,
		Customer: customer,
		Save:     save,
		Recent:   recentIDs,
		Remember: remember,
	}), programOpts...)
	logger.SetOutput(stderr)
	_, _ = stderr.Write(held.Bytes())
	if err != nil {
		return err
	}
	if !saved {
		logger.Warn("session ended without saving")
	}
	return nil
}

func signIn(office *service.BoxOffice, creds customerArgs) (model.Customer, error) {
	if creds.username == "" {
		name, password, err := promptCredentials()
		if err != nil {
			return model.Customer{}, err
		}
		return office.Register(name, password), nil
	}
	password := creds.password
	if password == "" {
		var err error
		password, err = promptPassword("Enter your password")
		if err != nil {
			return model.Customer{}, err
		}
	}
	return office.Authenticate(creds.username, password)
}
