// desk is the terminal front door to the hospital administration API: one
// subcommand tree per portal (admin, doctor, receptionist), each driving the
// client SDK against the remote API.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medicore/hospital-desk/internal/config"
	"github.com/medicore/hospital-desk/internal/hospitalapi"
	"github.com/medicore/hospital-desk/internal/session"
	"github.com/medicore/hospital-desk/internal/staff"
)

var (
	flagLoginID  string
	flagPassword string
)

// app wires the gateway client and session for one CLI invocation.
type app struct {
	cfg  config.Config
	log  zerolog.Logger
	api  *hospitalapi.Client
	sess *session.Session
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	api := hospitalapi.New(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	return &app{
		cfg:  cfg,
		log:  log,
		api:  api,
		sess: session.New(api, log),
	}, nil
}

func (a *app) login(ctx context.Context, role staff.Role) error {
	if flagLoginID == "" || flagPassword == "" {
		return fmt.Errorf("--as and --password are required")
	}
	if err := a.sess.Login(ctx, flagLoginID, flagPassword, role); err != nil {
		return err
	}
	if exp, ok := a.sess.ExpiresAt(); ok {
		a.log.Debug().Time("expires_at", exp).Msg("session token expiry")
	}
	return nil
}

// withPortal builds a RunE that logs in under the given role before running
// the portal action.
func withPortal(role staff.Role, run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := a.login(ctx, role); err != nil {
			return err
		}
		return run(ctx, a, cmd, args)
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func main() {
	root := &cobra.Command{
		Use:           "desk",
		Short:         "Hospital administration portals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagLoginID, "as", "", "staff login id")
	root.PersistentFlags().StringVar(&flagPassword, "password", "", "staff password")

	root.AddCommand(newAdminCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newReceptionistCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
