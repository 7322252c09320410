package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type loggerFactory func(cfg *config.ClientConfig) *logger.Logger

// rootOptions are the persistent flags. Non-empty values override the
// environment and the JSON config file.
type rootOptions struct {
	configPath string
	address    string
	token      string
	dsn        string
	dataFile   string
	logFile    string
	timeout    time.Duration

	newLogger loggerFactory
}

// NewRootCommand builds the go-sync-keeper client command tree.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, func(cfg *config.ClientConfig) *logger.Logger {
		return logger.NewClientLogger("client", cfg.App.LogFile)
	})
}

func newRootCommand(version string, newLogger loggerFactory) *cobra.Command {
	opts := &rootOptions{newLogger: newLogger}

	root := &cobra.Command{
		Use:           "go-sync-keeper",
		Short:         "Keep a JSON document in sync across devices",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "JSON config file path")
	flags.StringVarP(&opts.address, "address", "a", "", "sync server address")
	flags.StringVar(&opts.token, "token", "", "bearer token")
	flags.StringVar(&opts.dsn, "db", "", "local state SQLite file")
	flags.StringVarP(&opts.dataFile, "file", "f", "", "local data file")
	flags.StringVar(&opts.logFile, "log-file", "", "client log file")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (e.g. 10s)")

	root.AddCommand(
		newRunCommand(opts),
		newPushCommand(opts),
		newPullCommand(opts),
		newStatusCommand(opts),
		newResolveCommand(opts),
		newPendingCommand(opts),
		newTokenCommand(),
	)

	return root
}

func (o *rootOptions) loadConfig() (*config.ClientConfig, error) {
	cfg, err := config.GetClientConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.address != "" {
		cfg.Adapter.HTTPAddress = o.address
	}
	if o.token != "" {
		cfg.Adapter.Token = o.token
	}
	if o.dsn != "" {
		cfg.Storage.DB.DSN = o.dsn
	}
	if o.dataFile != "" {
		cfg.Workers.WatchFile = o.dataFile
	}
	if o.logFile != "" {
		cfg.App.LogFile = o.logFile
	}
	if o.timeout > 0 {
		cfg.Adapter.RequestTimeout = o.timeout
	}

	return cfg, cfg.Validate()
}

// withApp loads the configuration, opens an App for the duration of fn and
// closes it afterwards.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := o.newLogger(cfg)
	ctx := log.WithContext(cmd.Context())

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing client")
		}
	}()

	return fn(ctx, app)
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch the data file and keep it in sync until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
				defer stop()

				fmt.Fprintln(cmd.OutOrStdout(), "sync session started, press Ctrl+C to stop")
				return app.Run(ctx)
			})
		},
	}
}

func newPushCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local data to the cloud",
		Long: "Upload local data to the cloud. Data is read from --input (\"-\" for stdin)\n" +
			"or from the data file. A queued offline payload is delivered first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				payload, err := readPayload(cmd, app, input)
				if err != nil {
					return err
				}
				result := app.Push(ctx, payload)
				printUploadResult(cmd.OutOrStdout(), result)
				if result.Outcome == models.UploadFailed {
					return result.Err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "read data from this file, \"-\" for stdin")

	return cmd
}

func newPullCommand(opts *rootOptions) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the cloud copy",
		Long:  "Download the cloud copy into the data file, or print it with --stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				result, err := app.Pull(ctx, !toStdout)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if models.IsEmptyPayload(result.Data) {
					fmt.Fprintln(out, "No cloud data found")
					return nil
				}
				if toStdout {
					_, err = fmt.Fprintln(out, string(result.Data))
					return err
				}
				fmt.Fprintf(out, "Data downloaded, last sync %s\n", formatTime(result.LastSync))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the data instead of writing the data file")

	return cmd
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, pending data and the cloud copy's freshness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				st, err := app.Status(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Online: %t\n", st.Online)
				fmt.Fprintf(out, "Authenticated: %t\n", st.Authenticated)
				if st.UserID != "" {
					fmt.Fprintf(out, "User: %s\n", st.UserID)
				}
				fmt.Fprintf(out, "Local last sync: %s\n", formatTime(st.LocalLastSync))
				if st.Pending != nil {
					fmt.Fprintf(out, "Pending: %d bytes queued at %s\n", len(st.Pending.Payload), st.Pending.QueuedAt.Format(time.RFC3339))
				} else {
					fmt.Fprintln(out, "Pending: none")
				}
				switch {
				case st.CloudErr != nil:
					fmt.Fprintf(out, "Cloud: %v\n", st.CloudErr)
				case st.Cloud != nil:
					fmt.Fprintf(out, "Cloud configured: %t\n", st.Cloud.Configured)
					fmt.Fprintf(out, "Cloud last sync: %s\n", formatTime(st.Cloud.LastSync))
				}
				return nil
			})
		},
	}
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:       "resolve {local|cloud}",
		Short:     "Push local data and settle a conflict with the chosen side",
		Long:      "Push local data. If the cloud holds a newer copy, keep either the local\ndata (force push) or the cloud copy (written to the data file).",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(models.ResolveWithLocal), string(models.ResolveWithCloud)},
		RunE: func(cmd *cobra.Command, args []string) error {
			choice := models.ResolutionChoice(args[0])
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				payload, err := readPayload(cmd, app, input)
				if err != nil {
					return err
				}

				upload, resolved, err := app.Resolve(ctx, payload, choice)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if resolved == nil {
					printUploadResult(out, upload)
					fmt.Fprintln(out, "No conflict to resolve")
					return nil
				}
				switch resolved.Choice {
				case models.ResolveWithLocal:
					fmt.Fprintf(out, "Kept local data, cloud overwritten at %s\n", resolved.LastSync.Format(time.RFC3339))
				case models.ResolveWithCloud:
					fmt.Fprintf(out, "Kept cloud data from %s\n", resolved.LastSync.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "read data from this file, \"-\" for stdin")

	return cmd
}

func newPendingCommand(opts *rootOptions) *cobra.Command {
	var flush, drop bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Inspect, deliver or discard the queued offline payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flush && drop {
				return errors.New("--flush and --drop are mutually exclusive")
			}
			return opts.withApp(cmd, func(ctx context.Context, app *App) error {
				out := cmd.OutOrStdout()

				switch {
				case drop:
					if err := app.DropPending(ctx); err != nil {
						return err
					}
					fmt.Fprintln(out, "Pending payload discarded")
				case flush:
					result, had := app.FlushPending(ctx)
					if !had {
						fmt.Fprintln(out, "Nothing pending")
						return nil
					}
					printUploadResult(out, result)
				default:
					entry, err := app.Pending(ctx)
					if err != nil {
						return err
					}
					if entry == nil {
						fmt.Fprintln(out, "Nothing pending")
						return nil
					}
					fmt.Fprintf(out, "Queued at %s\n%s\n", entry.QueuedAt.Format(time.RFC3339), entry.Payload)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&flush, "flush", false, "deliver the queued payload now")
	cmd.Flags().BoolVar(&drop, "drop", false, "discard the queued payload")

	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		userID string
		appCfg config.App
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user (needs the server's sign key)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if appCfg.TokenSignKey == "" {
				appCfg.TokenSignKey = os.Getenv("APP_TOKEN_SIGN_KEY")
			}
			if appCfg.TokenSignKey == "" || userID == "" {
				return errors.New("--sign-key (or APP_TOKEN_SIGN_KEY) and --user are required")
			}

			auth := service.NewAuthService(appCfg, logger.Nop())
			token, err := auth.CreateToken(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user ID to embed in the token")
	cmd.Flags().StringVar(&appCfg.TokenSignKey, "sign-key", "", "token signing key")
	cmd.Flags().StringVar(&appCfg.TokenIssuer, "issuer", "go-sync-keeper", "token issuer")
	cmd.Flags().DurationVar(&appCfg.TokenDuration, "duration", 30*24*time.Hour, "token lifetime")

	return cmd
}

func readPayload(cmd *cobra.Command, app *App, input string) (models.Payload, error) {
	var (
		data []byte
		err  error
	)
	switch input {
	case "":
		data, err = app.ReadDataFile()
	case "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.New("input is not valid JSON")
	}
	return models.Payload(data), nil
}

func printUploadResult(out io.Writer, result models.UploadResult) {
	switch result.Outcome {
	case models.UploadAccepted:
		fmt.Fprintf(out, "Data synced to cloud at %s\n", result.LastSync.Format(time.RFC3339))
	case models.UploadConflict:
		fmt.Fprintf(out, "Conflict: cloud copy updated at %s is newer, run \"resolve local\" or \"resolve cloud\"\n",
			result.Conflict.CloudTimestamp.Format(time.RFC3339))
	case models.UploadQueued:
		fmt.Fprintln(out, "Offline: data queued for the next sync")
	case models.UploadSkipped:
		fmt.Fprintln(out, "Skipped: not authenticated or queueing disabled")
	case models.UploadFailed:
		fmt.Fprintf(out, "Failed (%s): %v\n", result.ErrKind, result.Err)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format(time.RFC3339)
}
