package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/chris-regnier/diarypad/internal/config"
	"github.com/chris-regnier/diarypad/internal/diary"
	"github.com/chris-regnier/diarypad/internal/logging"
	"github.com/chris-regnier/diarypad/internal/script"
	"github.com/chris-regnier/diarypad/internal/storage/memory"
	"github.com/chris-regnier/diarypad/internal/ui"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile    string
	darkFlag   bool
	logFile    string
	scriptFile string

	appConfig *config.Config
	logger    *logrus.Entry
	logCloser io.Closer
	journal   *diary.Diary
)

// isTerminal reports whether the TUI can take over the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "diarypad",
	Short: "A mood journal for the terminal",
	Long: `diarypad keeps short dated notes tagged with a mood for the length of one session.

On a terminal it opens an interactive journal. Otherwise, or with --script,
it reads commands line by line:

  new | edit <id> | title <text> | content <text> | mood <symbol|name>
  commit | cancel | delete <id> | search [term] | theme
  list | show <id> | draft | state | json`,
	Example: `  diarypad
  diarypad --dark
  printf 'new\ntitle Day One\ncontent Went hiking\ncommit\nlist\n' | diarypad
  diarypad --script session.txt`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return errors.Wrap(err, "loading config")
		}
		if darkFlag {
			cfg.DarkMode = true
		}
		if logFile != "" {
			cfg.Log.File = logFile
		}
		appConfig = cfg

		logger, logCloser, err = logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
		if err != nil {
			return errors.Wrap(err, "initializing logging")
		}

		store := memory.New(memory.WithLogger(logger))
		journal = diary.New(store, diary.WithLogger(logger), diary.WithDarkMode(cfg.DarkMode))
		logger.WithField("command", cmd.Name()).Info("session started")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if scriptFile != "" {
			f, err := os.Open(scriptFile)
			if err != nil {
				return errors.Wrap(err, "opening script")
			}
			defer f.Close()
			return runScript(cmd.Context(), f, cmd.OutOrStdout())
		}

		if !isTerminal() {
			return runScript(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		}

		err := ui.RunTUI(journal, ui.TUIConfig{
			MaxWidth: appConfig.MaxWidth,
			Themes:   ui.ResolveThemes(appConfig.Theme),
			Editor:   appConfig.Editor,
		})
		return errors.Wrap(err, "running journal")
	},
}

func runScript(ctx context.Context, r io.Reader, w io.Writer) error {
	d := script.New(journal, w, script.WithLogger(logger))
	if err := d.Run(ctx, r); err != nil {
		logger.WithError(err).Warn("script failed")
		return errors.Wrap(err, "script")
	}
	return nil
}

// Execute runs the root command. An interrupt cancels a running script.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx)
}

func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if logCloser != nil {
		logger.Info("session ended")
		if cerr := logCloser.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing log")
		}
		logCloser = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&darkFlag, "dark", false, "start in dark mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "run commands from a file instead of the interactive journal")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
