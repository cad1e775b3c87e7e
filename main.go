package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Behaviour
	noOpen          bool
	copyToClipboard bool
	useGitignore    bool
	preset          string
	interactiveMode bool
	verbose         bool

	cfgFile string
)

// launcherFor builds the launcher used by sync.
var launcherFor = newLauncher

var rootCmd = &cobra.Command{
	Use:   "stsync [PROJECT]",
	Short: "Generate a Sublime Text project for a Unity project and open it",
	Long: `stsync scans the Assets folder of a Unity project, writes a
<project>.sublime-project next to it that hides folders without any
interesting files and lists the assemblies used for C# completion,
then opens the project in Sublime Text.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSync,
}

var syncCmd = &cobra.Command{
	Use:   "sync [PROJECT]",
	Short: "Regenerate the project descriptor and open the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSync,
}

var printCmd = &cobra.Command{
	Use:   "print [PROJECT]",
	Short: "Print the project descriptor without writing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, s, err := prepare(args)
		if err != nil || root == "" {
			return err
		}
		text, _, err := newInvocation(root, s).Build()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return copyText(text)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [PROJECT]",
	Short: "Keep the project descriptor up to date while files come and go",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, s, err := prepare(args)
		if err != nil || root == "" {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchProject(ctx, root, s, nil)
	},
}

func runSync(cmd *cobra.Command, args []string) error {
	root, s, err := prepare(args)
	if err != nil {
		return err
	}
	if root == "" {
		return nil
	}

	res, err := Sync(cmd.Context(), root, s, launcherFor(s.FocusDelay))
	if err != nil {
		return err
	}
	if !res.Launched {
		log.Info().Msg("editor not opened (auto_open disabled)")
	}
	return copyText(res.Text)
}

// prepare resolves the project root and the settings for this run.
// An empty root with a nil error means the interactive picker was aborted.
func prepare(args []string) (string, Settings, error) {
	s, err := loadSettings()
	if err != nil {
		return "", Settings{}, err
	}

	start := "."
	if interactiveMode {
		picked, err := runInteractiveFinder()
		if err != nil {
			return "", Settings{}, err
		}
		if picked == "" {
			log.Info().Msg("interactive selection aborted")
			return "", s, nil
		}
		start = picked
	} else if len(args) > 0 {
		start = args[0]
	}

	root, err := FindProjectRoot(start)
	if err != nil {
		return "", Settings{}, err
	}
	log.Debug().Str("root", root).Str("profile", s.Profile.Name).Strs("extensions", s.Extensions).Msg("resolved project")
	return root, s, nil
}

// loadSettings folds viper's view (defaults < config < env < flags) into Settings.
func loadSettings() (Settings, error) {
	profile := profileFor(runtime.GOOS)
	profile.AutoOpen = viper.GetBool("auto_open")
	if p := viper.GetString("editor_path"); p != "" {
		profile.EditorPath = p
	}
	if p := viper.GetString("editor_process"); p != "" {
		profile.ProcessName = p
	}
	if noOpen {
		profile.AutoOpen = false
	}

	extensions := cleanExtensions(viper.GetStringSlice("extensions"))
	if preset != "" {
		var err error
		extensions, err = resolvePreset(preset)
		if err != nil {
			return Settings{}, err
		}
	}

	return Settings{
		Profile:        profile,
		EngineContents: viper.GetString("engine_contents"),
		Extensions:     extensions,
		Gitignore:      viper.GetBool("gitignore"),
		FocusDelay:     viper.GetDuration("focus_delay"),
	}, nil
}

// copyText puts the descriptor on the clipboard when --copy is set.
func copyText(text string) error {
	if !copyToClipboard {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	log.Info().Msg("descriptor copied to clipboard")
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stsync/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noOpen, "no-open", false, "Write the descriptor but do not start the editor")
	rootCmd.PersistentFlags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the descriptor to the clipboard")
	rootCmd.PersistentFlags().BoolVar(&useGitignore, "gitignore", false, "Exclude folders matched by Assets/.gitignore")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "Use a named extension list from extensions.yml")
	rootCmd.PersistentFlags().BoolVarP(&interactiveMode, "interactive", "I", false, "Pick the project with a fuzzy finder")

	bindConfig()
	rootCmd.AddCommand(syncCmd, printCmd, watchCmd)
}

// bindConfig registers defaults, flag bindings and the STSYNC_ environment
// prefix. Precedence is flags > env > config file > defaults.
func bindConfig() {
	goos := runtime.GOOS
	profile := profileFor(goos)
	viper.SetDefault("auto_open", profile.AutoOpen)
	viper.SetDefault("editor_path", profile.EditorPath)
	viper.SetDefault("editor_process", profile.ProcessName)
	viper.SetDefault("engine_contents", defaultEngineContents(goos))
	viper.SetDefault("extensions", defaultExtensions)
	viper.SetDefault("gitignore", false)
	viper.SetDefault("focus_delay", 500*time.Millisecond)

	viper.BindPFlag("gitignore", rootCmd.PersistentFlags().Lookup("gitignore"))

	viper.SetEnvPrefix("STSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // STSYNC_EDITOR_PATH, STSYNC_AUTO_OPEN, ...
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setupLogger(verbose)

	// A .env next to the project is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "stsync"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug().Msg("no config file found, using defaults and flags")
	} else {
		log.Warn().Err(err).Msg("error reading config file")
	}
}

// setupLogger sends human-readable logs to stderr.
func setupLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
