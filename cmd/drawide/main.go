package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/ederatone/drawide/painter"
	"github.com/ederatone/drawide/painter/lang"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "drawide",
	Short: "Live shape-drawing editor",
	Long: `drawide renders one shape per line of command text and redraws the
whole scene every time the text changes.

Commands:
  line x1 y1 x2 y2
  circle cx cy r
  rect x y w h`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runWindow,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.Int("width", 800, "Canvas width in pixels")
	pf.Int("height", 800, "Canvas height in pixels")
	pf.String("addr", "localhost:17000", "HTTP address of the command endpoint")
	pf.String("background", "#ffffff", "Canvas colour (hex)")
	pf.String("foreground", "#000000", "Outline colour (hex)")
	pf.Float64("line-width", 2, "Outline width in pixels")
	pf.Bool("cache", true, "Memoize parsed lines between rebuilds")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.Bool("debug", false, "Debug output")

	for _, name := range []string{"width", "height", "addr", "background", "foreground", "cache", "verbose", "debug"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
	_ = viper.BindPFlag("line_width", pf.Lookup("line-width"))
}

func initConfig() {
	viper.SetEnvPrefix("DRAWIDE")
	viper.AutomaticEnv()
}

// hexColour matches the colour forms gg.Hex understands: RGB, RGBA,
// RRGGBB and RRGGBBAA, with an optional leading '#'.
var hexColour = regexp.MustCompile(`^#?([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func setup(cmd *cobra.Command, args []string) error {
	if err := setupLogging(cmd, args); err != nil {
		return err
	}
	return checkColours()
}

func checkColours() error {
	for _, name := range []string{"background", "foreground"} {
		if v := viper.GetString(name); !hexColour.MatchString(v) {
			return fmt.Errorf("invalid %s colour %q: want hex like #rgb or #rrggbb", name, v)
		}
	}
	return nil
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	switch {
	case viper.GetBool("debug"):
		level = slog.LevelDebug
	case viper.GetBool("verbose"):
		level = slog.LevelInfo
	}
	painter.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// style reads the drawing style from the configuration.
func style() painter.Style {
	return painter.Style{
		Background: gg.Hex(viper.GetString("background")).Color(),
		Foreground: gg.Hex(viper.GetString("foreground")).Color(),
		LineWidth:  viper.GetFloat64("line_width"),
	}
}

func canvasSize() (int, int, error) {
	w, h := viper.GetInt("width"), viper.GetInt("height")
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	return w, h, nil
}

func newBuilder() *lang.Builder {
	return lang.NewBuilder(lang.WithCache(viper.GetBool("cache")))
}

func endpoint() string {
	return "http://" + viper.GetString("addr")
}

// readBuffer reads the command buffer from the named file, or stdin for "" and "-".
func readBuffer(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading commands: %w", err)
	}
	return string(b), nil
}

func printDiagnostics(w io.Writer, errs []lang.LineError) {
	for _, e := range errs {
		fmt.Fprintln(w, e.Error())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
