package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"scaleview/internal/config"
	"scaleview/internal/series"
	"scaleview/internal/trace"
	"scaleview/internal/tui"
)

var (
	// Version is set at build time with -ldflags "-X main.Version=..."
	Version = "dev"

	conf     config.Config
	traceOpt = trace.DefaultOptions()
	v        = config.New()
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	config.Flags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(viewCmd, traceCmd, versionCmd)

	f := traceCmd.Flags()
	f.IntVar(&traceOpt.Width, "width", traceOpt.Width, "plane width in pixels")
	f.IntVar(&traceOpt.Height, "height", traceOpt.Height, "plane height in pixels")
	f.IntVar(&traceOpt.Initial, "initial", traceOpt.Initial, "samples shown before the first frame")
	f.IntVar(&traceOpt.PerFrame, "per-frame", traceOpt.PerFrame, "samples revealed per frame")
	f.IntVar(&traceOpt.DragAt, "drag-at", traceOpt.DragAt, "frame the scripted drag starts on, -1 for none")
	f.Float64Var(&traceOpt.DragStep, "drag-step", traceOpt.DragStep, "pointer movement per drag frame in pixels")
	f.IntVar(&traceOpt.DragSteps, "drag-steps", traceOpt.DragSteps, "number of drag frames before release")
	f.StringVar(&traceOpt.LabelFormat, "label-format", traceOpt.LabelFormat, "strftime format of time labels")
	f.IntVar(&traceOpt.MaxFrames, "max-frames", traceOpt.MaxFrames, "stop after this many frames")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scaleview",
	Short: "Continuous-scale viewer with fit, bounds, rebound and gestures",
	Long: `scaleview keeps a pair of continuous scales fitted to data, bounded,
and responsive to drag, pinch and wheel gestures. "view" explores geo
data in the terminal; "trace" replays a time series headlessly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.BindFlags(v, cmd.Flags()); err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(v, path)
		if err != nil {
			return err
		}
		conf = c
		// the terminal belongs to the viewer
		return setupLog(conf.Log, cmd == viewCmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Usage()
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Explore GeoJSON, CSV, KML or WKT data in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			m   tui.Model
			err error
		)
		if len(args) > 0 {
			m, err = tui.NewWithPath(conf, log.StandardLogger(), args[0])
		} else {
			m, err = tui.New(conf, log.StandardLogger())
		}
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
		return err
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace <series.csv>",
	Short: "Replay a time series on a tracking plane and log every frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		s, err := series.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		sc, err := conf.Scale()
		if err != nil {
			return err
		}
		traceOpt.Interval = conf.FrameInterval
		frames, err := trace.Replay(s, sc, traceOpt, log.StandardLogger())
		if err != nil {
			return err
		}
		last := frames[len(frames)-1]
		log.WithFields(log.Fields{
			"series":  s.Name,
			"samples": s.Len(),
			"frames":  len(frames),
			"x":       series.Label(traceOpt.LabelFormat, last.XMin) + " .. " + series.Label(traceOpt.LabelFormat, last.XMax),
		}).Info("replay done")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scaleview version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("scaleview " + Version)
	},
}

func setupLog(c config.Log, quiet bool) error {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if c.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	switch {
	case c.File != "":
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		log.SetOutput(f)
	case quiet:
		log.SetOutput(io.Discard)
	}
	return nil
}
