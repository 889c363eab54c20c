// Command eegkit runs the workshop EEG analyses from the command line:
// inspect a recording, extract block-wise features to CSV, or render the
// workshop figures.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Han-YY/vBCI-Meeting-Workshop3/config"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/eeg"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/features"
	"github.com/Han-YY/vBCI-Meeting-Workshop3/visualize"
)

var (
	log     = logrus.New()
	cfgPath string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eegkit",
		Short:         "EEG workshop analysis toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML run configuration")
	root.AddCommand(infoCmd(), featuresCmd(), plotCmd())
	return root
}

// loadRun reads the configuration and the recording, applies the channel
// pick and re-reference the configuration asks for, and returns both.
func loadRun(path string) (*config.Config, *eeg.Recording, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rec, err := eeg.LoadEDF(f)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"channels": rec.Channels(),
		"rate_hz":  rec.Rate,
		"duration": fmt.Sprintf("%.1fs", rec.Duration()),
	}).Info("loaded recording")

	if len(cfg.Channels) > 0 {
		if rec, err = rec.Pick(cfg.Channels...); err != nil {
			return nil, nil, err
		}
		log.WithField("channels", strings.Join(cfg.Channels, ",")).Debug("picked channels")
	}
	if cfg.Reference == "car" {
		rec.Rereference()
		log.Debug("applied common average reference")
	}
	return cfg, rec, nil
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <recording.edf>",
		Short: "Print a channel summary of an EDF recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rec, err := eeg.LoadEDF(f)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %d channels, %.1f s at %g Hz\n",
				filepath.Base(args[0]), rec.Channels(), rec.Duration(), rec.Rate)
			for _, label := range rec.Labels {
				fmt.Printf("  %s\n", label)
			}
			return nil
		},
	}
}

func featuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features <recording.edf>",
		Short: "Extract block-wise band powers and complexity to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rec, err := loadRun(args[0])
			if err != nil {
				return err
			}

			tbl, err := features.Extract(rec, cfg.BlockLength, cfg.Overlap, cfg.Bands)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return err
			}
			out := filepath.Join(cfg.OutputDir, outputName(args[0], "_features.csv"))
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := tbl.WriteCSV(f); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"rows": len(tbl.Rows),
				"file": out,
			}).Info("wrote feature table")
			return nil
		},
	}
}

func plotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot <recording.edf>",
		Short: "Render channel traces and band-power box plots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rec, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return err
			}

			traces := filepath.Join(cfg.OutputDir, outputName(args[0], "_traces.png"))
			if err := visualize.Traces(rec, traces); err != nil {
				return err
			}
			log.WithField("file", traces).Info("wrote traces")

			tbl, err := features.Extract(rec, cfg.BlockLength, cfg.Overlap, cfg.Bands)
			if err != nil {
				return err
			}
			for _, band := range tbl.Bands {
				out := filepath.Join(cfg.OutputDir, outputName(args[0], "_"+band.Name+".png"))
				if err := visualize.BandPowerBox(tbl, band.Name, out); err != nil {
					return err
				}
				log.WithField("file", out).Info("wrote band-power plot")
			}
			return nil
		},
	}
}

// outputName derives an output file name from the recording path.
func outputName(in, suffix string) string {
	base := filepath.Base(in)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}
