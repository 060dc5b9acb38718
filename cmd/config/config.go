package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/config"
	"github.com/gigurra/cwtofu/cmd/common/cwaudio"
	"github.com/spf13/cobra"
)

type Params struct {
	WPM        int     `short:"w" help:"Default words per minute." default:"0"`
	Farnsworth int     `short:"f" help:"Default Farnsworth character speed (-1 turns it off)." default:"0"`
	Freq       float64 `long:"freq" help:"Default tone frequency in Hz." default:"0"`
	Volume     float64 `long:"volume" help:"Default volume between 0 and 1." default:"0"`
	NoiseDB    float64 `long:"noise-db" help:"Default background noise in dB (-1 turns it off)." default:"0"`
	QRM        float64 `long:"qrm" help:"Default interfering carrier in Hz (-1 turns it off)." default:"0"`
	Reset      bool    `long:"reset" help:"Restore the default settings." default:"false"`
	Path       bool    `short:"p" help:"Print the config file path and exit." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "config",
		Short: "Show or change default audio settings",
		Long: `Show the settings in ~/.cwtofu/config.json, or change them with flags.

Flags left at 0 keep their current value. Running copy sessions pick up
noise changes immediately.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "config: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func run(params *Params, out io.Writer) error {
	if params.Path {
		fmt.Fprintln(out, config.ConfigPath())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if params.Reset {
		cfg = config.DefaultConfig()
	}

	changed := params.Reset || apply(cfg.Audio, params)
	if changed {
		if err := validate(cfg.Audio); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// apply copies non-zero flags into a. Negative values switch optional
// features off.
func apply(a *config.AudioConfig, p *Params) bool {
	changed := false
	if p.WPM != 0 {
		a.WPM = p.WPM
		changed = true
	}
	if p.Farnsworth != 0 {
		a.FarnsworthWPM = max(0, p.Farnsworth)
		changed = true
	}
	if p.Freq != 0 {
		a.FreqHz = p.Freq
		changed = true
	}
	if p.Volume != 0 {
		a.Volume = p.Volume
		changed = true
	}
	if p.NoiseDB != 0 {
		a.NoiseDB = max(0, p.NoiseDB)
		changed = true
	}
	if p.QRM != 0 {
		a.QRMFreqHz = max(0, p.QRM)
		changed = true
	}
	return changed
}

func validate(a *config.AudioConfig) error {
	if _, err := cwaudio.NewDurations(a.WPM, a.FarnsworthWPM); err != nil {
		return err
	}
	if a.FreqHz <= 0 || a.FreqHz >= cwaudio.SampleRate/2 {
		return fmt.Errorf("%w: frequency %v Hz out of range", cwaudio.ErrInvalidConfig, a.FreqHz)
	}
	if a.Volume <= 0 || a.Volume > 1 {
		return fmt.Errorf("%w: volume %v must be in (0, 1]", cwaudio.ErrInvalidConfig, a.Volume)
	}
	return nil
}
