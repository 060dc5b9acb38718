package morse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/config"
	"github.com/gigurra/cwtofu/cmd/common/cwaudio"
	"github.com/gigurra/cwtofu/cmd/common/morsecode"
	"github.com/spf13/cobra"
)

var clipboardWriteAll = clipboard.WriteAll

type Params struct {
	Text       []string `pos:"true" optional:"true" help:"Text to encode/decode. If none provided, reads from stdin."`
	Decode     bool     `short:"d" help:"Decode morse code to text." default:"false"`
	Beep       bool     `short:"b" help:"Play the encoded text as CW audio." default:"false"`
	Copy       bool     `short:"c" help:"Copy the result to the clipboard." default:"false"`
	WPM        int      `short:"w" help:"Words per minute for audio playback (0 = config)." default:"0"`
	Farnsworth int      `short:"f" help:"Character speed for Farnsworth spacing (0 = config)." default:"0"`
	Freq       float64  `long:"freq" help:"Tone frequency in Hz (0 = config)." default:"0"`
	Volume     float64  `long:"volume" help:"Volume between 0 and 1 (0 = config)." default:"0"`
	NoiseDB    float64  `long:"noise-db" help:"Background noise level in dB (0 = config)." default:"0"`
	QRM        float64  `long:"qrm" help:"Interfering carrier frequency in Hz (0 = config)." default:"0"`
	Verbose    bool     `short:"v" help:"Verbose logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "morse",
		Short: "Encode/decode Morse code",
		Long: `Convert text to Morse code or decode Morse code back to text.

Letters are separated by spaces and words by " / ". Use -b to hear the
result as CW audio and -c to copy it to the clipboard.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.SetupLogging(params.Verbose)
			if err := Run(params, os.Stdin, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "morse: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// playFunc sounds one encoded line and returns when it has finished.
type playFunc func(ctx context.Context, morse string) error

func Run(params *Params, stdin io.Reader, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var play playFunc
	if params.Beep && !params.Decode {
		audio := config.LoadAudio(params.overrides())
		engine := cwaudio.Default()
		defer engine.Close()
		engine.SetNoise(audio.NoiseDB, audio.QRMFreqHz)
		<-engine.Ready()
		if !engine.IsDeviceAvailable() {
			fmt.Fprintln(os.Stderr, "morse: no audio output available, printing only")
		}
		play = func(ctx context.Context, morse string) error {
			return engine.PlayPhrase(ctx, morse, audio.Params(), true)
		}
	}
	return run(ctx, params, stdin, stdout, play)
}

func run(ctx context.Context, params *Params, stdin io.Reader, stdout io.Writer, play playFunc) error {
	var results []string
	handle := func(text string) error {
		result := convert(text, params.Decode)
		fmt.Fprintln(stdout, result)
		results = append(results, result)
		if play != nil && result != "" {
			return play(ctx, result)
		}
		return nil
	}

	if len(params.Text) > 0 {
		if err := handle(strings.Join(params.Text, " ")); err != nil {
			return err
		}
	} else {
		lines := common.NewLineReader(stdin)
		for {
			line, err := lines.Next(ctx)
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			if err != nil {
				return err
			}
			if err := handle(line); err != nil {
				return err
			}
		}
	}

	if params.Copy {
		if err := clipboardWriteAll(strings.Join(results, "\n")); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

func convert(text string, decode bool) string {
	if decode {
		return morsecode.Decode(text)
	}
	return morsecode.Encode(text)
}

func (p *Params) overrides() config.Overrides {
	return config.Overrides{
		WPM:           p.WPM,
		FarnsworthWPM: p.Farnsworth,
		FreqHz:        p.Freq,
		Volume:        p.Volume,
		NoiseDB:       p.NoiseDB,
		QRMFreqHz:     p.QRM,
	}
}
