package copy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gen2brain/beeep"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/config"
	"github.com/gigurra/cwtofu/cmd/common/cwaudio"
	"github.com/gigurra/cwtofu/cmd/common/drill"
	"github.com/gigurra/cwtofu/cmd/common/morsecode"
	"github.com/gigurra/cwtofu/cmd/common/sessionlog"
	"github.com/spf13/cobra"
)

var notify = beeep.Notify

type Params struct {
	Mode       string  `short:"m" help:"Drill mode: letters, words, abbreviations or callsigns." default:"words"`
	Rounds     int     `short:"n" help:"Number of items to copy." default:"10"`
	WPM        int     `short:"w" help:"Playback speed in words per minute (0 = config)." default:"0"`
	Farnsworth bool    `short:"f" help:"Keep characters at full speed and stretch the gaps between them for thinking time." default:"false"`
	Freq       float64 `long:"freq" help:"Tone frequency in Hz (0 = config)." default:"0"`
	Volume     float64 `long:"volume" help:"Volume between 0 and 1 (0 = config)." default:"0"`
	NoiseDB    float64 `long:"noise-db" help:"Background noise level in dB (0 = config)." default:"0"`
	QRM        float64 `long:"qrm" help:"Interfering carrier frequency in Hz (0 = config)." default:"0"`
	Notify     bool    `long:"notify" help:"Show a desktop notification with the result." default:"false"`
	Verbose    bool    `short:"v" help:"Verbose logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "copy",
		Short: "Copy practice: listen to Morse and type what you heard",
		Long: `Plays random practice items as CW audio and scores your copy.

After each item type your answer and press ENTER.
  ?        - Play the item again
  (empty)  - Skip the item
  Ctrl+D   - Finish early

Noise and QRM settings in ~/.cwtofu/config.json are picked up while the
trainer runs, unless they are given on the command line.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.SetupLogging(params.Verbose)
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "copy: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func run(params *Params) error {
	mode, err := drill.ParseMode(params.Mode)
	if err != nil {
		return err
	}
	if params.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", params.Rounds)
	}

	audio := config.LoadAudio(overrides(params))
	if params.Farnsworth {
		audio = withFarnsworth(audio)
	}
	if _, err := cwaudio.NewDurations(audio.WPM, audio.FarnsworthWPM); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := cwaudio.Default()
	defer engine.Close()
	engine.SetNoise(audio.NoiseDB, audio.QRMFreqHz)
	go watchNoise(ctx, engine, params)

	<-engine.Ready()
	if !engine.IsDeviceAvailable() {
		return fmt.Errorf("%w: copy practice needs sound", cwaudio.ErrDeviceUnavailable)
	}

	t := &trainer{
		mode:   mode,
		rounds: params.Rounds,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		in:     common.NewLineReader(os.Stdin),
		out:    os.Stdout,
		play: func(ctx context.Context, morse string) error {
			return engine.PlayPhrase(ctx, morse, audio.Params(), true)
		},
	}

	fmt.Printf("COPY PRACTICE  %s, %d WPM", mode, charWPM(audio))
	if audio.FarnsworthWPM > audio.WPM {
		fmt.Printf(" (spaced at %d WPM)", audio.WPM)
	}
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	score, err := t.run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println(score.String())

	if err := sessionlog.Append(sessionlog.NewRecord(sessionlog.ToolWPMTrainer, score.Correct, score.Total, float64(charWPM(audio)))); err != nil {
		slog.Warn("failed to save session", "error", err)
	}
	if params.Notify && score.Total > 0 {
		if err := notify("cwtofu copy practice", score.String(), ""); err != nil {
			slog.Debug("notification failed", "error", err)
		}
	}
	return nil
}

func overrides(p *Params) config.Overrides {
	return config.Overrides{
		WPM:       p.WPM,
		FreqHz:    p.Freq,
		Volume:    p.Volume,
		NoiseDB:   p.NoiseDB,
		QRMFreqHz: p.QRM,
	}
}

// withFarnsworth keeps characters at the configured speed and slows the
// spacing down to drill.FarnsworthFor of it.
func withFarnsworth(audio config.AudioConfig) config.AudioConfig {
	audio.FarnsworthWPM = max(audio.FarnsworthWPM, audio.WPM)
	audio.WPM = drill.FarnsworthFor(audio.WPM)
	return audio
}

func charWPM(audio config.AudioConfig) int {
	return max(audio.WPM, audio.FarnsworthWPM)
}

// watchNoise keeps the engine's noise settings in line with the config
// file. Settings given as flags stay fixed.
func watchNoise(ctx context.Context, engine *cwaudio.Engine, params *Params) {
	err := config.Watch(ctx, func(c *config.Config) {
		audio := c.Audio.With(overrides(params))
		if audio.Noise() == engine.Noise() {
			return
		}
		engine.SetNoise(audio.NoiseDB, audio.QRMFreqHz)
		slog.Info("noise settings reloaded", "noise_db", audio.NoiseDB, "qrm_hz", audio.QRMFreqHz)
	})
	if err != nil {
		slog.Debug("config watch stopped", "error", err)
	}
}

const replayCommand = "?"

type trainer struct {
	mode   drill.Mode
	rounds int
	rng    *rand.Rand
	in     *common.LineReader
	out    io.Writer
	play   func(ctx context.Context, morse string) error
}

// run plays rounds items and scores the answers. It stops early when
// input ends or ctx is cancelled.
func (t *trainer) run(ctx context.Context) (drill.Score, error) {
	var score drill.Score
	for round := 1; round <= t.rounds; round++ {
		item := drill.Pick(t.mode, t.rng)
		morse := morsecode.Encode(item)

		if err := t.play(ctx, morse); err != nil {
			return score, err
		}

		answer, ok := t.prompt(ctx, round)
		for ok && strings.TrimSpace(answer) == replayCommand {
			if err := t.play(ctx, morse); err != nil {
				return score, err
			}
			answer, ok = t.prompt(ctx, round)
		}
		if !ok || ctx.Err() != nil {
			break
		}

		switch {
		case strings.TrimSpace(answer) == "":
			score.Record(false)
			fmt.Fprintf(t.out, "   Skipped: %s  %s\n", item, morse)
		case drill.CheckText(answer, item):
			score.Record(true)
			fmt.Fprintf(t.out, "   Correct! %s  %s\n", item, morse)
		default:
			score.Record(false)
			fmt.Fprintf(t.out, "   Wrong! It was %s  %s\n", item, morse)
		}
		fmt.Fprintf(t.out, "   %s\n", score.String())
	}
	return score, nil
}

// prompt waits for the next answer. It reports false once input ends or
// ctx is cancelled.
func (t *trainer) prompt(ctx context.Context, round int) (string, bool) {
	fmt.Fprintf(t.out, "[%d/%d] > ", round, t.rounds)
	answer, err := t.in.Next(ctx)
	if err != nil {
		if !errors.Is(err, io.EOF) && ctx.Err() == nil {
			slog.Warn("failed to read answer", "error", err)
		}
		fmt.Fprintln(t.out)
		return "", false
	}
	return answer, true
}
