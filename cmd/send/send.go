package send

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/config"
	"github.com/gigurra/cwtofu/cmd/common/cwaudio"
	"github.com/gigurra/cwtofu/cmd/common/drill"
	"github.com/gigurra/cwtofu/cmd/common/morsecode"
	"github.com/gigurra/cwtofu/cmd/common/sessionlog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Params struct {
	WPM     int     `short:"w" help:"Sidetone and playback speed in words per minute (0 = config)." default:"0"`
	Freq    float64 `long:"freq" help:"Sidetone frequency in Hz (0 = config)." default:"0"`
	Volume  float64 `long:"volume" help:"Sidetone volume between 0 and 1 (0 = config)." default:"0"`
	Verbose bool    `short:"v" help:"Verbose logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "send",
		Short: "Practice sending Morse with the keyboard",
		Long: `Key the displayed word in Morse and hear your own sidetone.

Controls:
  q or .     - Dit
  e or -     - Dah
  SPACE      - Next letter
  TAB        - Next word
  BACKSPACE  - Delete last symbol
  ENTER      - Submit (then next word)
  ctrl+n     - Skip word
  ESC        - Quit

After each answer the correct Morse is played back.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.SetupLogging(params.Verbose)
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "send: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func run(params *Params) error {
	audio := config.LoadAudio(config.Overrides{WPM: params.WPM, FreqHz: params.Freq, Volume: params.Volume})
	if _, err := cwaudio.NewDurations(audio.WPM, 0); err != nil {
		return err
	}

	engine := cwaudio.Default()
	defer engine.Close()
	<-engine.Ready()
	if !engine.IsDeviceAvailable() {
		fmt.Fprintln(os.Stderr, "send: no audio output available, practising silently")
	}

	m := newModel(engine, audio, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), time.Now)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	fm := final.(model)
	engine.Stop()
	if err := sessionlog.Append(fm.record()); err != nil {
		slog.Warn("failed to save session", "error", err)
	}
	fmt.Println(fm.score.String())
	return nil
}

// keyer is the part of the audio engine the practice screen drives.
type keyer interface {
	EnqueueDit(wpm int, freqHz, volume float64) error
	EnqueueDah(wpm int, freqHz, volume float64) error
	PlayPhrase(ctx context.Context, morse string, p cwaudio.Params, blocking bool) error
	Stop()
}

type outcome int

const (
	pending outcome = iota
	correct
	wrong
	skipped
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	targetStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	wrongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	skipStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	keyer keyer
	audio config.AudioConfig
	rng   *rand.Rand
	now   func() time.Time

	target      string
	targetMorse string
	input       string
	started     time.Time
	outcome     outcome
	wpm         float64

	score  drill.Score
	speeds []float64
}

func newModel(k keyer, audio config.AudioConfig, rng *rand.Rand, now func() time.Time) model {
	m := model{keyer: k, audio: audio, rng: rng, now: now}
	return m.nextWord()
}

func (m model) nextWord() model {
	pool := append(append([]string{}, drill.CommonWords...), drill.CWWords...)
	m.target = pool[m.rng.IntN(len(pool))]
	m.targetMorse = morsecode.Encode(m.target)
	m.input = ""
	m.started = time.Time{}
	m.outcome = pending
	m.wpm = 0
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "ctrl+c":
		m.keyer.Stop()
		return m, tea.Quit
	}

	if m.outcome != pending {
		if key.String() == "enter" {
			m = m.nextWord()
		}
		return m, nil
	}

	switch key.String() {
	case "q", ".":
		m = m.startTimer()
		m.input += "."
		m.logErr(m.keyer.EnqueueDit(m.audio.WPM, m.audio.FreqHz, m.audio.Volume))
	case "e", "-":
		m = m.startTimer()
		m.input += "-"
		m.logErr(m.keyer.EnqueueDah(m.audio.WPM, m.audio.FreqHz, m.audio.Volume))
	case " ":
		m.input += " "
	case "tab":
		m.input += morsecode.WordSeparator
	case "backspace":
		if trimmed, ok := strings.CutSuffix(m.input, morsecode.WordSeparator); ok {
			m.input = trimmed
		} else if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
	case "ctrl+n":
		m.score.Record(false)
		m.outcome = skipped
	case "enter":
		if strings.TrimSpace(m.input) != "" {
			m = m.submit()
		}
	}
	return m, nil
}

func (m model) startTimer() model {
	if m.started.IsZero() {
		m.started = m.now()
	}
	return m
}

func (m model) submit() model {
	ok := drill.CheckMorse(m.input, m.targetMorse)
	m.score.Record(ok)
	if ok {
		m.outcome = correct
		m.wpm = drill.WPM(drill.CharCount(m.target), m.now().Sub(m.started))
		m.speeds = append(m.speeds, m.wpm)
	} else {
		m.outcome = wrong
	}
	m.keyer.Stop()
	m.logErr(m.keyer.PlayPhrase(context.Background(), m.targetMorse, m.audio.Params(), false))
	return m
}

func (m model) logErr(err error) {
	if err != nil {
		slog.Debug("send practice audio", "error", err)
	}
}

func (m model) record() sessionlog.Record {
	var avg float64
	if len(m.speeds) > 0 {
		avg = lo.Mean(m.speeds)
	}
	return sessionlog.NewRecord(sessionlog.ToolSendPractice, m.score.Correct, m.score.Total, avg)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SEND PRACTICE"))
	b.WriteString(fmt.Sprintf("  %d WPM\n\n", m.audio.WPM))
	b.WriteString("Send: " + targetStyle.Render(m.target) + "\n\n")
	b.WriteString("You:  " + inputStyle.Render(m.input) + "\n")

	if m.outcome != pending {
		b.WriteString("Want: " + m.targetMorse + "\n\n")
		switch m.outcome {
		case correct:
			b.WriteString(correctStyle.Render("Correct!"))
			b.WriteString(fmt.Sprintf("  %.1f WPM", m.wpm))
		case wrong:
			b.WriteString(wrongStyle.Render("Wrong!"))
		case skipped:
			b.WriteString(skipStyle.Render("Skipped"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.score.String() + "\n\n")
	if m.outcome != pending {
		b.WriteString(helpStyle.Render("enter: next word • esc: quit"))
	} else {
		b.WriteString(helpStyle.Render("q/. dit • e/- dah • space: letter • tab: word • enter: submit • ctrl+n: skip • esc: quit"))
	}
	b.WriteString("\n")
	return b.String()
}
