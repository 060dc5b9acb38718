package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/sessionlog"
	"github.com/gigurra/cwtofu/cmd/common/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type Params struct {
	Last  int  `short:"l" help:"Number of most recent sessions to list." default:"10"`
	JSON  bool `short:"j" help:"Print all sessions as JSON." default:"false"`
	Clear bool `long:"clear" help:"Delete the session log." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "stats",
		Short:       "Show practice session statistics",
		Long:        "List recent practice sessions and per-tool averages from ~/.cwtofu/session_stats.json.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "stats: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func run(params *Params, out io.Writer) error {
	if params.Clear {
		if err := sessionlog.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Session log cleared")
		return nil
	}

	records := sessionlog.Load()

	if params.JSON {
		if records == nil {
			records = []sessionlog.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet")
		fmt.Fprintln(out, "\nPractice with: cwtofu send or cwtofu copy")
		return nil
	}

	recent := records
	if params.Last > 0 && len(recent) > params.Last {
		recent = recent[len(recent)-params.Last:]
	}

	t := table.New(out, "Recent sessions")
	t.AppendHeader(prettytable.Row{"When", "Tool", "Score", "Accuracy", "WPM"})
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		t.AppendRow(prettytable.Row{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Tool,
			fmt.Sprintf("%d/%d", r.Correct, r.Total),
			accuracyColor(r.Accuracy)(fmt.Sprintf("%.1f%%", r.Accuracy)),
			formatWPM(r.WPM),
		})
	}
	t.Render()

	fmt.Fprintln(out)
	s := table.New(out, "Per tool")
	s.AppendHeader(prettytable.Row{"Tool", "Sessions", "Attempts", "Avg accuracy", "Avg WPM"})
	for _, sum := range sessionlog.Summaries(records) {
		s.AppendRow(prettytable.Row{
			sum.Tool,
			sum.Sessions,
			sum.Attempts,
			accuracyColor(sum.AvgAccuracy)(fmt.Sprintf("%.1f%%", sum.AvgAccuracy)),
			formatWPM(sum.AvgWPM),
		})
	}
	s.Render()
	return nil
}

func formatWPM(wpm float64) string {
	if wpm <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", wpm)
}

func accuracyColor(accuracy float64) func(a ...interface{}) string {
	switch {
	case accuracy >= 90:
		return text.FgGreen.Sprint
	case accuracy >= 60:
		return text.FgYellow.Sprint
	default:
		return text.FgHiRed.Sprint
	}
}
