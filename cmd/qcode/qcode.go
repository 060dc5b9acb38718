package qcode

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/morsecode"
	"github.com/gigurra/cwtofu/cmd/common/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Params struct {
	Query []string `pos:"true" optional:"true" help:"Search text matched against codes and meanings."`
	Q     bool     `short:"q" help:"Only list Q-codes." default:"false"`
	Abbr  bool     `short:"a" help:"Only list CW abbreviations." default:"false"`
	JSON  bool     `short:"j" help:"Output as JSON." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "qcode",
		Short:       "Q-code and CW abbreviation reference",
		Long:        "Look up Q-codes and common CW abbreviations. Any search text filters codes, meanings and usage (case-insensitive).",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "qcode: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Search returns the entries where query occurs in any field.
func Search(entries []Entry, query string) []Entry {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return strings.Contains(e.Code, q) ||
			strings.Contains(strings.ToUpper(e.Meaning), q) ||
			strings.Contains(strings.ToUpper(e.Usage), q)
	})
}

func run(params *Params, out io.Writer) error {
	query := strings.Join(params.Query, " ")
	showQ := params.Q || !params.Abbr
	showAbbr := params.Abbr || !params.Q

	var codes, abbrs []Entry
	if showQ {
		codes = Search(qCodes, query)
	}
	if showAbbr {
		abbrs = Search(abbreviations, query)
	}

	if params.JSON {
		data, err := json.MarshalIndent(slices.Concat(codes, abbrs), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(codes) == 0 && len(abbrs) == 0 {
		fmt.Fprintf(out, "No matches for %q\n", query)
		return nil
	}

	if len(codes) > 0 {
		t := table.New(out, "Q-Codes")
		t.AppendHeader(prettytable.Row{"Code", "Morse", "Meaning", "Usage / Example"})
		usageWidth := table.FlexWidth([]int{4, 11, 21}, 20)
		for _, e := range codes {
			t.AppendRow(prettytable.Row{e.Code, morsecode.Encode(e.Code), e.Meaning, table.Truncate(e.Usage, usageWidth)})
		}
		t.Render()
	}

	if len(abbrs) > 0 {
		if len(codes) > 0 {
			fmt.Fprintln(out)
		}
		t := table.New(out, "CW Abbreviations")
		t.AppendHeader(prettytable.Row{"Abbr", "Morse", "Meaning"})
		for _, e := range abbrs {
			t.AppendRow(prettytable.Row{e.Code, morsecode.Encode(e.Code), e.Meaning})
		}
		t.Render()
	}
	return nil
}
