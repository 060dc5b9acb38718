package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtofu/cmd/config"
	"github.com/gigurra/cwtofu/cmd/copy"
	"github.com/gigurra/cwtofu/cmd/morse"
	"github.com/gigurra/cwtofu/cmd/qcode"
	"github.com/gigurra/cwtofu/cmd/send"
	"github.com/gigurra/cwtofu/cmd/stats"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupCode     = "code"
	groupPractice = "practice"
	groupSettings = "settings"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "cwtofu",
		Short:   "CW (Morse) tools and trainer",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupCode, Title: "Morse Code:"},
			{ID: groupPractice, Title: "Practice:"},
			{ID: groupSettings, Title: "Settings:"},
		},
		SubCmds: []*cobra.Command{
			// Morse Code
			withGroup(morse.Cmd(), groupCode),
			withGroup(qcode.Cmd(), groupCode),

			// Practice
			withGroup(send.Cmd(), groupPractice),
			withGroup(copy.Cmd(), groupPractice),
			withGroup(stats.Cmd(), groupPractice),

			// Settings
			withGroup(config.Cmd(), groupSettings),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
