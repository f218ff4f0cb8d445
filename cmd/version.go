package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version and commit are stamped with -ldflags by release builds.
var (
	version = ""
	commit  = ""
)

// buildVersion falls back to the module version recorded by `go install`.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the GuruAI build and the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion())
			return nil
		}

		fmt.Fprintf(out, "GuruAI %s", buildVersion())
		if commit != "" {
			fmt.Fprintf(out, " (%s)", commit)
		}
		fmt.Fprintf(out, " %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if cfg != nil {
			fmt.Fprintf(out, "provider: %s\n", cfg.LLM.Provider)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
}
