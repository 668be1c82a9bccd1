package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags registers --config, --verbose and --quiet on the root command
func AddGlobalFlags(cmd *cobra.Command) {
	globalFlags = GlobalFlags{}

	pf := cmd.PersistentFlags()
	pf.StringVar(&globalFlags.ConfigFile, "config", "", "config file (default is $HOME/.config/dirdiff/config.yaml)")
	pf.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "debug log on stderr")
	pf.BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "one-line summary, no progress bar")
}

func addFilterFlags(cmd *cobra.Command, f *CompareFlags) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.Ignore, "ignore", nil, "patterns to ignore at any depth (repeatable or comma-separated, glob allowed)")
	fs.StringSliceVar(&f.ShallowIgnore, "shallow-ignore", nil, "top-level directories to list without their contents (repeatable or comma-separated)")
	fs.StringSliceVar(&f.Include, "include", nil, "only compare paths starting with these prefixes (repeatable or comma-separated)")
	fs.IntVar(&f.MaxDepth, "max-depth", -1, "maximum number of path components (-1 = unlimited)")
	fs.StringVar(&f.Strategy, "strategy", "", "scan strategy: walk, bfs")
}

func addReportFlags(cmd *cobra.Command, f *CompareFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.Method, "method", "m", "", "report method: general, unified, includes")
	fs.IntVar(&f.Context, "context", -1, "context lines around diff hunks")
	fs.BoolVar(&f.TagDirs, "tag-dirs", true, "tag directories present on one side only")
	fs.StringVarP(&f.Format, "output", "o", "", "summary format: human, json")
	fs.BoolVar(&f.Progress, "progress", false, "show a progress bar on stderr")
}

func addLoggingFlags(cmd *cobra.Command, f *CompareFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.LogFile, "log-file", "", "write logs to file")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: text, json")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
