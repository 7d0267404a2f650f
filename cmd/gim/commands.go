package gim

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gim/internal/version"
	"github.com/arthur-debert/gim/pkg/cobrax/topics"
	"github.com/arthur-debert/gim/pkg/commands"
	"github.com/arthur-debert/gim/pkg/logging"
	"github.com/arthur-debert/gim/pkg/style"
	"github.com/arthur-debert/gim/pkg/types"
	"github.com/arthur-debert/gim/pkg/ui/confirmations"
	"github.com/arthur-debert/gim/pkg/ui/output"
)

//go:embed topics/*.md
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "gim",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			style.Configure(style.ColorEnabled(os.Stdout))
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given
			_ = cmd.Help()
			return usageErrorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddGroup(&cobra.Group{ID: "identity", Title: "IDENTITIES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "repo", Title: "REPOSITORIES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicFS, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, topicFS, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// newRenderer writes to the command's output, styled only on a real terminal
func newRenderer(cmd *cobra.Command) *output.Renderer {
	out := cmd.OutOrStdout()
	rich := out == os.Stdout && style.ColorEnabled(os.Stdout)
	return output.NewRenderer(out, rich)
}

// newDialog asks on the terminal, or reads answers from the command's input
// when it has been redirected
func newDialog(cmd *cobra.Command) types.ConfirmationDialog {
	if cmd.InOrStdin() == os.Stdin {
		return confirmations.NewConsoleDialog()
	}
	return confirmations.NewLineDialog(cmd.InOrStdin(), cmd.OutOrStdout())
}

func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(MsgErrWorkingDir, err)
	}
	return dir, nil
}

func newAddCmd() *cobra.Command {
	var (
		force     bool
		algorithm string
	)

	cmd := &cobra.Command{
		Use:     "add <alias> <name> <email>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "identity",
		Args:    exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Add(commands.AddOptions{
				Alias:     args[0],
				Name:      args[1],
				Email:     args[2],
				Algorithm: algorithm,
				Force:     force,
				Dialog:    newDialog(cmd),
			})
			if err != nil {
				return err
			}
			return newRenderer(cmd).RenderAdd(result)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVar(&algorithm, "algorithm", "", MsgFlagAlgorithm)
	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"ed25519", "rsa", "ecdsa"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newListCmd() *cobra.Command {
	var showKeys bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "identity",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := commands.List(cmd.Context(), commands.ListOptions{ShowKeys: showKeys})
			if err != nil {
				return err
			}
			if err := newRenderer(cmd).RenderList(report, showKeys); err != nil {
				return err
			}
			if report.HasIssues {
				unhealthy := len(report.Identities) - report.HealthyCount()
				return &ExitError{Code: 1, Err: fmt.Errorf(MsgErrIssuesFound, unhealthy, len(report.Identities))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showKeys, "keys", false, MsgFlagKeys)

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		all bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:               "remove <alias> | --all",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		GroupID:           "identity",
		ValidArgsFunction: aliasCompletion,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return usageErrorf(MsgErrRemoveArgs)
			}
			if !all {
				return exactArgs(1)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.RemoveOptions{All: all}
			if len(args) == 1 {
				opts.Alias = args[0]
			}
			if all && !yes {
				opts.Dialog = newDialog(cmd)
			}

			result, err := commands.Remove(opts)
			if err != nil {
				return err
			}
			return newRenderer(cmd).RenderRemove(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)

	return cmd
}

func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "switch <alias>",
		Short:             MsgSwitchShort,
		Long:              MsgSwitchLong,
		GroupID:           "repo",
		Args:              exactArgs(1),
		ValidArgsFunction: aliasCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return err
			}
			result, err := commands.Switch(cmd.Context(), commands.SwitchOptions{Alias: args[0], Dir: dir})
			if err != nil {
				return err
			}
			return newRenderer(cmd).RenderSwitch(result)
		},
	}
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "current",
		Short:   MsgCurrentShort,
		GroupID: "repo",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return err
			}
			result, err := commands.Current(cmd.Context(), commands.CurrentOptions{Dir: dir})
			if err != nil {
				return err
			}
			return newRenderer(cmd).RenderCurrent(result)
		},
	}
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "clone <alias> <url> [destination] [git clone flags]",
		Short:             MsgCloneShort,
		Long:              MsgCloneLong,
		Example:           MsgCloneExample,
		GroupID:           "repo",
		ValidArgsFunction: aliasCompletion,
		// git clone flags are forwarded untouched, so cobra must not parse them
		DisableFlagParsing: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return nil
			}
			_, err := splitCloneArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			parsed, err := splitCloneArgs(args)
			if err != nil {
				return err
			}

			dir, err := workingDir()
			if err != nil {
				return err
			}

			opts := commands.CloneOptions{
				Alias:       parsed.alias,
				URL:         parsed.url,
				Destination: parsed.destination,
				Dir:         dir,
				Passthrough: parsed.passthrough,
			}

			result, err := commands.Clone(cmd.Context(), opts)
			if result != nil {
				if renderErr := newRenderer(cmd).RenderClone(result); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}
}

type cloneArgs struct {
	alias       string
	url         string
	destination string
	passthrough []string
}

// splitCloneArgs takes alias, url and an optional destination from the front
// of args. Everything from the first flag on is passed to git clone as is,
// minus a leading "--" separator.
func splitCloneArgs(args []string) (*cloneArgs, error) {
	var positional []string
	rest := args
	for len(rest) > 0 && len(positional) < 3 && !isFlagArg(rest[0]) {
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	if len(positional) < 2 {
		return nil, usageErrorf(MsgErrCloneArgs)
	}
	if len(rest) > 0 && !isFlagArg(rest[0]) {
		return nil, usageErrorf(MsgErrCloneArgs)
	}
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	parsed := &cloneArgs{alias: positional[0], url: positional[1]}
	if len(positional) == 3 {
		parsed.destination = positional[2]
	}
	if len(rest) > 0 {
		parsed.passthrough = rest
	}
	return parsed, nil
}

func isFlagArg(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// wantsHelp reports a help flag placed before any git clone flags
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if isFlagArg(arg) {
			return false
		}
	}
	return false
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(exactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// aliasCompletion completes the first argument with known identity aliases
func aliasCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	aliases, err := commands.Aliases()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return aliases, cobra.ShellCompDirectiveNoFileComp
}
