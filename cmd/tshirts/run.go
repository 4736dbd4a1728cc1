package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/tshirts/model"
)

var (
	debugFlag    bool
	traceFlag    bool
	maxStepsFlag int
	listFlag     bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a program until it stops",
	Long: `Run a program until it stops. FILE is a .toml run file, a program
listing, or sample:<name> for an embedded sample.`,
	Args: cobra.ExactArgs(1),
	Run:  runCommand,
}

func init() {
	runCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print the machine state after each step")
	runCmd.Flags().BoolVar(&traceFlag, "trace", false, "Print NOOP and STOP trace lines")
	runCmd.Flags().IntVar(&maxStepsFlag, "max-steps", 0, "Give up after this many steps (default from run file)")
	runCmd.Flags().BoolVar(&listFlag, "list", false, "Print the decoded program before running")
}

func runCommand(cmd *cobra.Command, args []string) {
	spec, err := model.LoadSpec(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load run file")
	}
	if traceFlag {
		spec.Trace.Enabled = true
	}
	if maxStepsFlag > 0 {
		spec.Machine.MaxSteps = maxStepsFlag
	}
	exec, err := spec.BuildExecutor()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load program")
	}
	exec.Reporter = &model.ColorReporter{Writer: os.Stderr}
	if debugFlag {
		exec.DebugWriter = os.Stderr
	}
	if listFlag {
		exec.Program.DebugPrint(os.Stderr)
	}
	if err := exec.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("Couldn't build machine")
	}
	log.Debug().Str("session", exec.Controller.ID.String()).Str("program", exec.Program.Name).Msg("run: starting")

	fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Running ", exec.Program.Name, "..."))
	result, runErr := exec.RunToHalt()
	if runErr != nil {
		fmt.Fprint(os.Stderr, model.FormatFault(runErr))
		fmt.Fprint(os.Stderr, model.FormatState(exec.Controller.State(), exec.Controller.CurrentStep(), exec.Controller.Phase()))
	}
	if result != nil {
		fmt.Fprint(os.Stderr, model.FormatStatistics(result))
		fmt.Fprintln(os.Stderr)
		fmt.Println(model.FormatStack(result.Output))
		fmt.Println(model.FormatOutput(result.Output))
	}
	if runErr != nil {
		os.Exit(1)
	}
}
