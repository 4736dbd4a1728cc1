package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/model"
)

var traceSteps int

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "Print the machine state before every step",
	Args:  cobra.ExactArgs(1),
	Run:   traceCommand,
}

func init() {
	traceCmd.Flags().IntVar(&traceSteps, "steps", 0, "Stop printing after this many steps (0 runs to halt, bounded by the run file)")
}

func traceCommand(cmd *cobra.Command, args []string) {
	spec, err := model.LoadSpec(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load run file")
	}
	spec.Trace.Enabled = true
	limit := spec.Machine.MaxSteps
	if traceSteps > 0 {
		limit = traceSteps
	}
	prog, err := spec.LoadProgram()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load program")
	}
	c, err := history.New(prog, spec.HistoryConfig(&model.TraceReporter{
		Reporter: &model.ColorReporter{Writer: os.Stdout},
	}))
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build machine")
	}
	for c.Phase() != history.Halted && c.CurrentStep() < limit {
		fmt.Print(model.FormatState(c.State(), c.CurrentStep(), c.Phase()))
		if _, _, err := c.Advance(); err != nil {
			fmt.Print(model.FormatFault(err))
			os.Exit(1)
		}
		fmt.Println()
	}
	fmt.Print(model.FormatState(c.State(), c.CurrentStep(), c.Phase()))
	if c.Phase() == history.Halted {
		fmt.Println("Finished")
	}
}
