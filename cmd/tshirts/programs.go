package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/tshirts/programs"
)

var showSource bool

var programsCmd = &cobra.Command{
	Use:   "programs [NAME]",
	Short: "List the embedded sample programs, or print one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, name := range programs.Names() {
				fmt.Println(programs.Prefix + name)
			}
			return
		}
		name := args[0]
		if n, ok := programs.IsSample(name); ok {
			name = n
		}
		if showSource {
			src, err := programs.Source(name)
			if err != nil {
				log.Fatal().Err(err).Msg("Couldn't read sample")
			}
			fmt.Print(src)
			return
		}
		p, err := programs.Load(name)
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't load sample")
		}
		p.DebugPrint(cmd.OutOrStdout())
	},
}

func init() {
	programsCmd.Flags().BoolVar(&showSource, "source", false, "Print the listing text instead of the decoded instructions")
}
