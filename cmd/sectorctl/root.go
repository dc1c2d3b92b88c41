package main

import (
	"sectorgen/internal/warpgraph"

	"github.com/spf13/cobra"
)

// generatorFlags are the tunables shared by the offline commands.
type generatorFlags struct {
	sectors     int
	seed        int64
	maxAdjacent int
	perRegion   int
	starMalls   int
	seedPlanets int
	oneWay      float64
	skipVerify  bool
}

func (f *generatorFlags) register(cmd *cobra.Command) {
	defaults := warpgraph.DefaultParams()
	cmd.Flags().IntVarP(&f.sectors, "sectors", "n", 1000, "number of sectors to generate")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", 1, "generator seed")
	cmd.Flags().IntVar(&f.maxAdjacent, "max-adjacent", defaults.MaxAdjacentSectors, "maximum out-degree per sector")
	cmd.Flags().IntVar(&f.perRegion, "sectors-per-region", defaults.SectorsPerRegion, "target region size")
	cmd.Flags().IntVar(&f.starMalls, "star-malls", defaults.NumStarMalls, "configured star mall count")
	cmd.Flags().IntVar(&f.seedPlanets, "seed-planets", defaults.NumSeedPlanets, "configured seed planet count")
	cmd.Flags().Float64Var(&f.oneWay, "one-way-fraction", defaults.OneWayFraction, "fraction of lanes made one-way")
	cmd.Flags().BoolVar(&f.skipVerify, "skip-verify", false, "skip postcondition checks")
}

func (f *generatorFlags) params() warpgraph.Params {
	p := warpgraph.DefaultParams()
	p.MaxAdjacentSectors = f.maxAdjacent
	p.SectorsPerRegion = f.perRegion
	p.NumStarMalls = f.starMalls
	p.NumSeedPlanets = f.seedPlanets
	p.OneWayFraction = f.oneWay
	p.VerifyPostconditions = !f.skipVerify
	return p
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sectorctl",
		Short:        "Generate, inspect and persist sector maps",
		SilenceUsage: true,
	}

	root.AddCommand(
		newGenerateCmd(),
		newRouteCmd(),
		newVerifyCmd(),
		newBootstrapCmd(),
		newSinglePlayerCmd(),
	)
	return root
}
