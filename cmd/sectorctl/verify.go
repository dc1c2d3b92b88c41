package main

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"sectorgen/internal/warpgraph"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type verifyFailure struct {
	sectors int
	seed    int64
	err     error
}

// verifySeeds generates one graph per (size, seed) pair in parallel and
// returns every pair whose generation or postconditions failed.
func verifySeeds(sizes []int, firstSeed int64, seeds int, params warpgraph.Params, workers int) []verifyFailure {
	params.VerifyPostconditions = true

	var (
		mu       sync.Mutex
		failures []verifyFailure
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, n := range sizes {
		for i := 0; i < seeds; i++ {
			seed := firstSeed + int64(i)
			g.Go(func() error {
				if _, err := warpgraph.GenerateWithParams(n, seed, params); err != nil {
					mu.Lock()
					failures = append(failures, verifyFailure{sectors: n, seed: seed, err: err})
					mu.Unlock()
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool {
		if failures[i].sectors != failures[j].sectors {
			return failures[i].sectors < failures[j].sectors
		}
		return failures[i].seed < failures[j].seed
	})
	return failures
}

func newVerifyCmd() *cobra.Command {
	var (
		flags   generatorFlags
		sizes   []int
		seeds   int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Generate many seeds and check every postcondition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seeds <= 0 {
				return fmt.Errorf("seeds must be positive")
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			failures := verifySeeds(sizes, flags.seed, seeds, flags.params(), workers)

			out := cmd.OutOrStdout()
			total := len(sizes) * seeds
			for _, f := range failures {
				fmt.Fprintf(out, "FAIL sectors=%d seed=%d: %v\n", f.sectors, f.seed, f.err)
			}
			fmt.Fprintf(out, "%d/%d graphs passed\n", total-len(failures), total)

			if len(failures) > 0 {
				return fmt.Errorf("%d graphs failed verification", len(failures))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{10, 50, 100, 500, 1000}, "sector counts to generate")
	cmd.Flags().IntVar(&seeds, "seeds", 20, "number of consecutive seeds per size, starting at --seed")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel generators, 0 for one per CPU")
	return cmd
}
