package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sectorgen/internal/warpgraph"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// universeDocument is the serialized form written by the generate command.
type universeDocument struct {
	TotalSectors int                `json:"total_sectors" yaml:"total_sectors"`
	Seed         int64              `json:"seed" yaml:"seed"`
	Offset       int                `json:"offset" yaml:"offset"`
	Stats        warpgraph.Stats    `json:"stats" yaml:"stats"`
	Sectors      []warpgraph.Sector `json:"sectors" yaml:"sectors"`
	Edges        []warpgraph.Edge   `json:"edges" yaml:"edges"`
}

func newGenerateCmd() *cobra.Command {
	var (
		flags  generatorFlags
		format string
		output string
		offset int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sector map and write it as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}
			if offset < 0 {
				return fmt.Errorf("offset must not be negative")
			}

			g, err := warpgraph.GenerateWithParams(flags.sectors, flags.seed, flags.params())
			if err != nil {
				return err
			}

			sectors, edges := g.Translate(offset)
			doc := universeDocument{
				TotalSectors: g.Len(),
				Seed:         flags.seed,
				Offset:       offset,
				Stats:        g.Stats,
				Sectors:      sectors,
				Edges:        edges,
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return writeDocument(w, format, doc)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&offset, "offset", 0, "shift every sector id by this amount")
	return cmd
}

func writeDocument(w io.Writer, format string, doc universeDocument) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

func newRouteCmd() *cobra.Command {
	var (
		flags    generatorFlags
		from     int
		to       int
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Generate a sector map and print the shortest route between two sectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := warpgraph.GenerateWithParams(flags.sectors, flags.seed, flags.params())
			if err != nil {
				return err
			}
			if g.Sector(from) == nil || g.Sector(to) == nil {
				return fmt.Errorf("sectors must be within 1..%d", g.Len())
			}

			path := warpgraph.FindShortestPath(g, from, to, maxDepth)
			out := cmd.OutOrStdout()
			if path == nil {
				fmt.Fprintf(out, "no route from %d to %d\n", from, to)
				return nil
			}
			fmt.Fprintf(out, "%d hops: %v\n", len(path)-1, path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&from, "from", 1, "start sector")
	cmd.Flags().IntVar(&to, "to", 2, "destination sector")
	cmd.Flags().IntVar(&maxDepth, "max-depth", warpgraph.DefaultMaxPathDepth, "maximum hops")
	return cmd
}
