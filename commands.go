package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nodeadmin/ontograph/config"
	"github.com/nodeadmin/ontograph/ontoio"
	"github.com/nodeadmin/ontograph/ontology"
)

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "ontograph",
		Short: "Build and query OBO/OWL ontology hierarchies",
		Long: `ontograph loads an OBO or OWL ontology, builds its is_a/part_of
hierarchy with precomputed ancestor sets and answers queries over it.

Examples:
  ontograph stats --input hp.obo
  ontograph ancestors --input hp.obo --no-root HP:0001250
  ontograph common --input hp.obo HP:0001250 HP:0000505
  ontograph subontology --input hp.obo --output nervous.json HP:0000707`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML configuration file")
	pf.StringP("input", "i", "", "ontology file (.obo, .owl)")
	pf.String("format", "auto", "input format: auto, obo, owl")
	pf.Int("workers", 0, "goroutines for the ancestor sweep (0 = all CPUs)")
	pf.String("root", "", "explicit root term id")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		c.statsCmd(),
		c.ancestorsCmd(),
		c.descendantsCmd(),
		c.commonCmd(),
		c.subOntologyCmd(),
	)
	return root
}

// setup merges the config file with explicitly set flags, validates the
// result and installs the default logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("pretty") != nil && flags.Changed("pretty") {
		cfg.Pretty, _ = flags.GetBool("pretty")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return nil
}

// build loads the configured input and builds the ontology.
func (c *cli) build() (*ontology.BuildResult, error) {
	conv, err := ontoio.LoadFile(c.cfg.Input, ontoio.Format(c.cfg.Format))
	if err != nil {
		return nil, err
	}
	opts, err := c.cfg.BuilderOptions()
	if err != nil {
		return nil, err
	}
	return ontology.NewBuilder(opts...).
		Meta(conv.Meta).
		Terms(conv.Terms).
		Relationships(conv.Relationships).
		Build()
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print term, edge and closure counts and build warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.build()
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printStats(w io.Writer, res *ontology.BuildResult) {
	o, s := res.Ontology, res.Stats
	version, ok := o.Version()
	if !ok {
		version = "-"
	}
	label, _ := o.TermLabel(o.Root())

	name := o.Meta()[ontoio.MetaOntology]
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(w, "ontology:         %s (%s)\n", name, o.ID())
	fmt.Fprintf(w, "version:          %s\n", version)
	fmt.Fprintf(w, "root:             %s (%s) [%s]\n", o.Root(), label, res.RootHeuristic)
	if len(res.RootCandidates) > 1 {
		fmt.Fprintf(w, "root candidates:  %s\n", joinIDs(res.RootCandidates))
	}
	fmt.Fprintf(w, "terms:            %d (%d obsolete)\n", s.Terms, s.ObsoleteTerms)
	fmt.Fprintf(w, "relationships:    %d (%d hierarchy edges)\n", s.Relationships, s.HierarchyEdges)
	fmt.Fprintf(w, "closure entries:  %d\n", s.ClosureEntries)
	fmt.Fprintf(w, "workers:          %d\n", s.Workers)
	fmt.Fprintf(w, "build time:       %s\n", time.Duration(s.DurationMicro)*time.Microsecond)
	fmt.Fprintf(w, "skipped edges:    %d\n", len(res.RelationshipErrors))
	fmt.Fprintf(w, "alias conflicts:  %d\n", len(res.AliasConflicts))
	for _, t := range res.UnknownTypes {
		fmt.Fprintf(w, "unknown type:     %s (%s)\n", t.ID(), t.Label())
	}
}

func (c *cli) ancestorsCmd() *cobra.Command {
	var noRoot bool
	cmd := &cobra.Command{
		Use:   "ancestors ID...",
		Short: "Print the is_a/part_of ancestors of each term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			res, err := c.build()
			if err != nil {
				return err
			}
			for _, id := range ids {
				printTerms(cmd.OutOrStdout(), res.Ontology, id, res.Ontology.AncestorsOf(id, !noRoot))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noRoot, "no-root", false, "leave the root out of the result")
	return cmd
}

func (c *cli) descendantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants ID",
		Short: "Print a term and every term below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			res, err := c.build()
			if err != nil {
				return err
			}
			printTerms(cmd.OutOrStdout(), res.Ontology, ids[0], res.Ontology.DescendantsOf(ids[0]))
			return nil
		},
	}
}

func (c *cli) commonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "common A B",
		Short: "Print the ancestors two terms share, excluding the root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			res, err := c.build()
			if err != nil {
				return err
			}
			o := res.Ontology
			out := cmd.OutOrStdout()
			common := o.CommonAncestorsOf(ids[0], ids[1])
			fmt.Fprintf(out, "# %s and %s: %d common ancestors\n", ids[0], ids[1], len(common))
			for _, a := range common {
				label, _ := o.TermLabel(a)
				fmt.Fprintf(out, "%s\t%s\n", a, label)
			}
			return nil
		},
	}
}

func (c *cli) subOntologyCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "subontology ID",
		Short: "Write the sub-ontology rooted at a term as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			res, err := c.build()
			if err != nil {
				return err
			}
			sub, err := res.Ontology.SubOntology(ids[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				if c.cfg.Pretty {
					return ontology.WriteJSONPretty(sub, cmd.OutOrStdout())
				}
				return ontology.WriteJSON(sub, cmd.OutOrStdout())
			}
			if err := ontology.WriteJSONFile(sub, output, c.cfg.Pretty); err != nil {
				return err
			}
			slog.Info("wrote sub-ontology",
				slog.String("root", sub.Root().String()),
				slog.Int("terms", sub.Len()),
				slog.String("output", output),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file (default: stdout)")
	cmd.Flags().Bool("pretty", false, "pretty-print JSON output")
	return cmd
}

func parseIDs(args []string) ([]ontology.TermID, error) {
	ids := make([]ontology.TermID, len(args))
	for i, a := range args {
		id, err := ontology.ParseTermID(a)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func printTerms(w io.Writer, o *ontology.Ontology, query ontology.TermID, ids []ontology.TermID) {
	label, ok := o.TermLabel(query)
	if !ok {
		slog.Warn("unknown term", slog.String("id", query.String()))
	}
	fmt.Fprintf(w, "# %s %s\n", query, label)
	for _, id := range ids {
		l, _ := o.TermLabel(id)
		fmt.Fprintf(w, "%s\t%s\n", id, l)
	}
}

func joinIDs(ids []ontology.TermID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, ", ")
}
