package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/index"
)

// valuesArg lists the values of one atom.
const valuesArg = "values"

func newListCmd() *cobra.Command {
	valid := []string{valuesArg}
	for _, c := range index.Categories {
		valid = append(valid, c.String())
	}

	cmd := &cobra.Command{
		Use:   "list [category | values ATOM]",
		Short: "List the names class tokens can use",
		Long: `Without arguments, print every category with its names in natural order.
With a category (` + strings.Join(valid[1:], ", ") + `) print only its names.
"values ATOM" prints the values an atom accepts.`,
		ValidArgs: valid,
		Args:      cobra.RangeArgs(0, 2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := buildSetup()
			if err != nil {
				return err
			}
			rn, err := atomcss.Resolve(setup)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), rn, args)
		},
	}
	return cmd
}

func runList(w io.Writer, rn *engine.Runner, args []string) error {
	ix := rn.Index()

	if len(args) == 0 {
		for _, c := range index.Categories {
			names := sorted(ix.Names(c))
			fmt.Fprintf(w, "%s (%d)\n", c, len(names))
			for _, n := range names {
				fmt.Fprintf(w, "  %s\n", n)
			}
		}
		return nil
	}

	if args[0] == valuesArg {
		if len(args) != 2 {
			return fmt.Errorf("usage: list values ATOM")
		}
		if !ix.Has(index.Atom, args[1]) {
			return fmt.Errorf("unknown atom %q", args[1])
		}
		for _, v := range sorted(ix.Values(args[1])) {
			fmt.Fprintln(w, v)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("unexpected argument %q", args[1])
	}
	for _, c := range index.Categories {
		if c.String() == args[0] {
			for _, n := range sorted(ix.Names(c)) {
				fmt.Fprintln(w, n)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", args[0])
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Sort(natural.StringSlice(out))
	return out
}
