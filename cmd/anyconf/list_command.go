package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/logging"
	"github.com/0xalexb/anyconf/processor"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available processors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := anyconf.New(anyconf.WithLogger(logging.Discard()))
			if err != nil {
				return err
			}

			groups, err := loader.Registry().ListBy(by)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderGroups(by, groups))

			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "type", "Group by: type, extension or id")

	return cmd
}

func renderGroups(by string, groups []processor.Group) string {
	if strings.EqualFold(by, "id") || strings.EqualFold(by, "cid") {
		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			p := g.Processors[0]
			rows = append(rows, []string{
				g.Key,
				p.Type(),
				strconv.Itoa(p.Priority()),
				strings.Join(p.Extensions(), ", "),
			})
		}

		return renderTable(
			[]string{"ID", "Type", "Priority", "Extensions"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		)
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		ids := make([]string, len(g.Processors))
		for i, p := range processor.FindAllWithPred(func(processor.Processor) bool { return true }, g.Processors) {
			ids[i] = processor.IDOf(p)
		}

		rows = append(rows, []string{g.Key, strings.Join(ids, ", ")})
	}

	return renderTable(
		[]string{strings.ToUpper(by[:1]) + strings.ToLower(by[1:]), "Processors"},
		rows,
		nil,
	)
}
