package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/output"
	"github.com/priplot/priplot/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "rank"},
	Short:   "List tasks ranked by priority score",
	Long: `Lists tasks ordered by priority score (value divided by time),
highest first. With --on, shows the agenda for one date instead.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("on", "", "show tasks scheduled on this date (YYYY-MM-DD)")
	listCmd.Flags().Bool("scheduled", false, "only tasks with a calendar date")
	listCmd.Flags().Bool("unscheduled", false, "only tasks without a calendar date")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, _, err := loadSession(cfg)
	if err != nil {
		return err
	}

	if on, _ := cmd.Flags().GetString("on"); on != "" {
		return listDay(list, on)
	}

	scheduled, _ := cmd.Flags().GetBool("scheduled")
	unscheduled, _ := cmd.Flags().GetBool("unscheduled")
	limit, _ := cmd.Flags().GetInt("limit")

	ranked := list.Ranked()
	if scheduled || unscheduled {
		filtered := ranked[:0]
		for _, t := range ranked {
			if t.IsScheduled() == scheduled {
				filtered = append(filtered, t)
			}
		}
		ranked = filtered
	}
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.Ranked(ranked))
	case output.FormatCompact:
		output.RankCompact(os.Stdout, ranked)
	default:
		output.RankTable(os.Stdout, ranked)
	}
	return nil
}

func listDay(list *task.List, on string) error {
	d, err := date.Parse(on)
	if err != nil {
		return err
	}
	day := list.On(d)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.Ranked(day))
	}
	output.DayTable(os.Stdout, d.String(), day)
	return nil
}
