package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a task's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, _, err := loadSession(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	t, ok := list.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}

	rank := 0
	for i, r := range list.Ranked() {
		if r.Name == t.Name {
			rank = i + 1
			break
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.TaskDetail(os.Stdout, t, rank)
	return nil
}
