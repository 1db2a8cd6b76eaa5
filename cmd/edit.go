package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/output"
)

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Change a task's value or time estimate",
	Long: `Updates a task's priority inputs. Omitted flags keep the current
value. The new numbers are remembered for future tasks with similar
names.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().Float64("value", 0, "how valuable the task is (1-5)")
	editCmd.Flags().Float64("time", 0, "estimated hours (0.5-8)")
	editCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "hours" {
			name = "time"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, store, err := loadSession(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	t, ok := list.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}

	value, hours := t.Value, t.Hours
	if cmd.Flags().Changed("value") {
		value, _ = cmd.Flags().GetFloat64("value")
	}
	if cmd.Flags().Changed("time") {
		hours, _ = cmd.Flags().GetFloat64("time")
	}
	if err := list.SetPriority(name, value, hours); err != nil {
		return err
	}

	if mem, err := memory.Load(cfg.Dir()); err == nil {
		mem.Remember(name, value, hours)
		_ = mem.Save()
	}
	if err := store.Save(list); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Updated %q: value %.1f, time %.1fh, score %.2f", t.Name, t.Value, t.Hours, t.Score())
	return nil
}
