package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/priplot/priplot/internal/config"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/output"
	"github.com/priplot/priplot/internal/schedule"
	"github.com/priplot/priplot/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create"},
	Short:   "Add a task to the plot",
	Long: `Adds a task with the given name. Value and time default to a
remembered entry for a similar name, then to the placeholders.
With --on, the task is also scheduled on that date.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Float64("value", 0, "how valuable the task is (1-5)")
	addCmd.Flags().Float64("time", 0, "estimated hours (0.5-8)")
	addCmd.Flags().String("on", "", "schedule on this date (YYYY-MM-DD)")
	addCmd.Flags().String("start", "", "start time (HH:MM, with --on)")
	addCmd.Flags().String("end", "", "end time (HH:MM, with --on)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "hours" {
			name = "time"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, store, err := loadSession(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	value, _ := cmd.Flags().GetFloat64("value")
	hours, _ := cmd.Flags().GetFloat64("time")

	mem, memErr := memory.Load(cfg.Dir())
	if value == 0 || hours == 0 {
		rv, rh := task.DefaultValue, task.DefaultHours
		if memErr == nil {
			if e, _, ok := mem.Recall(name); ok {
				rv, rh = e.Value, e.Hours
			}
		}
		if value == 0 {
			value = rv
		}
		if hours == 0 {
			hours = rh
		}
	}

	t := task.New(name, value, hours)

	if on, _ := cmd.Flags().GetString("on"); on != "" {
		if err := scheduleOnAdd(cmd, list, t, on, cfg); err != nil {
			return err
		}
	} else if err := list.Add(t); err != nil {
		return err
	}

	if memErr == nil {
		mem.Remember(name, value, hours)
		_ = mem.Save()
	}
	if err := store.Save(list); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Added %q: value %.1f, time %.1fh, score %.2f", t.Name, t.Value, t.Hours, t.Score())
	if t.IsScheduled() {
		output.Messagef(os.Stdout, "  Scheduled: %s %s-%s", t.ScheduledDate, t.StartTime, t.EndTime)
	}
	return nil
}

// scheduleOnAdd adds the task born scheduled, with times defaulting to
// the day's next free slot.
func scheduleOnAdd(cmd *cobra.Command, list *task.List, t *task.Task, on string, cfg *config.Config) error {
	d, err := date.Parse(on)
	if err != nil {
		return err
	}

	sched := schedule.New(list)
	sched.SetDayStart(cfg.DayStartClock())
	start, end := sched.DefaultTimes(d)
	if v, _ := cmd.Flags().GetString("start"); v != "" {
		if start, err = date.ParseClock(v); err != nil {
			return err
		}
	}
	if v, _ := cmd.Flags().GetString("end"); v != "" {
		if end, err = date.ParseClock(v); err != nil {
			return err
		}
	}

	added, err := sched.ScheduleNew(t.Name, t.Value, t.Hours, d, &start, &end)
	if err != nil {
		return err
	}
	*t = *added
	return nil
}
