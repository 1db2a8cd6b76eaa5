package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/output"
	"github.com/priplot/priplot/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule NAME DATE",
	Short: "Schedule a task on a calendar day",
	Long: `Schedules the named task on a date (YYYY-MM-DD). Times default to
the day's next free slot. Use --clear to unschedule instead; then the
date argument is omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("start", "", "start time (HH:MM)")
	scheduleCmd.Flags().String("end", "", "end time (HH:MM)")
	scheduleCmd.Flags().Bool("clear", false, "remove the task's schedule")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, store, err := loadSession(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	sched := schedule.New(list)
	sched.SetDayStart(cfg.DayStartClock())

	if clear, _ := cmd.Flags().GetBool("clear"); clear {
		if err := sched.Clear(name); err != nil {
			return err
		}
		if err := store.Save(list); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]interface{}{
				"status": "unscheduled",
				"name":   name,
			})
		}
		output.Messagef(os.Stdout, "Unscheduled %q", name)
		return nil
	}

	if len(args) < 2 {
		return cmd.Usage()
	}
	d, err := date.Parse(args[1])
	if err != nil {
		return err
	}

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

	if err := sched.Schedule(name, d, &start, &end); err != nil {
		return err
	}
	if err := store.Save(list); err != nil {
		return err
	}

	t, _ := list.Get(name)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Scheduled %q on %s %s-%s", t.Name, t.ScheduledDate, t.StartTime, t.EndTime)
	return nil
}
