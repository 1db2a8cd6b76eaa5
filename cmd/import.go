package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/clipboard"
	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/output"
	"github.com/priplot/priplot/internal/task"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import tasks from the clipboard",
	Long: `Reads task names from the clipboard, one per line. Indented text is
treated as an outline and only leaf items become tasks, named by their
path ("Project->Design"). Names already on the plot are skipped.
Value and time come from remembered entries, then placeholders.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("stdin", false, "read from standard input instead of the clipboard")
	importCmd.Flags().Bool("mindmap", false, "force outline parsing even for flat text")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, store, err := loadSession(cfg)
	if err != nil {
		return err
	}

	mindmap, _ := cmd.Flags().GetBool("mindmap")
	parse := clipboard.Parse
	if mindmap {
		parse = clipboard.ParseOutline
	}

	var text string
	if stdin, _ := cmd.Flags().GetBool("stdin"); stdin {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return clierr.Newf(clierr.ClipboardEmpty, "failed to read stdin: %v", err)
		}
		text = string(raw)
	} else if text, err = clipboard.Read(); err != nil {
		return err
	}

	names, err := parse(text)
	if err != nil {
		return err
	}

	mem, memErr := memory.Load(cfg.Dir())
	added := make([]*task.Task, 0, len(names))
	skipped := 0
	for _, name := range names {
		value, hours := task.DefaultValue, task.DefaultHours
		if memErr == nil {
			if e, _, ok := mem.Recall(name); ok {
				value, hours = e.Value, e.Hours
			}
		}
		t := task.New(name, value, hours)
		if err := list.Add(t); err != nil {
			skipped++
			continue
		}
		added = append(added, t)
	}

	if len(added) > 0 {
		if err := store.Save(list); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"imported": len(added),
			"skipped":  skipped,
			"tasks":    added,
		})
	}
	output.Messagef(os.Stdout, "Imported %d task(s), skipped %d", len(added), skipped)
	for _, t := range added {
		output.Messagef(os.Stdout, "  %s (value %.1f, time %.1fh)", t.Name, t.Value, t.Hours)
	}
	return nil
}
