package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/export"
	"github.com/priplot/priplot/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Export the ranked task list to an xlsx file",
	Long: `Writes the ranked task list to an Excel workbook. Without a path the
file lands in the Downloads folder (or the home directory) with a
date-stamped name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	list, _, err := loadSession(cfg)
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if cfg.ExportDir != "" {
		path = filepath.Join(cfg.ExportDir, filepath.Base(export.DefaultPath()))
	} else {
		path = export.DefaultPath()
	}

	if err := export.Write(list, path); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "exported",
			"path":   path,
			"tasks":  list.Len(),
		})
	}
	output.Messagef(os.Stdout, "Exported %d task(s) to %s", list.Len(), path)
	return nil
}
