// Package config handles priplot application configuration.
package config

const (
	// ConfigFileName is the name of the config file within the priplot directory.
	ConfigFileName = "config.yml"

	// SessionFileName is the default session file name.
	SessionFileName = "session.priplot"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// DefaultStartTime is the first scheduling slot of a day.
	DefaultStartTime = "09:00"

	// DefaultWeekStart controls which day the calendar grid begins on.
	DefaultWeekStart = "monday"
)

// DefaultScoreThresholds define the progressive color thresholds for
// priority scores in the plot and table. Higher scores render hotter.
var DefaultScoreThresholds = []ScoreThreshold{
	{Above: 0, Color: "242"},   // dim gray (low priority)
	{Above: 0.5, Color: "34"},  // green
	{Above: 1.5, Color: "226"}, // yellow
	{Above: 3.0, Color: "208"}, // orange
	{Above: 6.0, Color: "196"}, // red (do it now)
}
