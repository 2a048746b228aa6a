package config

import "github.com/spf13/viper"

// setDefaults seeds every field with a sane single-elder, two-node,
// non-lossy scenario default, so a config file only needs to override
// what it actually cares about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("section.server_count", 2)
	v.SetDefault("section.elder_count", 1)
	v.SetDefault("section.genesis", []uint64{1})
	v.SetDefault("section.auto_leave_enabled", false)

	v.SetDefault("network.seed", 1)
	v.SetDefault("network.drop_probability", 0.0)
	v.SetDefault("network.duplicate_probability", 0.1)
	v.SetDefault("network.min_delay_ms", 1)
	v.SetDefault("network.max_delay_ms", 50)
	v.SetDefault("network.max_steps", 100_000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
