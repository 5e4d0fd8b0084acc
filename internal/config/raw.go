package config

// Raw structs mirror the YAML file exactly. Pointer fields distinguish
// "absent" from zero values so defaults can be applied after parsing.

type RawLayout struct {
	Grid *string `yaml:"grid"`
}

type RawWindow struct {
	Name       *string `yaml:"name"`
	Command    *string `yaml:"command"`
	WorkingDir *string `yaml:"working_dir"`
}

type RawConfig struct {
	WSLDistribution *string     `yaml:"wsl_distribution"`
	TargetDisplay   *int        `yaml:"target_display"`
	Layout          *RawLayout  `yaml:"layout"`
	SettleDelayMS   *int        `yaml:"settle_delay_ms"`
	MoveRetries     *int        `yaml:"move_retries"`
	Windows         []RawWindow `yaml:"windows"`
}
