package config

type (
	Source struct {
		Dir        string   `mapstructure:"dir"`
		Recursive  bool     `mapstructure:"recursive"`
		Exclude    []string `mapstructure:"exclude"`
		Attributes []string `mapstructure:"attributes"`
	}

	Resource struct {
		File string `mapstructure:"file"`
	}

	Output struct {
		Dir string `mapstructure:"dir"`
	}

	Naming struct {
		MaxLength    int  `mapstructure:"max_length"`
		RandomLength int  `mapstructure:"random_length"`
		Disambiguate bool `mapstructure:"disambiguate"`
	}

	Hooks struct {
		Pre  []string `mapstructure:"pre"`
		Post []string `mapstructure:"post"`
	}
)
