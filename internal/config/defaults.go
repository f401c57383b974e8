package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/kue/data/db/kue.db"
	}
	if cfg.Hubs.CurrentUserID == "" {
		cfg.Hubs.CurrentUserID = "user-1"
	}
	if cfg.Hubs.CofounderID == "" {
		cfg.Hubs.CofounderID = "p-11"
	}
	if cfg.Hubs.CofounderName == "" {
		cfg.Hubs.CofounderName = "Tom"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.FuzzyNameBoost == 0 {
		cfg.Search.FuzzyNameBoost = 2.0
	}
	cfg.Search.RankingConfig.ApplyDefaults()
	if cfg.Community.HomeCompany == "" {
		cfg.Community.HomeCompany = "Kue"
	}
	if cfg.Community.Circle.ID == "" {
		cfg.Community.Circle.ID = "circle-1"
	}
	if cfg.Community.Circle.Name == "" {
		cfg.Community.Circle.Name = "Founders Circle"
	}
	if cfg.Community.Circle.MemberCount == 0 {
		cfg.Community.Circle.MemberCount = 12
	}
	if cfg.Community.Circle.Description == "" {
		cfg.Community.Circle.Description = "Early-stage founders sharing connection signals"
	}
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
