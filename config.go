package authorsite

// Options holds process configuration. Values come from environment
// variables (a .env file is loaded first by the cmd binary, mirroring
// the original deployment).
type Options struct {
	Addr    string `env:"ADDR" envDefault:":3000"`
	RootDir string `env:"ROOT_DIR" envDefault:"."`

	// AdminPassword gates every mutating operation. Required.
	AdminPassword string `env:"ADM_PASS"`
	// SessionSecret signs the admin session cookie. Required.
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	AnalyticsEnabled bool   `env:"ANALYTICS_ENABLED" envDefault:"true"`
	AnalyticsDBPath  string `env:"ANALYTICS_DB_PATH"`
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = ":3000"
	}
	if o.RootDir == "" {
		o.RootDir = "."
	}
	if o.AnalyticsDBPath == "" {
		o.AnalyticsDBPath = "data/analytics.db"
	}
}
