package cfg

type Cfg struct {
	// Command is one of: init, auth, sync
	Command string

	// Application configuration
	ConfigFile      string
	Timeout         int
	SummaryLanguage string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
