package config

const (
	defaultDataDir              = "~/.local/share/quickreviewer"
	defaultLogDir               = "~/.local/share/quickreviewer/logs"
	defaultAPIBind              = "127.0.0.1:7788"
	defaultTMDBBaseURL          = "https://api.themoviedb.org/3"
	defaultTMDBLanguage         = "en-US"
	defaultOMDBBaseURL          = "https://www.omdbapi.com"
	defaultLLMBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel             = "google/gemini-3-flash-preview"
	defaultLLMReferer           = "https://github.com/quickreviewer"
	defaultLLMTitle             = "Quick Reviewer"
	defaultLLMTimeoutSeconds    = 60
	defaultWaitTimeoutSeconds   = 25
	defaultSweepIntervalMinutes = 360
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		OMDB: OMDB{
			BaseURL: defaultOMDBBaseURL,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Server: Server{
			WaitTimeoutSeconds:   defaultWaitTimeoutSeconds,
			SweepIntervalMinutes: defaultSweepIntervalMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
