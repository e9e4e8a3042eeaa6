package configs

// GPT configures the language-model API used by the moderation filter and
// the ad text generator.
type GPT struct {
	// URL is the completion endpoint.
	URL string `env:"URL" envDefault:"https://llm.api.cloud.yandex.net/foundationModels/v1/completion"`
	// APIKey authenticates requests. Leave empty to disable the
	// collaborators; calls then fail with a dependency error.
	APIKey string `env:"API_KEY" envDefault:""`
	// FolderID scopes the model URI.
	FolderID string `env:"FOLDER_ID" envDefault:""`
	// ModerationEnabled is the startup default for the content filter; it
	// can be toggled at runtime through the moderation endpoint.
	ModerationEnabled bool `env:"MODERATION_ENABLED" envDefault:"false"`
}
