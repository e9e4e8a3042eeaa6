package configs

// S3 configures the object storage bucket for campaign images. Endpoint may
// point to any S3-compatible service.
type S3 struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"http://localhost:9000"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET" envDefault:"campaign-images"`
	AccessKey string `env:"ACCESS_KEY" envDefault:""`
	SecretKey string `env:"SECRET_KEY" envDefault:""`
}
