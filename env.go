package pgxkit

import (
	"os"

	"github.com/joho/godotenv"
)

// ParamsFromEnv loads a .env file if one is present and returns parameters
// built from DATABASE_URL. An unset variable yields an empty parameter set;
// the failure then surfaces at connect time.
func ParamsFromEnv() Params {
	_ = godotenv.Load() // no .env file is fine

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return Params{}
	}
	return Params{"dsn": url}
}
