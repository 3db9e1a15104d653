package config

import "github.com/joho/godotenv"

// LoadEnvFiles reads .env and .env.local from the working directory into the
// process environment. Variables already set by the caller win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}
