package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultOutputPath is where the rendered image goes unless told otherwise
const DefaultOutputPath = "out_image.png"

// S3Config holds the settings for uploading renders to an S3-compatible store
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Enabled reports whether enough is configured to attempt an upload
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Settings is everything the binary reads from the environment
type Settings struct {
	Render     RenderConfig
	S3         S3Config
	OutputPath string
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// FromEnv loads envFile if it exists (a missing file is not an error) and
// overlays RT_* variables on the defaults. Variables already present in the
// process environment win over the file.
func FromEnv(envFile string) (Settings, error) {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	settings := Settings{
		Render:     Default(),
		OutputPath: getEnv("RT_OUTPUT", DefaultOutputPath),
		S3: S3Config{
			Bucket:    os.Getenv("RT_S3_BUCKET"),
			Region:    getEnv("RT_S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("RT_S3_ENDPOINT"),
			AccessKey: os.Getenv("RT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("RT_S3_SECRET_KEY"),
		},
	}

	r := &settings.Render
	if err := parseUint16("RT_WIDTH", &r.Width); err != nil {
		return Settings{}, err
	}
	if err := parseUint16("RT_HEIGHT", &r.Height); err != nil {
		return Settings{}, err
	}
	if err := parseUint16("RT_SAMPLES", &r.SamplesPerPixel); err != nil {
		return Settings{}, err
	}
	if value := getEnv("RT_BOUNCES", ""); value != "" {
		n, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return Settings{}, fmt.Errorf("RT_BOUNCES: %w", err)
		}
		r.MaxBounces = int16(n)
	}
	if value := getEnv("RT_SEED", ""); value != "" {
		if value == "random" {
			r.HasSeed = false
		} else {
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("RT_SEED: %w", err)
			}
			r.Seed, r.HasSeed = n, true
		}
	}
	if value := getEnv("RT_WORKERS", ""); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return Settings{}, fmt.Errorf("RT_WORKERS: %w", err)
		}
		r.Workers = n
	}

	return settings, nil
}

func parseUint16(key string, dst *uint16) error {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = uint16(n)
	return nil
}
