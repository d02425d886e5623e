// Package config reads the settings of the backend from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DatabaseSQLite  = "sqlite"
	DatabaseMongoDB = "mongodb"
)

var (
	ErrAPIURLMissing   = errors.New("environment variable API_URL must be set")
	ErrMongoURIMissing = errors.New("environment variable MONGODB_URI must be set when DATABASE is mongodb")
)

// Config holds all settings.
type Config struct {
	GinMode   string // gin mode, release unless set
	HumanLogs bool   // console instead of JSON log output

	APIURL *url.URL // Public URL of the API, used for links and the API docs
	Port   string

	Database      string // sqlite or mongodb
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	Assemblies    []string // Roster of assemblies, empty for the built-in roster
	AdminAccounts []string // Glob patterns of admin account names
	JWTSecret     string   // Signing secret, empty disables authentication

	OverlapRatio float64 // Share of Sunday Bible Study attendees assumed to attend the main service

	OpenAIKey        string
	OpenAIModel      string
	OpenAIBaseURL    string
	GeminiKey        string
	GeminiModel      string
	NarrativeTimeout time.Duration

	CORSAllowOrigins []string
	EnablePprof      bool
}

// Load reads the dotenv files, then parses the environment. Without files
// it reads .env if it exists. Variables already set are not overwritten.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return Parse(os.LookupEnv)
		}
		files = []string{".env"}
	}

	if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("could not load environment files: %w", err)
	}

	log.Debug().Strs("files", files).Msg("Loaded environment files")
	return Parse(os.LookupEnv)
}

// Parse builds the Config from the variables returned by lookup.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	c := Config{
		GinMode:       get("GIN_MODE", "release"),
		Port:          get("PORT", "8080"),
		Database:      strings.ToLower(get("DATABASE", DatabaseSQLite)),
		SQLitePath:    get("SQLITE_PATH", "data/ledger.db"),
		MongoURI:      get("MONGODB_URI", ""),
		MongoDatabase: get("MONGODB_DATABASE", "district_ledger"),
		Assemblies:    list(get("ASSEMBLIES", ""), ","),
		AdminAccounts: list(get("ADMIN_ACCOUNTS", ""), ","),
		JWTSecret:     get("JWT_SECRET", ""),
		OpenAIKey:     get("OPENAI_API_KEY", ""),
		OpenAIModel:   get("OPENAI_MODEL", ""),
		OpenAIBaseURL: get("OPENAI_BASE_URL", ""),
		GeminiKey:     get("GEMINI_API_KEY", ""),
		GeminiModel:   get("GEMINI_MODEL", ""),

		CORSAllowOrigins: strings.Fields(get("CORS_ALLOW_ORIGINS", "")),
	}

	switch c.GinMode {
	case "release", "debug", "test":
	default:
		return Config{}, invalid("GIN_MODE", c.GinMode, errors.New("must be one of release, debug or test"))
	}

	// Human readable logs are the default for development
	logFormat, ok := lookup("LOG_FORMAT")
	c.HumanLogs = (!ok && c.GinMode == "debug") || (ok && logFormat == "human")

	apiURL := get("API_URL", "")
	if apiURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, invalid("API_URL", apiURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, invalid("API_URL", apiURL, errors.New("must be an absolute http or https URL"))
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	c.APIURL = u

	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return Config{}, invalid("PORT", c.Port, err)
	}

	switch c.Database {
	case DatabaseSQLite:
	case DatabaseMongoDB:
		if c.MongoURI == "" {
			return Config{}, ErrMongoURIMissing
		}
	default:
		return Config{}, invalid("DATABASE", c.Database, errors.New("must be sqlite or mongodb"))
	}

	ratio := get("ATTENDANCE_OVERLAP_RATIO", "0.75")
	c.OverlapRatio, err = strconv.ParseFloat(ratio, 64)
	if err != nil || math.IsNaN(c.OverlapRatio) || c.OverlapRatio < 0 || c.OverlapRatio > 1 {
		return Config{}, invalid("ATTENDANCE_OVERLAP_RATIO", ratio, errors.New("must be a number between 0 and 1"))
	}

	timeout := get("NARRATIVE_TIMEOUT", "30s")
	c.NarrativeTimeout, err = time.ParseDuration(timeout)
	if err != nil || c.NarrativeTimeout <= 0 {
		return Config{}, invalid("NARRATIVE_TIMEOUT", timeout, errors.New("must be a positive duration like 30s"))
	}

	pprof := get("ENABLE_PPROF", "false")
	c.EnablePprof, err = strconv.ParseBool(pprof)
	if err != nil {
		return Config{}, invalid("ENABLE_PPROF", pprof, err)
	}

	return c, nil
}

func invalid(key, value string, err error) error {
	return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
}

// list splits s at sep and drops empty elements.
func list(s, sep string) []string {
	var result []string
	for _, e := range strings.Split(s, sep) {
		if e = strings.TrimSpace(e); e != "" {
			result = append(result, e)
		}
	}
	return result
}
