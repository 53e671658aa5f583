package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Portal settings
	PortalBaseURL string
	UserAgent     string
	BrowserPath   string
	HeadlessMode  bool

	// Bounded waits on portal elements
	QueryIDWait       time.Duration
	ResultTableWait   time.Duration
	PageTableWait     time.Duration
	NextPageWait      time.Duration
	SelectorProbeWait time.Duration

	// Settle delays between portal interactions. Empirical anti-race
	// pauses; the values carry no semantic meaning.
	DetailSettleDelay time.Duration
	TabCloseDelay     time.Duration
	PageAdvanceDelay  time.Duration

	// Export settings
	OutputDir  string
	OutputFile string

	// Logging settings
	LogLevel  string
	LogFormat string
	LogFile   string

	// Archive settings
	DatabasePath   string
	ArchiveEnabled bool

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Server settings
	Host          string
	Port          string
	ScrapeTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		PortalBaseURL: getEnv("PORTAL_BASE_URL", "https://judgment.judicial.gov.tw/FJUD"),
		UserAgent:     getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		BrowserPath:   getEnv("ROD_BROWSER_PATH", ""),
		OutputDir:     getEnv("OUTPUT_DIR", defaultOutputDir()),
		OutputFile:    getEnv("OUTPUT_FILE", "judicial_result.xlsx"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogFile:       getEnv("LOG_FILE", "judgment_fetcher.log"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/judgments.db"),
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8080"),
	}

	cfg.HeadlessMode = getEnv("HEADLESS_MODE", "true") == "true"
	cfg.ArchiveEnabled = getEnv("ARCHIVE_ENABLED", "false") == "true"

	var err error
	if cfg.QueryIDWait, err = getEnvSeconds("QUERY_ID_WAIT", 15); err != nil {
		return nil, err
	}
	if cfg.ResultTableWait, err = getEnvSeconds("RESULT_TABLE_WAIT", 20); err != nil {
		return nil, err
	}
	if cfg.PageTableWait, err = getEnvSeconds("PAGE_TABLE_WAIT", 10); err != nil {
		return nil, err
	}
	if cfg.NextPageWait, err = getEnvSeconds("NEXT_PAGE_WAIT", 5); err != nil {
		return nil, err
	}
	if cfg.SelectorProbeWait, err = getEnvSeconds("SELECTOR_PROBE_WAIT", 5); err != nil {
		return nil, err
	}
	if cfg.DetailSettleDelay, err = getEnvSeconds("DETAIL_SETTLE_DELAY", 3); err != nil {
		return nil, err
	}
	if cfg.TabCloseDelay, err = getEnvSeconds("TAB_CLOSE_DELAY", 1); err != nil {
		return nil, err
	}
	if cfg.PageAdvanceDelay, err = getEnvSeconds("PAGE_ADVANCE_DELAY", 2); err != nil {
		return nil, err
	}
	if cfg.ScrapeTimeout, err = getEnvSeconds("SCRAPE_TIMEOUT", 600); err != nil {
		return nil, err
	}

	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	return cfg, nil
}

// defaultOutputDir is the user's desktop, falling back to the working
// directory when the home directory cannot be resolved.
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvSeconds parses an environment variable as a duration in seconds
func getEnvSeconds(key string, defaultSeconds int) (time.Duration, error) {
	raw := getEnv(key, strconv.Itoa(defaultSeconds))
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(seconds) * time.Second, nil
}
