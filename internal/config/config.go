package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type Config struct {
	Discord    DiscordConfig
	Storage    StorageConfig
	VK         VKConfig
	Extraction ExtractionConfig
	Languages  LanguageConfig
	LLM        LLMConfig
	Cache      CacheConfig
	Logging    LoggingConfig

	HTTPAddr       string
	HTTPAdminToken string
	ParseInterval  time.Duration
}

type DiscordConfig struct {
	Token    string
	GuildID  string
	AdminIDs []string
}

type StorageConfig struct {
	Driver      string // postgres | sqlite
	DatabaseURL string
	SQLitePath  string
	Migrations  bool
}

type VKConfig struct {
	Token      string
	APIVersion string
	PostCount  int
	Groups     []entities.Group
}

type ExtractionConfig struct {
	MinEventDate     time.Time
	Institution      string
	DefaultLocation  string
	LocationKeywords []string
}

type LanguageConfig struct {
	Default domain.Language
	Enabled []domain.Language
}

type LLMConfig struct {
	Provider           string // yandex | openai | anthropic | none
	APIKey             string
	FolderID           string
	Model              string
	BaseURL            string
	AITimeout          time.Duration
	TranslationTimeout time.Duration
}

type CacheConfig struct {
	Driver    string // memory | redis
	RedisAddr string
	TTL       time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// groupsFile is the optional YAML document named by GROUPS_FILE.
type groupsFile struct {
	Groups           []entities.Group `yaml:"groups"`
	LocationKeywords []string         `yaml:"location_keywords"`
}

// Load reads the optional .env file, the environment and GROUPS_FILE, then
// validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	var errs []error
	intEnv := func(key string, fallback int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := cast.ToIntE(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s must be an integer: %w", key, err))
			return fallback
		}
		return v
	}
	seconds := func(key string, fallback int) time.Duration {
		return time.Duration(intEnv(key, fallback)) * time.Second
	}

	migrations, err := cast.ToBoolE(getEnv("MIGRATIONS", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("config: MIGRATIONS must be a boolean: %w", err))
	}

	cfg := &Config{
		Discord: DiscordConfig{
			Token:    os.Getenv("DISCORD_TOKEN"),
			GuildID:  os.Getenv("GUILD_ID"),
			AdminIDs: splitList(os.Getenv("ADMIN_IDS")),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "data/events.db"),
			Migrations:  migrations,
		},
		VK: VKConfig{
			Token:      os.Getenv("VK_TOKEN"),
			APIVersion: getEnv("VK_API_VERSION", "5.131"),
			PostCount:  intEnv("VK_POST_COUNT", 20),
		},
		Extraction: ExtractionConfig{
			Institution:     getEnv("INSTITUTION_NAME", "ИТМО"),
			DefaultLocation: getEnv("DEFAULT_LOCATION", "Университет ИТМО, Кронверкский пр., 49"),
		},
		LLM: LLMConfig{
			Provider:           strings.ToLower(getEnv("LLM_PROVIDER", "none")),
			APIKey:             os.Getenv("LLM_API_KEY"),
			FolderID:           os.Getenv("YANDEX_FOLDER_ID"),
			Model:              os.Getenv("LLM_MODEL"),
			BaseURL:            os.Getenv("LLM_BASE_URL"),
			AITimeout:          seconds("AI_TIMEOUT_SECONDS", 30),
			TranslationTimeout: seconds("TRANSLATION_TIMEOUT_SECONDS", 20),
		},
		Cache: CacheConfig{
			Driver:    strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
			RedisAddr: os.Getenv("REDIS_ADDR"),
			TTL:       time.Duration(intEnv("CACHE_TTL_HOURS", 24*7)) * time.Hour,
		},
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		HTTPAdminToken: os.Getenv("HTTP_ADMIN_TOKEN"),
		ParseInterval:  time.Duration(intEnv("PARSE_INTERVAL_MINUTES", 60)) * time.Minute,
	}

	if cfg.Extraction.MinEventDate, err = time.Parse(entities.DateLayout, getEnv("MIN_EVENT_DATE", "2025-11-01")); err != nil {
		errs = append(errs, fmt.Errorf("config: MIN_EVENT_DATE must be YYYY-MM-DD: %w", err))
	}

	if cfg.Languages.Default, err = domain.ParseLanguage(getEnv("DEFAULT_LANGUAGE", "ru")); err != nil {
		errs = append(errs, fmt.Errorf("config: DEFAULT_LANGUAGE: %w", err))
	}
	for _, raw := range splitList(getEnv("LANGUAGES", "ru,en")) {
		lang, err := domain.ParseLanguage(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: LANGUAGES: %w", err))
			continue
		}
		cfg.Languages.Enabled = appendUnique(cfg.Languages.Enabled, lang)
	}

	if cfg.Logging.Level, err = parseLogLevel(strings.ToLower(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("config: LOG_LEVEL %w", err))
	}
	cfg.Logging.Format = strings.ToLower(getEnv("LOG_FORMAT", "text"))

	if path := os.Getenv("GROUPS_FILE"); path != "" {
		gf, err := readGroupsFile(path)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.VK.Groups = gf.Groups
			cfg.Extraction.LocationKeywords = gf.LocationKeywords
		}
	}
	if raw := os.Getenv("VK_GROUPS"); raw != "" {
		groups, err := parseGroups(raw)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.VK.Groups = append(cfg.VK.Groups, groups...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies the cross-field rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" && strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN or HTTP_ADDR is required")
	}
	if c.Discord.GuildID != "" && !isSnowflake(c.Discord.GuildID) {
		return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
	}
	for _, id := range c.Discord.AdminIDs {
		if !isSnowflake(id) {
			return fmt.Errorf("config: ADMIN_IDS entry %q must be a Discord user ID", id)
		}
	}

	switch c.Storage.Driver {
	case "sqlite":
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("config: SQLITE_PATH cannot be empty")
		}
	case "postgres":
		parsed, err := url.Parse(c.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.Storage.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.Storage.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORAGE_DRIVER must be postgres or sqlite, got %q", c.Storage.Driver)
	}

	if strings.TrimSpace(c.VK.Token) == "" {
		return fmt.Errorf("config: VK_TOKEN is required")
	}
	if len(c.VK.Groups) == 0 {
		return fmt.Errorf("config: at least one VK group is required (GROUPS_FILE or VK_GROUPS)")
	}
	for _, g := range c.VK.Groups {
		if g.Name == "" || g.ID <= 0 {
			return fmt.Errorf("config: VK group %+v needs a name and a positive id", g)
		}
	}
	if c.VK.PostCount <= 0 || c.VK.PostCount > 100 {
		return fmt.Errorf("config: VK_POST_COUNT must be between 1 and 100")
	}

	if len(c.Languages.Enabled) == 0 {
		return fmt.Errorf("config: LANGUAGES cannot be empty")
	}
	if !containsLanguage(c.Languages.Enabled, c.Languages.Default) {
		return fmt.Errorf("config: DEFAULT_LANGUAGE %q is not listed in LANGUAGES", c.Languages.Default)
	}

	switch c.LLM.Provider {
	case "none":
	case "yandex":
		if c.LLM.APIKey == "" || c.LLM.FolderID == "" {
			return fmt.Errorf("config: LLM_PROVIDER=yandex requires LLM_API_KEY and YANDEX_FOLDER_ID")
		}
	case "openai", "anthropic":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("config: LLM_PROVIDER=%s requires LLM_API_KEY", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("config: CACHE_DRIVER=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: CACHE_DRIVER must be memory or redis, got %q", c.Cache.Driver)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("config: LOG_FORMAT must be json or text")
	}
	if c.ParseInterval < 0 {
		return fmt.Errorf("config: PARSE_INTERVAL_MINUTES cannot be negative")
	}
	return nil
}

// IsAdmin reports whether userID may trigger a manual parse.
func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.Discord.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func readGroupsFile(path string) (groupsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return groupsFile{}, fmt.Errorf("config: read GROUPS_FILE: %w", err)
	}
	var gf groupsFile
	if err := yaml.Unmarshal(raw, &gf); err != nil {
		return groupsFile{}, fmt.Errorf("config: parse GROUPS_FILE %s: %w", path, err)
	}
	return gf, nil
}

// parseGroups reads "name:id,name:id".
func parseGroups(raw string) ([]entities.Group, error) {
	var groups []entities.Group
	for _, item := range splitList(raw) {
		name, id, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("config: VK_GROUPS entry %q must be name:id", item)
		}
		n, err := cast.ToInt64E(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("config: VK_GROUPS entry %q: %w", item, err)
		}
		if n < 0 {
			n = -n
		}
		groups = append(groups, entities.Group{Name: strings.TrimSpace(name), ID: n})
	}
	return groups, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func appendUnique(langs []domain.Language, l domain.Language) []domain.Language {
	if containsLanguage(langs, l) {
		return langs
	}
	return append(langs, l)
}

func containsLanguage(langs []domain.Language, l domain.Language) bool {
	for _, x := range langs {
		if x == l {
			return true
		}
	}
	return false
}
