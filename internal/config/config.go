package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpPort      int    `yaml:"http_port"`
	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
	SecureCookies bool   `yaml:"secure_cookies"`

	// Posting limits. Intervals are whole seconds (matches what the error
	// messages tell the user to wait).
	PostIntervalSeconds   int `yaml:"post_interval_seconds"`
	ThreadIntervalSeconds int `yaml:"thread_interval_seconds"`
	MaxPostsPerDay        int `yaml:"max_posts_per_day"`

	// Field length limits, in characters (runes, not bytes).
	MaxTitleLength   int `yaml:"max_title_length"`
	MaxNameLength    int `yaml:"max_name_length"`
	MaxEmailLength   int `yaml:"max_email_length"`
	MaxContentLength int `yaml:"max_content_length"`

	SearchResultLimit int `yaml:"search_result_limit"`

	// Whether new posts are accepted into a soft-deleted thread.
	AllowPostingToDeleted bool `yaml:"allow_posting_to_deleted"`

	BannedWords []string `yaml:"banned_words"`

	AdminSessionTTLHours int `yaml:"admin_session_ttl_hours"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`

	// Seeded admin account, used only at schema bootstrap.
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Public.AdminSessionTTLHours) * time.Hour
}

func (p *Public) PostInterval() time.Duration {
	return time.Duration(p.PostIntervalSeconds) * time.Second
}

func (p *Public) ThreadInterval() time.Duration {
	return time.Duration(p.ThreadIntervalSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// validate catches the config mistakes that would otherwise surface as
// confusing policy behavior (a zero limit silently rejects every post).
func (c *Config) validate() error {
	required := map[string]bool{
		"post_interval_seconds":   c.Public.PostIntervalSeconds > 0,
		"thread_interval_seconds": c.Public.ThreadIntervalSeconds > 0,
		"max_posts_per_day":       c.Public.MaxPostsPerDay > 0,
		"max_title_length":        c.Public.MaxTitleLength > 0,
		"max_name_length":         c.Public.MaxNameLength > 0,
		"max_email_length":        c.Public.MaxEmailLength > 0,
		"max_content_length":      c.Public.MaxContentLength > 0,
		"search_result_limit":     c.Public.SearchResultLimit > 0,
		"admin_session_ttl_hours": c.Public.AdminSessionTTLHours > 0,
		"jwt_key":                 c.Private.JwtKey != "",
	}
	for field, ok := range required {
		if !ok {
			return fmt.Errorf("config: missing or invalid %s", field)
		}
	}
	return nil
}
