package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App          AppConfig       `mapstructure:"app"`
	Server       ServerConfig    `mapstructure:"server"`
	SPARQL       SPARQLConfig    `mapstructure:"sparql"`
	Matcher      MatcherConfig   `mapstructure:"matcher"`
	Search       SearchConfig    `mapstructure:"search"`
	Cache        CacheConfig     `mapstructure:"cache"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
	DedupEnabled bool            `mapstructure:"dedup_enabled"`
	DedupWindow  time.Duration   `mapstructure:"dedup_window"`
	LogLevel     string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SPARQLConfig SPARQL 端點配置
// AuthType 支援 NONE/BASIC/DIGEST，Token 獨立於 AuthType（設定即以 Bearer 送出）
type SPARQLConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Method   string        `mapstructure:"method"`
	Timeout  time.Duration `mapstructure:"timeout"`
	AuthType string        `mapstructure:"auth_type"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Token    string        `mapstructure:"token"`
}

// MatcherConfig 食材比對配置（食譜搜尋使用）
type MatcherConfig struct {
	Cutoff         float64 `mapstructure:"cutoff"`
	HighSimilarity float64 `mapstructure:"high_similarity"`
	MaxCandidates  int     `mapstructure:"max_candidates"`
	SuggestLimit   int     `mapstructure:"suggest_limit"`
}

// SearchConfig 食譜搜尋配置
type SearchConfig struct {
	ResultLimit int `mapstructure:"result_limit"`
}

// CacheConfig 查詢結果快取配置（Redis）
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時沿用環境變數）
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量（沿用原系統的變數名稱）
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("sparql.endpoint", "SPARQL_ENDPOINT")
	viper.BindEnv("sparql.method", "SPARQL_METHOD")
	viper.BindEnv("sparql.timeout", "SPARQL_TIMEOUT")
	viper.BindEnv("sparql.auth_type", "SPARQL_AUTH_TYPE")
	viper.BindEnv("sparql.user", "SPARQL_USER")
	viper.BindEnv("sparql.password", "SPARQL_PASSWORD")
	viper.BindEnv("sparql.token", "SPARQL_TOKEN")
	viper.BindEnv("matcher.cutoff", "MATCH_CUTOFF")
	viper.BindEnv("matcher.high_similarity", "MATCH_HIGH_SIMILARITY")
	viper.BindEnv("matcher.max_candidates", "MATCH_MAX_CANDIDATES")
	viper.BindEnv("matcher.suggest_limit", "SUGGEST_LIMIT")
	viper.BindEnv("search.result_limit", "SEARCH_RESULT_LIMIT")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.addr", "REDIS_ADDR")
	viper.BindEnv("cache.password", "REDIS_PASSWORD")
	viper.BindEnv("cache.db", "REDIS_DB")
	viper.BindEnv("cache.ttl", "CACHE_TTL")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_enabled", "DEDUP_ENABLED")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"sparql_endpoint:", viper.GetString("sparql.endpoint"),
		"sparql_method:", viper.GetString("sparql.method"),
		"sparql_token:", maskSecret(viper.GetString("sparql.token")))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 方法與認證類型正規化（未知值退回預設，與原系統行為一致）
	config.SPARQL.Method = normalizeMethod(config.SPARQL.Method)
	config.SPARQL.AuthType = strings.ToUpper(strings.TrimSpace(config.SPARQL.AuthType))

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskSecret 遮罩機密值，只顯示前後各 4 個字符
func maskSecret(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// normalizeMethod 未知的查詢方法一律退回 GET
func normalizeMethod(method string) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m != "GET" && m != "POST" {
		return "GET"
	}
	return m
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "foodkg-recommender")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// SPARQL 設定
	viper.SetDefault("sparql.endpoint", "http://localhost:3030/recipes/sparql")
	viper.SetDefault("sparql.method", "GET")
	viper.SetDefault("sparql.timeout", "30s")
	viper.SetDefault("sparql.auth_type", "NONE")

	// 比對設定
	viper.SetDefault("matcher.cutoff", 0.6)
	viper.SetDefault("matcher.high_similarity", 0.8)
	viper.SetDefault("matcher.max_candidates", 2)
	viper.SetDefault("matcher.suggest_limit", 10)

	// 搜尋設定
	viper.SetDefault("search.result_limit", 50)

	// 日誌設定
	viper.SetDefault("log_level", "info")

	// 快取設定
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.ttl", "1h")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 重複請求抑制
	viper.SetDefault("dedup_enabled", true)
	viper.SetDefault("dedup_window", "5s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證 SPARQL 設定
	if config.SPARQL.Endpoint == "" {
		return fmt.Errorf("sparql endpoint is required")
	}
	switch config.SPARQL.AuthType {
	case "", "NONE", "BASIC", "DIGEST":
	default:
		return fmt.Errorf("unknown sparql auth type: %s", config.SPARQL.AuthType)
	}
	if config.SPARQL.AuthType == "BASIC" && (config.SPARQL.User == "" || config.SPARQL.Password == "") {
		return fmt.Errorf("sparql basic auth requires user and password")
	}
	if config.SPARQL.Timeout <= 0 {
		return fmt.Errorf("invalid sparql timeout")
	}

	// 驗證比對設定
	if config.Matcher.Cutoff < 0 || config.Matcher.Cutoff > 1 {
		return fmt.Errorf("matcher cutoff must be between 0 and 1")
	}
	if config.Matcher.HighSimilarity < 0 || config.Matcher.HighSimilarity > 1 {
		return fmt.Errorf("matcher high similarity must be between 0 and 1")
	}
	if config.Matcher.MaxCandidates <= 0 {
		return fmt.Errorf("invalid matcher max candidates")
	}
	if config.Matcher.SuggestLimit <= 0 {
		return fmt.Errorf("invalid matcher suggest limit")
	}

	// 驗證搜尋設定
	if config.Search.ResultLimit <= 0 {
		return fmt.Errorf("invalid search result limit")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Addr == "" {
			return fmt.Errorf("cache addr is required when cache is enabled")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	return nil
}
