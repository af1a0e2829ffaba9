package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Redis     Redis     `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
	Nuvemshop Nuvemshop `mapstructure:",squash"`
	OrderSync OrderSync `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

// Redis é opcional: com Addr vazio o cache do dashboard fica desligado
type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	CacheTTL time.Duration `mapstructure:"redis_cache_ttl"`
}

type Dashboard struct {
	MaxConcurrentQueries int  `mapstructure:"dashboard_max_concurrent_queries"`
	SummaryCountsByRange bool `mapstructure:"dashboard_summary_counts_by_range"`
	DefaultPageSize      int  `mapstructure:"dashboard_default_page_size"`
}

type Nuvemshop struct {
	URL       string `mapstructure:"nuvemshop_url"`
	UserAgent string `mapstructure:"nuvemshop_user_agent"`
	PageSize  int    `mapstructure:"nuvemshop_page_size"`
}

type OrderSync struct {
	CronSchedule        string `mapstructure:"order_sync_cron"`
	LookbackDays        int    `mapstructure:"order_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"order_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"order_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"order_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/trackr?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "5m")

	viper.SetDefault("DASHBOARD_MAX_CONCURRENT_QUERIES", 5)
	viper.SetDefault("DASHBOARD_SUMMARY_COUNTS_BY_RANGE", false) // contagens de cupons/influenciadores de todo o período
	viper.SetDefault("DASHBOARD_DEFAULT_PAGE_SIZE", 20)

	viper.SetDefault("NUVEMSHOP_URL", "https://api.nuvemshop.com.br/v1")
	viper.SetDefault("NUVEMSHOP_USER_AGENT", "TrackrCommerce (suporte@trackrcommerce.com)")
	viper.SetDefault("NUVEMSHOP_PAGE_SIZE", 200)

	viper.SetDefault("ORDER_SYNC_CRON", "0 */2 * * *")      // A cada 2 horas
	viper.SetDefault("ORDER_SYNC_LOOKBACK_DAYS", 3)         // 3 dias de pedidos
	viper.SetDefault("ORDER_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre páginas
	viper.SetDefault("ORDER_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 marcas em paralelo
	viper.SetDefault("ORDER_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = buildDSN(config.Database)

	if config.Dashboard.MaxConcurrentQueries <= 0 {
		config.Dashboard.MaxConcurrentQueries = 1
	}

	return config, nil
}

// buildDSN monta a string de conexão; sem DATABASE_URL o banco fica desligado
func buildDSN(db Database) string {
	if db.URL == "" {
		return ""
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
