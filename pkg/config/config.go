package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del monitor (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Dataset DatasetConfig
	Refresh RefreshConfig
	Filter  FilterConfig
	Cache   CacheConfig
	DB      DBConfig
	Storage StorageConfig
	Admin   AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Fuentes de dataset soportadas.
const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

// DatasetConfig origen del baseline.
// Path admite rutas locales (.csv / .xlsx) o s3://bucket/clave.
type DatasetConfig struct {
	Source   string
	Path     string
	Encoding string // utf-8 (defecto), windows-1252, iso-8859-1...
	Sheet    string // hoja xlsx; vacío = primera
}

// RefreshConfig período y rango de perturbación del refresco simulado.
type RefreshConfig struct {
	Interval time.Duration
	DeltaMin int
	DeltaMax int
	Seed     uint64 // 0 = semilla basada en el reloj
}

// FilterConfig valores que la UI usa para el selector y el slider.
type FilterConfig struct {
	DefaultMinQuantity int
	MaxMinQuantity     int
}

// CacheConfig caché compartido de métricas en Redis (opcional).
type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// DBConfig configuración de PostgreSQL (sólo si Dataset.Source = postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StorageConfig almacenamiento S3-compatible para datasets s3://.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// AdminConfig credenciales del operador y firma JWT de los endpoints de administración.
type AdminConfig struct {
	User         string
	PasswordHash string // bcrypt; vacío = login deshabilitado
	JWTSecret    string
	JWTIssuer    string
	JWTExpMin    int
}

// Load lee la configuración desde .env, config.env y variables de entorno.
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATASET_PATH, REFRESH_INTERVAL_SECONDS, etc.
func Load() (*Config, error) {
	// .env es opcional; godotenv no pisa variables ya definidas
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventory-monitor"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Dataset: DatasetConfig{
			Source:   strings.ToLower(getString(v, "DATASET_SOURCE", DatasetSourceFile)),
			Path:     getString(v, "DATASET_PATH", "./data/Inventory-Tracking.csv"),
			Encoding: getString(v, "DATASET_ENCODING", ""),
			Sheet:    getString(v, "DATASET_SHEET", ""),
		},
		Refresh: RefreshConfig{
			Interval: time.Duration(getInt(v, "REFRESH_INTERVAL_SECONDS", 25)) * time.Second,
			DeltaMin: getInt(v, "REFRESH_DELTA_MIN", -3),
			DeltaMax: getInt(v, "REFRESH_DELTA_MAX", 3),
			Seed:     uint64(getInt(v, "REFRESH_SEED", 0)),
		},
		Filter: FilterConfig{
			DefaultMinQuantity: getInt(v, "FILTER_MIN_QUANTITY_DEFAULT", 10),
			MaxMinQuantity:     getInt(v, "FILTER_MIN_QUANTITY_MAX", 100),
		},
		Cache: CacheConfig{
			Enabled:       getBool(v, "CACHE_ENABLED", false),
			RedisURL:      getString(v, "REDIS_URL", ""),
			RedisHost:     getString(v, "REDIS_HOST", "127.0.0.1"),
			RedisPort:     getString(v, "REDIS_PORT", "6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			TTL:           time.Duration(getInt(v, "CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventory_monitor"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Endpoint:  getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey: getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey: getString(v, "STORAGE_SECRET_KEY", ""),
			Region:    getString(v, "STORAGE_REGION", "us-east-1"),
			UseSSL:    getBool(v, "STORAGE_USE_SSL", true),
		},
		Admin: AdminConfig{
			User:         getString(v, "ADMIN_USER", "admin"),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getString(v, "JWT_SECRET", ""),
			JWTIssuer:    getString(v, "JWT_ISSUER", "inventory-monitor"),
			JWTExpMin:    getInt(v, "JWT_EXPIRATION_MINUTES", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica los valores que el monitor no puede corregir por sí mismo.
func (c *Config) Validate() error {
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("config: REFRESH_INTERVAL_SECONDS debe ser mayor que cero")
	}
	if c.Refresh.DeltaMin > c.Refresh.DeltaMax {
		return fmt.Errorf("config: REFRESH_DELTA_MIN (%d) mayor que REFRESH_DELTA_MAX (%d)", c.Refresh.DeltaMin, c.Refresh.DeltaMax)
	}
	switch c.Dataset.Source {
	case DatasetSourceFile, DatasetSourcePostgres:
	default:
		return fmt.Errorf("config: DATASET_SOURCE desconocido %q", c.Dataset.Source)
	}
	if c.Dataset.Source == DatasetSourceFile && c.Dataset.Path == "" {
		return fmt.Errorf("config: DATASET_PATH requerido")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
