package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del front-end (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	API       APIConfig
	Storage   StorageConfig
	DB        DBConfig
	Session   SessionConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env          string // development, staging, production
	Name         string
	LogLevel     string
	TemplatesDir string
	StaticDir    string
	SwaggerFile  string
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

// APIConfig apunta a la API REST de inventario (fuente de verdad de todo el negocio).
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// ConnectURL es la URL fija de conexión OAuth de Mercado Libre; se usa si el backend
	// no devuelve un Location al pedir la URL de autorización.
	ConnectURL string
}

// StorageConfig selecciona el almacenamiento durable de sesiones.
type StorageConfig struct {
	Driver   string // memory | file | sqlite | postgres
	FilePath string
	SQLite   string // DSN de SQLite, ej. file:inventario-web.db
}

// DBConfig configuración de PostgreSQL (solo si Storage.Driver = postgres).
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

// SessionConfig cookie de sesión del navegador y vida de los borradores de órdenes.
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	DraftTTL     time.Duration
}

// TelemetryConfig exportador OTLP; vacío = trazas desactivadas.
type TelemetryConfig struct {
	OTLPEndpoint string
	OTLPInsecure bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:          getString(v, "APP_ENV", "development"),
			Name:         getString(v, "APP_NAME", "inventario-web"),
			LogLevel:     getString(v, "LOG_LEVEL", "info"),
			TemplatesDir: getString(v, "TEMPLATES_DIR", "./web/templates"),
			StaticDir:    getString(v, "STATIC_DIR", "./web/static"),
			SwaggerFile:  getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5173),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api/v1"), "/"),
			Timeout:    time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
			ConnectURL: getString(v, "API_CONNECT_URL", "http://localhost:8080/api/v1/integrations/mercadolibre/connect"),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString(v, "STORAGE_DRIVER", "sqlite")),
			FilePath: getString(v, "STORAGE_FILE_PATH", "./data/sessions.json"),
			SQLite:   getString(v, "SQLITE_DSN", "file:inventario-web.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_web"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "sid"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
			DraftTTL:     time.Duration(getInt(v, "DRAFT_TTL_MINUTES", 30)) * time.Minute,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPInsecure: getBool(v, "OTEL_EXPORTER_OTLP_INSECURE", false),
		},
	}

	switch cfg.Storage.Driver {
	case "memory", "file", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("config: STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
	}
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL requerido")
	}
	return cfg, nil
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
			n, err := strconv.Atoi(v.GetString(key))
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
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
