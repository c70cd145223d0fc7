package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del generador: config.toml + .env + variables de entorno.
type Config struct {
	App    AppConfig
	Log    LogConfig
	DB     DBConfig
	Biller BillerConfig
	Rules  RulesConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// LogConfig niveles de consola y archivo.
type LogConfig struct {
	Level     string
	FileLevel string
	Dir       string
}

// DBConfig configuración de la base del facturador.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	Schema      string // search_path de la sesión
	SSLMode     string
	PoolSize    int
	MaxOverflow int
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

// MaxConns es el tope del pool: conexiones fijas más desborde.
func (c DBConfig) MaxConns() int32 {
	return int32(c.PoolSize + c.MaxOverflow)
}

// BillerConfig rutas de trabajo y destino de las sentencias.
type BillerConfig struct {
	InputDir     string
	OutputDir    string
	OutputFile   string
	SupplyFile   string // opcional; relativo a InputDir
	Company      int64
	Table        string
	CatalogTable string
}

// OutputPath ruta completa del archivo SQL.
func (c BillerConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

// SupplyPath ruta del archivo de entrada único, o vacío si no se configuró.
func (c BillerConfig) SupplyPath() string {
	if c.SupplyFile == "" {
		return ""
	}
	if filepath.IsAbs(c.SupplyFile) {
		return c.SupplyFile
	}
	return filepath.Join(c.InputDir, c.SupplyFile)
}

// RulesConfig tablas de traducción. Vacías = valores de la plantilla.
type RulesConfig struct {
	Headers       map[string]string
	DocumentTypes map[string]int
	Stores        map[string][]string
}

// Load lee .env (si existe), luego config.toml y finalmente las variables de entorno, que tienen prioridad.
// path vacío busca config.toml en . y ./config; la ausencia del archivo no es error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("leer configuración: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "resoluciones"),
		},
		Log: LogConfig{
			Level:     getString(v, "LOG_LEVEL", "info"),
			FileLevel: getString(v, "LOG_FILE_LEVEL", "warn"),
			Dir:       getString(v, "LOG_DIR", "logs"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "BILLER_HOST", "localhost"),
			Port:        getInt(v, "BILLER_PORT", 5432),
			User:        getString(v, "BILLER_USER", "postgres"),
			Password:    getString(v, "BILLER_PASS", ""),
			DBName:      getString(v, "BILLER_NAME", "facturador"),
			Schema:      getString(v, "BILLER_SCHE", ""),
			SSLMode:     getString(v, "BILLER_SSLMODE", "disable"),
			PoolSize:    getInt(v, "ENGINE_POOL_SIZE", 5),
			MaxOverflow: getInt(v, "ENGINE_MAX_OVERFLOW", 10),
		},
		Biller: BillerConfig{
			InputDir:     getString(v, "INPUT_DIR", "input"),
			OutputDir:    getString(v, "OUTPUT_DIR", "output"),
			OutputFile:   getString(v, "OUTPUT_FILE", "resolution.sql"),
			SupplyFile:   getString(v, "SUPPLY_FILE", ""),
			Company:      int64(getInt(v, "COMPANY", 1)),
			Table:        getString(v, "TABLE", "factura.resoluciones"),
			CatalogTable: getString(v, "CATALOG_TABLE", "factura.tipos_fact"),
		},
	}

	if err := v.UnmarshalKey("headers", &cfg.Rules.Headers); err != nil {
		return nil, fmt.Errorf("sección [headers]: %w", err)
	}
	if err := v.UnmarshalKey("document_types", &cfg.Rules.DocumentTypes); err != nil {
		return nil, fmt.Errorf("sección [document_types]: %w", err)
	}
	if err := v.UnmarshalKey("stores", &cfg.Rules.Stores); err != nil {
		return nil, fmt.Errorf("sección [stores]: %w", err)
	}

	if cfg.DB.PoolSize <= 0 {
		return nil, fmt.Errorf("engine_pool_size debe ser mayor que cero: %d", cfg.DB.PoolSize)
	}
	return cfg, nil
}

// EnsureDirs crea los directorios de entrada, salida y logs si no existen.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Biller.InputDir, c.Biller.OutputDir, c.Log.Dir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio %s: %w", dir, err)
		}
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
		case int, int64:
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
