package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// memory | postgres
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns int32 `yaml:"max_conns"`
			MinConns int32 `yaml:"min_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr string `yaml:"addr"`
			DB   int    `yaml:"db"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Crypto struct {
		// InstallationSecret deriva la key AES del codec de tokens.
		// Sin secret el servicio no arranca: los tokens nunca se
		// persisten en claro.
		InstallationSecret string `yaml:"installation_secret"`
	} `yaml:"crypto"`

	Social struct {
		// ManageURL es la página de gestión de cuentas a la que vuelve el
		// usuario al terminar un handshake.
		ManageURL string `yaml:"manage_url"`
		// CallbackBaseURL es la base pública del servicio para armar las
		// redirect URLs registradas en cada provider.
		CallbackBaseURL string `yaml:"callback_base_url"`
		// SessionTTL limita la vida del state de un handshake abandonado.
		SessionTTL string `yaml:"session_ttl"`

		// ConnectRate limita los inicios de handshake por IP: cada connect
		// siembra estado de sesión en cache y conviene acotarlo.
		ConnectRate struct {
			Max    int    `yaml:"max"`
			Window string `yaml:"window"`
		} `yaml:"connect_rate"`

		Providers map[string]Provider `yaml:"providers"`
	} `yaml:"social"`

	Admin struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"admin"`
}

// Provider es la configuración OAuth2 de un implementer.
type Provider struct {
	Enabled      bool     `yaml:"enabled"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// RedirectURL vacío con base pública configurada ⇒ autogenerar
	for id, p := range c.Social.Providers {
		if p.Enabled && strings.TrimSpace(p.RedirectURL) == "" && strings.TrimSpace(c.Social.CallbackBaseURL) != "" {
			p.RedirectURL = strings.TrimRight(c.Social.CallbackBaseURL, "/") + "/v1/social/" + id + "/callback"
			c.Social.Providers[id] = p
		}
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Social.SessionTTL == "" {
		c.Social.SessionTTL = "10m"
	}
	if c.Social.ConnectRate.Max == 0 {
		c.Social.ConnectRate.Max = 30
	}
	if c.Social.ConnectRate.Window == "" {
		c.Social.ConnectRate.Window = "1m"
	}
	if c.Social.Providers == nil {
		c.Social.Providers = map[string]Provider{}
	}
}

// applyEnvOverrides pisa valores del YAML con variables de entorno.
// Los secretos normalmente llegan por acá, no por el archivo.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("SOCIALPOST_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("SOCIALPOST_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("SOCIALPOST_STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("SOCIALPOST_STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("SOCIALPOST_CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("SOCIALPOST_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("SOCIALPOST_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("SOCIALPOST_INSTALLATION_SECRET"); ok {
		c.Crypto.InstallationSecret = v
	}
	if v, ok := getEnvStr("SOCIALPOST_MANAGE_URL"); ok {
		c.Social.ManageURL = v
	}
	if v, ok := getEnvStr("SOCIALPOST_CALLBACK_BASE_URL"); ok {
		c.Social.CallbackBaseURL = v
	}
	if v, ok := getEnvStr("SOCIALPOST_ADMIN_API_KEY"); ok {
		c.Admin.APIKey = v
	}

	// Credenciales por provider: SOCIALPOST_<IMPLEMENTER>_CLIENT_ID / _CLIENT_SECRET
	for id, p := range c.Social.Providers {
		prefix := "SOCIALPOST_" + strings.ToUpper(id) + "_"
		if v, ok := getEnvStr(prefix + "CLIENT_ID"); ok {
			p.ClientID = v
		}
		if v, ok := getEnvStr(prefix + "CLIENT_SECRET"); ok {
			p.ClientSecret = v
		}
		c.Social.Providers[id] = p
	}
}

// Validate verifica invariantes que no se pueden arreglar con defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Crypto.InstallationSecret) == "" {
		return fmt.Errorf("config: crypto.installation_secret is required")
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn is required with the postgres driver")
	}
	if _, err := time.ParseDuration(c.Social.SessionTTL); err != nil {
		return fmt.Errorf("config: invalid social.session_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.Social.ConnectRate.Window); err != nil {
		return fmt.Errorf("config: invalid social.connect_rate.window: %w", err)
	}
	if c.Cache.Memory.DefaultTTL != "" {
		if _, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err != nil {
			return fmt.Errorf("config: invalid cache.memory.default_ttl: %w", err)
		}
	}
	for id, p := range c.Social.Providers {
		if !p.Enabled {
			continue
		}
		if strings.TrimSpace(p.ClientID) == "" || strings.TrimSpace(p.ClientSecret) == "" {
			return fmt.Errorf("config: provider %q enabled without client credentials", id)
		}
	}
	return nil
}

// SessionTTL retorna el TTL de sesión ya parseado.
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Social.SessionTTL)
	return d
}

// ConnectRateWindow retorna la ventana del rate limit ya parseada.
func (c *Config) ConnectRateWindow() time.Duration {
	d, _ := time.ParseDuration(c.Social.ConnectRate.Window)
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
