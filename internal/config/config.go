package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int           `yaml:"port" default:"8080"`
		Host           string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout    time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout    time.Duration `yaml:"idle_timeout" default:"60s"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver" default:"sqlite"` // sqlite or postgres
		Path   string `yaml:"path" default:"data/vahcare.db"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	SMTP struct {
		Host        string        `yaml:"host" default:"smtp.gmail.com"`
		Port        int           `yaml:"port" default:"587"`
		Username    string        `yaml:"username"`
		Password    string        `yaml:"password"`
		From        string        `yaml:"from"`
		FromName    string        `yaml:"from_name" default:"VAH Care Jobs"`
		AdminEmail  string        `yaml:"admin_email"`
		Secure      bool          `yaml:"secure" default:"false"` // implicit TLS, port 465
		Timeout     time.Duration `yaml:"timeout" default:"10s"`
		TemplateDir string        `yaml:"template_dir" default:"templates"`
	} `yaml:"smtp"`

	Storage struct {
		Type        string `yaml:"type" default:"local"` // local or s3
		UploadDir   string `yaml:"upload_dir" default:"uploads"`
		MaxFileSize int64  `yaml:"max_file_size" default:"10485760"` // bytes
		S3          struct {
			Bucket          string `yaml:"bucket"`
			Region          string `yaml:"region" default:"us-east-1"`
			Endpoint        string `yaml:"endpoint"`
			AccessKeyID     string `yaml:"access_key_id"`
			AccessKeySecret string `yaml:"access_key_secret"`
		} `yaml:"s3"`
	} `yaml:"storage"`

	RateLimit struct {
		Backend       string        `yaml:"backend" default:"memory"` // memory or redis
		ApplyMax      int           `yaml:"apply_max" default:"3"`
		ApplyWindow   time.Duration `yaml:"apply_window" default:"15m"`
		ContactMax    int           `yaml:"contact_max" default:"5"`
		ContactWindow time.Duration `yaml:"contact_window" default:"15m"`
	} `yaml:"rate_limit"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.AllowedOrigins = []string{"*"}

	config.Database.Driver = "sqlite"
	config.Database.Path = "data/vahcare.db"

	config.SMTP.Host = "smtp.gmail.com"
	config.SMTP.Port = 587
	config.SMTP.FromName = "VAH Care Jobs"
	config.SMTP.Timeout = 10 * time.Second
	config.SMTP.TemplateDir = "templates"

	config.Storage.Type = "local"
	config.Storage.UploadDir = "uploads"
	config.Storage.MaxFileSize = 10 * 1024 * 1024
	config.Storage.S3.Region = "us-east-1"

	config.RateLimit.Backend = "memory"
	config.RateLimit.ApplyMax = 3
	config.RateLimit.ApplyWindow = 15 * time.Minute
	config.RateLimit.ContactMax = 5
	config.RateLimit.ContactWindow = 15 * time.Minute

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			c.Server.AllowedOrigins = cleaned
		}
	}

	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		c.Database.Path = path
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		c.SMTP.Host = host
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.SMTP.Port = p
		}
	}

	if user := os.Getenv("SMTP_USER"); user != "" {
		c.SMTP.Username = user
		if c.SMTP.From == "" {
			c.SMTP.From = user
		}
	}

	if pass := os.Getenv("SMTP_PASS"); pass != "" {
		c.SMTP.Password = pass
	}

	if from := os.Getenv("SMTP_FROM"); from != "" {
		c.SMTP.From = from
	}

	if secure := os.Getenv("SMTP_SECURE"); secure != "" {
		c.SMTP.Secure = secure == "true" || secure == "1"
	}

	if timeout := os.Getenv("SMTP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.SMTP.Timeout = d
		}
	}

	if admin := os.Getenv("ADMIN_EMAIL"); admin != "" {
		c.SMTP.AdminEmail = admin
	}

	if storageType := os.Getenv("STORAGE_TYPE"); storageType != "" {
		c.Storage.Type = storageType
	}

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Storage.UploadDir = dir
	}

	if maxSize := os.Getenv("MAX_FILE_SIZE"); maxSize != "" {
		if size, err := strconv.ParseInt(maxSize, 10, 64); err == nil && size > 0 {
			c.Storage.MaxFileSize = size
		}
	}

	if bucket := os.Getenv("AWS_BUCKET_NAME"); bucket != "" {
		c.Storage.S3.Bucket = bucket
	}

	if region := os.Getenv("AWS_REGION"); region != "" {
		c.Storage.S3.Region = region
	}

	if endpoint := os.Getenv("AWS_ENDPOINT"); endpoint != "" {
		c.Storage.S3.Endpoint = endpoint
	}

	if accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID"); accessKeyID != "" {
		c.Storage.S3.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("AWS_SECRET_ACCESS_KEY"); accessKeySecret != "" {
		c.Storage.S3.AccessKeySecret = accessKeySecret
	}

	if backend := os.Getenv("RATE_LIMIT_BACKEND"); backend != "" {
		c.RateLimit.Backend = backend
	}

	if max := os.Getenv("RATE_LIMIT_APPLY_MAX"); max != "" {
		if v, err := strconv.Atoi(max); err == nil && v > 0 {
			c.RateLimit.ApplyMax = v
		}
	}

	if window := os.Getenv("RATE_LIMIT_APPLY_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.RateLimit.ApplyWindow = d
		}
	}

	if max := os.Getenv("RATE_LIMIT_CONTACT_MAX"); max != "" {
		if v, err := strconv.Atoi(max); err == nil && v > 0 {
			c.RateLimit.ContactMax = v
		}
	}

	if window := os.Getenv("RATE_LIMIT_CONTACT_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.RateLimit.ContactWindow = d
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
