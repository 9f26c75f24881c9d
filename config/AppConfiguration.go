package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"

	// mysql is the only supported driver
	_ "github.com/go-sql-driver/mysql"
)

const defaultDBDriver = "mysql"

// AppConfiguration is a structure that defines the known configuration format
// for this application.
type AppConfiguration struct {
	DatabaseConnection DatabaseConfiguration       `yaml:"database"`
	ServerSettings     ServerSettingsConfiguration `yaml:"server"`
	EventQueue         EventQueueConfiguration     `yaml:"event_queue"`
	SMTP               SMTPConfiguration           `yaml:"smtp"`
	ResourceTypes      ResourceTypeConfiguration   `yaml:"resource_types"`
}

// DatabaseConfiguration is a structure that defines the attributes needed for
// setting up database connections.
type DatabaseConfiguration struct {
	// Driver specifies the database driver. Only mysql is supported.
	Driver string `yaml:"driver"`
	// Username is the account used to connect
	Username string `yaml:"username"`
	// Password for the account
	Password string `yaml:"password"`
	// Protocol, typically tcp
	Protocol string `yaml:"protocol"`
	// Host of the database
	Host string `yaml:"host"`
	// Port of the database
	Port string `yaml:"port"`
	// Schema is the database name
	Schema string `yaml:"schema"`
	// Params are additional DSN parameters
	Params string `yaml:"conn_params"`
	// MaxIdleConns limits idle pooled connections
	MaxIdleConns int `yaml:"max_idle_conns"`
	// MaxOpenConns limits total open connections
	MaxOpenConns int `yaml:"max_open_conns"`
}

// ServerSettingsConfiguration holds the attributes needed for the http listener.
type ServerSettingsConfiguration struct {
	// ListenPort is the TCP port to listen on
	ListenPort string `yaml:"port"`
	// ListenBind is the network address to bind to
	ListenBind string `yaml:"bind"`
	// ServicePrefix is the base url used when matching routes
	ServicePrefix string `yaml:"service_prefix"`
	// InviteCallbackURL is the base URL placed in group invite mail
	InviteCallbackURL string `yaml:"invite_callback_url"`
	// SiteAdmin is the username seeded as the singular site administrator
	SiteAdmin string `yaml:"site_admin"`
}

// EventQueueConfiguration configures the Kafka event publisher.
type EventQueueConfiguration struct {
	// KafkaAddrs is a list of host:port broker addresses. When set, takes
	// precedence over zookeeper discovery.
	KafkaAddrs []string `yaml:"kafka_addrs"`
	// ZKAddrs is a list of zookeeper nodes used to discover brokers
	ZKAddrs []string `yaml:"zk_addrs"`
	// Topic events are published to
	Topic string `yaml:"topic"`
	// PublishSuccessActions filters which successful actions publish. "*" for all.
	PublishSuccessActions []string `yaml:"publish_success_actions"`
	// PublishFailureActions filters which failed actions publish. "*" for all.
	PublishFailureActions []string `yaml:"publish_failure_actions"`
}

// SMTPConfiguration configures outbound invite mail.
type SMTPConfiguration struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	From string `yaml:"from"`
}

// ResourceTypeConfiguration lists the registered data type names the share
// surface will accept.
type ResourceTypeConfiguration struct {
	Names []string `yaml:"names"`
}

// NewAppConfiguration loads the yaml file at path, if given, and overlays
// environment variables and cli flags.
func NewAppConfiguration(ctx *cli.Context) (AppConfiguration, error) {
	var conf AppConfiguration

	path := ctx.String("conf")
	if len(path) > 0 {
		yamlBytes, err := os.ReadFile(path)
		if err != nil {
			return conf, fmt.Errorf("reading configuration file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(yamlBytes, &conf); err != nil {
			return conf, fmt.Errorf("parsing configuration file %s: %v", path, err)
		}
	}

	conf.DatabaseConnection.applyDefaults()
	conf.ServerSettings.applyDefaults()
	if conf.EventQueue.Topic == "" {
		conf.EventQueue.Topic = GetEnvOrDefault("CS_EVENT_TOPIC", "claimshare-event")
	}
	if port := ctx.String("port"); len(port) > 0 {
		conf.ServerSettings.ListenPort = port
	}
	return conf, nil
}

func (r *DatabaseConfiguration) applyDefaults() {
	if r.Driver == "" {
		r.Driver = defaultDBDriver
	}
	if r.Username == "" {
		r.Username = GetEnvOrDefault("CS_DB_USERNAME", "claimshare")
	}
	if r.Password == "" {
		r.Password = GetEnvOrDefault("CS_DB_PASSWORD", "")
	}
	if r.Protocol == "" {
		r.Protocol = "tcp"
	}
	if r.Host == "" {
		r.Host = GetEnvOrDefault("CS_DB_HOST", "127.0.0.1")
	}
	if r.Port == "" {
		r.Port = GetEnvOrDefault("CS_DB_PORT", "3306")
	}
	if r.Schema == "" {
		r.Schema = GetEnvOrDefault("CS_DB_SCHEMA", "claimshare")
	}
	if r.Params == "" {
		r.Params = "parseTime=true&collation=utf8_general_ci"
	}
	if r.MaxIdleConns == 0 {
		r.MaxIdleConns = int(GetEnvOrDefaultInt("CS_DB_MAXIDLECONNS", 10))
	}
	if r.MaxOpenConns == 0 {
		r.MaxOpenConns = int(GetEnvOrDefaultInt("CS_DB_MAXOPENCONNS", 10))
	}
}

func (r *ServerSettingsConfiguration) applyDefaults() {
	if r.ListenPort == "" {
		r.ListenPort = GetEnvOrDefault("CS_SERVER_PORT", "4430")
	}
	if r.ListenBind == "" {
		r.ListenBind = "0.0.0.0"
	}
	if r.ServicePrefix == "" {
		r.ServicePrefix = RootURLRegex
	}
	if r.SiteAdmin == "" {
		r.SiteAdmin = GetEnvOrDefault("CS_SITE_ADMIN", "siteadmin")
	}
}

func (r *DatabaseConfiguration) buildDSN() string {
	dsn := fmt.Sprintf("%s:%s@%s(%s:%s)/%s", r.Username, r.Password, r.Protocol, r.Host, r.Port, r.Schema)
	if len(r.Params) > 0 {
		dsn += "?" + r.Params
	}
	return dsn
}

// GetDatabaseHandle initializes a database connection using the configuration.
func (r *DatabaseConfiguration) GetDatabaseHandle() (*sqlx.DB, error) {
	db, err := sqlx.Open(r.Driver, r.buildDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(r.MaxIdleConns)
	db.SetMaxOpenConns(r.MaxOpenConns)
	return db, nil
}

// GetEnvOrDefault looks up an environment variable by name, returning a
// default if unset.
func GetEnvOrDefault(name, defaultValue string) string {
	envVal := os.Getenv(name)
	if len(envVal) == 0 {
		return defaultValue
	}
	return envVal
}

// GetEnvOrDefaultInt looks up an environment variable and parses it as an
// integer, returning a default if unset or malformed.
func GetEnvOrDefaultInt(name string, defaultValue int64) int64 {
	envVal := os.Getenv(name)
	if len(envVal) == 0 {
		return defaultValue
	}
	i, err := strconv.ParseInt(envVal, 10, 64)
	if err != nil {
		return defaultValue
	}
	return i
}
