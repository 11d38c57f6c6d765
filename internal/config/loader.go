package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cm-analytics/eventcheck/internal/db"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string
}

// WhitelistConfig selects and configures the whitelist source. A non-empty
// WorkbookPath switches from Google Sheets to the local workbook.
type WhitelistConfig struct {
	SpreadsheetURL  string
	CredentialsFile string
	WorkbookPath    string
}

// WarehouseConfig selects and configures the analytical backend.
type WarehouseConfig struct {
	Backend         string // "bigquery" or "postgres"
	ProjectID       string
	CredentialsFile string
	SourceTable     string
	ResultsTable    string
	MigrationsPath  string
}

// SlackConfig configures alert delivery. An empty token disables alerts.
type SlackConfig struct {
	Token     string
	ChannelID string
}

// Config is the full service configuration. Credential material always comes
// from config or environment, never from code.
type Config struct {
	Server    ServerConfig
	Whitelist WhitelistConfig
	Warehouse WarehouseConfig
	Slack     SlackConfig
	Postgres  db.Config
}

// Default returns the baseline configuration before file and env overrides.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Warehouse: WarehouseConfig{
			Backend:        "bigquery",
			MigrationsPath: "./migrations",
		},
		Postgres: db.DefaultConfig(),
	}
}

// Load reads an optional config.yaml from configPath and applies environment
// overrides (EVENTCHECK_WAREHOUSE_SOURCE_TABLE and so on).
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("EVENTCHECK")

	// Map nested keys to flat env vars
	v.BindEnv("server.addr", "EVENTCHECK_SERVER_ADDR")
	v.BindEnv("whitelist.spreadsheet_url", "EVENTCHECK_WHITELIST_SPREADSHEET_URL")
	v.BindEnv("whitelist.credentials_file", "EVENTCHECK_WHITELIST_CREDENTIALS_FILE")
	v.BindEnv("whitelist.workbook_path", "EVENTCHECK_WHITELIST_WORKBOOK_PATH")
	v.BindEnv("warehouse.backend", "EVENTCHECK_WAREHOUSE_BACKEND")
	v.BindEnv("warehouse.project_id", "EVENTCHECK_WAREHOUSE_PROJECT_ID")
	v.BindEnv("warehouse.credentials_file", "EVENTCHECK_WAREHOUSE_CREDENTIALS_FILE")
	v.BindEnv("warehouse.source_table", "EVENTCHECK_WAREHOUSE_SOURCE_TABLE")
	v.BindEnv("warehouse.results_table", "EVENTCHECK_WAREHOUSE_RESULTS_TABLE")
	v.BindEnv("warehouse.migrations_path", "EVENTCHECK_WAREHOUSE_MIGRATIONS_PATH")
	v.BindEnv("slack.token", "EVENTCHECK_SLACK_TOKEN")
	v.BindEnv("slack.channel_id", "EVENTCHECK_SLACK_CHANNEL_ID")
	v.BindEnv("postgres.host", "EVENTCHECK_POSTGRES_HOST")
	v.BindEnv("postgres.port", "EVENTCHECK_POSTGRES_PORT")
	v.BindEnv("postgres.user", "EVENTCHECK_POSTGRES_USER")
	v.BindEnv("postgres.password", "EVENTCHECK_POSTGRES_PASSWORD")
	v.BindEnv("postgres.dbname", "EVENTCHECK_POSTGRES_DBNAME")
	v.BindEnv("postgres.sslmode", "EVENTCHECK_POSTGRES_SSLMODE")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	// Override defaults if values exist
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("whitelist.spreadsheet_url") {
		cfg.Whitelist.SpreadsheetURL = v.GetString("whitelist.spreadsheet_url")
	}
	if v.IsSet("whitelist.credentials_file") {
		cfg.Whitelist.CredentialsFile = v.GetString("whitelist.credentials_file")
	}
	if v.IsSet("whitelist.workbook_path") {
		cfg.Whitelist.WorkbookPath = v.GetString("whitelist.workbook_path")
	}
	if v.IsSet("warehouse.backend") {
		cfg.Warehouse.Backend = v.GetString("warehouse.backend")
	}
	if v.IsSet("warehouse.project_id") {
		cfg.Warehouse.ProjectID = v.GetString("warehouse.project_id")
	}
	if v.IsSet("warehouse.credentials_file") {
		cfg.Warehouse.CredentialsFile = v.GetString("warehouse.credentials_file")
	}
	if v.IsSet("warehouse.source_table") {
		cfg.Warehouse.SourceTable = v.GetString("warehouse.source_table")
	}
	if v.IsSet("warehouse.results_table") {
		cfg.Warehouse.ResultsTable = v.GetString("warehouse.results_table")
	}
	if v.IsSet("warehouse.migrations_path") {
		cfg.Warehouse.MigrationsPath = v.GetString("warehouse.migrations_path")
	}
	if v.IsSet("slack.token") {
		cfg.Slack.Token = v.GetString("slack.token")
	}
	if v.IsSet("slack.channel_id") {
		cfg.Slack.ChannelID = v.GetString("slack.channel_id")
	}
	if v.IsSet("postgres.host") {
		cfg.Postgres.Host = v.GetString("postgres.host")
	}
	if v.IsSet("postgres.port") {
		cfg.Postgres.Port = v.GetInt("postgres.port")
	}
	if v.IsSet("postgres.user") {
		cfg.Postgres.User = v.GetString("postgres.user")
	}
	if v.IsSet("postgres.password") {
		cfg.Postgres.Password = v.GetString("postgres.password")
	}
	if v.IsSet("postgres.dbname") {
		cfg.Postgres.DBName = v.GetString("postgres.dbname")
	}
	if v.IsSet("postgres.sslmode") {
		cfg.Postgres.SSLMode = v.GetString("postgres.sslmode")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Warehouse.Backend {
	case "bigquery", "postgres":
	default:
		return fmt.Errorf("warehouse.backend must be bigquery or postgres, got %q", c.Warehouse.Backend)
	}
	if c.Warehouse.SourceTable == "" {
		return fmt.Errorf("warehouse.source_table is required")
	}
	if c.Warehouse.ResultsTable == "" {
		return fmt.Errorf("warehouse.results_table is required")
	}
	if c.Whitelist.WorkbookPath == "" && c.Whitelist.SpreadsheetURL == "" {
		return fmt.Errorf("either whitelist.spreadsheet_url or whitelist.workbook_path is required")
	}
	return nil
}
