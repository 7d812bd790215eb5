package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/studytrack/schema"
)

// Default values for configuration.
const (
	DefaultUserID      = "local"
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	UserID string

	// StartTime is zero when the window has no lower bound.
	StartTime time.Time
	EndTime   time.Time
	Location  *time.Location
	Now       time.Time

	Subject       string
	Topic         string
	OnlyIncorrect bool

	Metric      schema.Metric
	Periods     int
	ResultLimit int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	DBBackend   schema.DatabaseBackend
	DBConnect   string // Please use env var as this is plaintext
	DBMigrateTo int    // Target schema version for store migrate (-1 = latest)

	// Attempt recording
	QuestionID string
	Answer     string
	Correct    bool

	// Notebooks
	NotebookName string
	QuestionIDs  []string

	// Positional arguments (import files, notebook IDs)
	Args []string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored cells in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Args []string

	// --- Fields from rootCmd.PersistentFlags() ---
	User       string `mapstructure:"user"`
	OutputFile string `mapstructure:"output-file"`
	Output     string `mapstructure:"output"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	DBBackend  string `mapstructure:"db-backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Timezone   string `mapstructure:"timezone"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	// --- Filter flags shared by the view commands ---
	Subject   string `mapstructure:"subject"`
	Topic     string `mapstructure:"topic"`
	Incorrect bool   `mapstructure:"incorrect"`
	Start     string `mapstructure:"start"`
	End       string `mapstructure:"end"`
	Limit     int    `mapstructure:"limit"`

	// --- Fields from evolutionCmd.Flags() ---
	Metric  string `mapstructure:"metric"`
	Periods int    `mapstructure:"periods"`

	// --- Fields from recordCmd.Flags() ---
	Question string `mapstructure:"question"`
	Answer   string `mapstructure:"answer"`
	Correct  string `mapstructure:"correct"`

	// --- Fields from notebookCmd.Flags() ---
	Name      string `mapstructure:"name"`
	Questions string `mapstructure:"questions"`

	// --- Fields from storeMigrateCmd.Flags() ---
	MigrateTo int `mapstructure:"migrate-to"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.QuestionIDs != nil {
		clone.QuestionIDs = make([]string, len(c.QuestionIDs))
		copy(clone.QuestionIDs, c.QuestionIDs)
	}
	if c.Args != nil {
		clone.Args = make([]string, len(c.Args))
		copy(clone.Args, c.Args)
	}
	return &clone
}

// Filter returns the attempt filter described by the config.
func (c *Config) Filter() schema.AttemptFilter {
	return schema.AttemptFilter{
		Subject:       c.Subject,
		Topic:         c.Topic,
		Start:         c.StartTime,
		End:           c.EndTime,
		OnlyIncorrect: c.OnlyIncorrect,
	}
}

// StartBound returns the window start, nil when unbounded.
func (c *Config) StartBound() *time.Time {
	if c.StartTime.IsZero() {
		return nil
	}
	start := c.StartTime
	return &start
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processEvolutionInputs(cfg, input); err != nil {
		return err
	}
	return processRecordInputs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if cfg.DBBackend == "" {
		cfg.DBBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect)
}

// validateSimpleInputs processes and validates the output and filter fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Subject = strings.TrimSpace(input.Subject)
	cfg.Topic = strings.TrimSpace(input.Topic)
	cfg.OnlyIncorrect = input.Incorrect
	if input.Args != nil {
		cfg.Args = append([]string(nil), input.Args...)
	}

	cfg.UserID = strings.TrimSpace(input.User)
	if cfg.UserID == "" {
		cfg.UserID = DefaultUserID
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processTimeRange resolves the timezone and the optional filter window.
// An empty --start leaves the window unbounded; an empty --end means now.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	loc := time.Local
	if tz := strings.TrimSpace(input.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", tz, err)
		}
		loc = l
	}
	cfg.Location = loc
	cfg.Now = time.Now().In(loc)
	cfg.EndTime = cfg.Now
	cfg.StartTime = time.Time{}

	if s := strings.TrimSpace(input.Start); s != "" && !strings.EqualFold(s, "all") {
		t, err := ParseTimeBound(s, cfg.Now, loc, false)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		cfg.StartTime = t
	}
	if e := strings.TrimSpace(input.End); e != "" {
		t, err := ParseTimeBound(e, cfg.Now, loc, true)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("%w: start time (%s) cannot be after end time (%s)", ErrInvalidTimeRange,
			cfg.StartTime.Format(time.RFC3339), cfg.EndTime.Format(time.RFC3339))
	}
	return nil
}

// processEvolutionInputs handles the metric selector and the period target.
func processEvolutionInputs(cfg *Config, input *ConfigRawInput) error {
	metric, err := schema.ParseMetric(input.Metric)
	if err != nil {
		return err
	}
	cfg.Metric = metric

	if input.Periods < 0 || input.Periods > schema.MaxPeriods {
		return fmt.Errorf("periods must be between 1 and %d (received %d)", schema.MaxPeriods, input.Periods)
	}
	cfg.Periods = input.Periods
	if cfg.Periods == 0 {
		cfg.Periods = schema.DefaultPeriods
	}
	return nil
}

// processRecordInputs handles the attempt and notebook fields.
// Presence checks live with the commands that need them.
func processRecordInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.QuestionID = strings.TrimSpace(input.Question)
	cfg.Answer = strings.TrimSpace(input.Answer)
	if input.Correct != "" {
		correct, err := ParseBoolString(input.Correct)
		if err != nil {
			return fmt.Errorf("invalid --correct value: %w", err)
		}
		cfg.Correct = correct
	}

	cfg.NotebookName = strings.TrimSpace(input.Name)
	cfg.QuestionIDs = nil
	for q := range strings.SplitSeq(input.Questions, ",") {
		if q = strings.TrimSpace(q); q != "" {
			cfg.QuestionIDs = append(cfg.QuestionIDs, q)
		}
	}

	cfg.DBMigrateTo = input.MigrateTo
	return nil
}

// ProcessProfilingConfig enables profiling when a prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateView re-applies the window, metric and period parameters of a single
// request to an already validated config, typically a clone. The end defaults to now
// and an empty start leaves the window unbounded. Empty metric and zero periods keep cfg's values.
func RevalidateView(cfg *Config, start, end, metric string, periods int) error {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
		cfg.Location = loc
	}
	cfg.Now = time.Now().In(loc)
	cfg.EndTime = cfg.Now
	cfg.StartTime = time.Time{}

	if s := strings.TrimSpace(start); s != "" && !strings.EqualFold(s, "all") {
		t, err := ParseTimeBound(s, cfg.Now, loc, false)
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		cfg.StartTime = t
	}
	if e := strings.TrimSpace(end); e != "" {
		t, err := ParseTimeBound(e, cfg.Now, loc, true)
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
		cfg.EndTime = t
	}
	if !cfg.StartTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("%w: start time (%s) cannot be after end time (%s)", ErrInvalidTimeRange,
			cfg.StartTime.Format(time.RFC3339), cfg.EndTime.Format(time.RFC3339))
	}

	if metric != "" {
		m, err := schema.ParseMetric(metric)
		if err != nil {
			return err
		}
		cfg.Metric = m
	}
	if periods != 0 {
		if periods < 0 || periods > schema.MaxPeriods {
			return fmt.Errorf("periods must be between 1 and %d (received %d)", schema.MaxPeriods, periods)
		}
		cfg.Periods = periods
	}
	return nil
}
