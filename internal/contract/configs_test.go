package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/huangsam/studytrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by the default flag values.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		User:      "alice",
		Output:    "text",
		Precision: 1,
		DBBackend: "sqlite",
		Timezone:  "UTC",
		Emoji:     "no",
		Color:     "yes",
		Limit:     DefaultResultLimit,
		Metric:    "counts",
		Periods:   schema.DefaultPeriods,
		MigrateTo: -1,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) { in.Output, in.OutputFile = "parquet", "out.parquet" }},
		{name: "limit zero", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "precision too large", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "bad emoji flag", mutate: func(in *ConfigRawInput) { in.Emoji = "sometimes" }, expectError: true},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.DBBackend = "oracle" }, expectError: true},
		{name: "mysql without connect", mutate: func(in *ConfigRawInput) { in.DBBackend = "mysql" }, expectError: true},
		{name: "bad timezone", mutate: func(in *ConfigRawInput) { in.Timezone = "Mars/Olympus" }, expectError: true},
		{name: "bad metric", mutate: func(in *ConfigRawInput) { in.Metric = "median" }, expectError: true},
		{name: "legacy metric", mutate: func(in *ConfigRawInput) { in.Metric = "desempenho" }},
		{name: "negative periods", mutate: func(in *ConfigRawInput) { in.Periods = -1 }, expectError: true},
		{name: "too many periods", mutate: func(in *ConfigRawInput) { in.Periods = schema.MaxPeriods + 1 }, expectError: true},
		{name: "bad start", mutate: func(in *ConfigRawInput) { in.Start = "yesterday-ish" }, expectError: true},
		{name: "bad correct flag", mutate: func(in *ConfigRawInput) { in.Correct = "perhaps" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.User = ""
	input.DBBackend = ""
	input.Output = ""
	input.Periods = 0

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, schema.SQLiteBackend, cfg.DBBackend)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.DefaultPeriods, cfg.Periods)
	assert.Equal(t, schema.CountsMetric, cfg.Metric)
	assert.True(t, cfg.StartTime.IsZero(), "start is unbounded by default")
	assert.Nil(t, cfg.StartBound())
	assert.WithinDuration(t, time.Now(), cfg.EndTime, time.Minute)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, -1, cfg.DBMigrateTo)
}

func TestProcessTimeRange(t *testing.T) {
	t.Run("calendar window", func(t *testing.T) {
		input := validInput()
		input.Start = "2026-01-01"
		input.End = "2026-01-31"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime)
		assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), cfg.EndTime)
		require.NotNil(t, cfg.StartBound())
		assert.Equal(t, cfg.StartTime, *cfg.StartBound())
	})

	t.Run("all means unbounded", func(t *testing.T) {
		input := validInput()
		input.Start = "all"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.True(t, cfg.StartTime.IsZero())
	})

	t.Run("start after end", func(t *testing.T) {
		input := validInput()
		input.Start = "2026-02-01"
		input.End = "2026-01-01"
		err := ProcessAndValidate(&Config{}, input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTimeRange))
	})

	t.Run("relative start", func(t *testing.T) {
		input := validInput()
		input.Start = "30 days ago"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.WithinDuration(t, cfg.Now.AddDate(0, 0, -30), cfg.StartTime, time.Second)
	})
}

func TestProcessRecordInputs(t *testing.T) {
	input := validInput()
	input.Question = " q-42 "
	input.Answer = "C"
	input.Correct = "yes"
	input.Name = " Revisão "
	input.Questions = "q1, q2,,q3 "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "q-42", cfg.QuestionID)
	assert.Equal(t, "C", cfg.Answer)
	assert.True(t, cfg.Correct)
	assert.Equal(t, "Revisão", cfg.NotebookName)
	assert.Equal(t, []string{"q1", "q2", "q3"}, cfg.QuestionIDs)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MySQLBackend, "root:pw@tcp(localhost:3306)/study", false},
		{schema.MySQLBackend, "root:pw@localhost", true},
		{schema.MySQLBackend, "", true},
		{schema.PostgreSQLBackend, "host=localhost dbname=study", false},
		{schema.PostgreSQLBackend, "host=localhost", true},
		{schema.PostgreSQLBackend, "dbname=study", true},
	}
	for _, tt := range tests {
		err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
		if tt.wantErr {
			assert.Error(t, err, "%s %q", tt.backend, tt.conn)
		} else {
			assert.NoError(t, err, "%s %q", tt.backend, tt.conn)
		}
	}
}

func TestConfigCloneAndFilter(t *testing.T) {
	cfg := &Config{
		Subject:       "Math",
		Topic:         "Algebra",
		OnlyIncorrect: true,
		QuestionIDs:   []string{"q1"},
		Args:          []string{"a.csv"},
		StartTime:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	clone := cfg.Clone()
	clone.QuestionIDs[0] = "changed"
	clone.Args[0] = "changed"
	assert.Equal(t, "q1", cfg.QuestionIDs[0])
	assert.Equal(t, "a.csv", cfg.Args[0])

	f := cfg.Filter()
	assert.Equal(t, "Math", f.Subject)
	assert.Equal(t, "Algebra", f.Topic)
	assert.True(t, f.OnlyIncorrect)
	assert.Equal(t, cfg.StartTime, f.Start)
	assert.Equal(t, cfg.EndTime, f.End)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}

func TestRevalidateView(t *testing.T) {
	base := &Config{Location: time.UTC, Metric: schema.CountsMetric, Periods: schema.DefaultPeriods}

	t.Run("defaults", func(t *testing.T) {
		cfg := base.Clone()
		require.NoError(t, RevalidateView(cfg, "", "", "", 0))
		assert.True(t, cfg.StartTime.IsZero())
		assert.Equal(t, cfg.Now, cfg.EndTime)
		assert.Equal(t, schema.CountsMetric, cfg.Metric)
		assert.Equal(t, schema.DefaultPeriods, cfg.Periods)
	})

	t.Run("window and metric", func(t *testing.T) {
		cfg := base.Clone()
		require.NoError(t, RevalidateView(cfg, "2024-01-01", "2024-01-31", "desempenho", 20))
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime)
		assert.Equal(t, 31, cfg.EndTime.Day())
		assert.Equal(t, schema.PercentageMetric, cfg.Metric)
		assert.Equal(t, 20, cfg.Periods)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, RevalidateView(base.Clone(), "2024-02-01", "2024-01-01", "", 0), ErrInvalidTimeRange)
		assert.ErrorContains(t, RevalidateView(base.Clone(), "soon", "", "", 0), "invalid start")
		assert.ErrorContains(t, RevalidateView(base.Clone(), "", "", "ratio", 0), "invalid metric")
		assert.ErrorContains(t, RevalidateView(base.Clone(), "", "", "", schema.MaxPeriods+1), "periods must be")
	})

	t.Run("nil location", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, RevalidateView(cfg, "", "", "", 0))
		assert.Equal(t, time.Local, cfg.Location)
	})
}
