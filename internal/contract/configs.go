package contract

import (
	"fmt"
	"maps"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/songwei/vitalrisk/schema"
)

// Default values for configuration.
const (
	DefaultBaselineWindowDays = 90
	DefaultTopFactors         = 3
	DefaultMaxRecommendations = 5
	DefaultAnomalyDayLimit    = 5
	DefaultPrecision          = 1
	DefaultAssessmentDays     = 30
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// validate is the shared validator instance for config and report structs.
var validate = validator.New()

// ValidateDietReport checks a diet self-report for recognized values.
func ValidateDietReport(report *schema.DietReport) error {
	if report == nil {
		return nil
	}
	if err := validate.Struct(report); err != nil {
		return fmt.Errorf("invalid diet report: %w", err)
	}
	return nil
}

// DiseaseWeightsRaw holds optional per-disease AHP weight overrides.
type DiseaseWeightsRaw struct {
	Hypertension *float64 `mapstructure:"hypertension"`
	Diabetes     *float64 `mapstructure:"diabetes"`
	Dyslipidemia *float64 `mapstructure:"dyslipidemia"`
}

// DimensionWeightsRaw holds optional top-level fusion weight overrides.
type DimensionWeightsRaw struct {
	Disease   *float64 `mapstructure:"disease"`
	Lifestyle *float64 `mapstructure:"lifestyle"`
	Trend     *float64 `mapstructure:"trend"`
}

// TopsisWeightsRaw holds optional TOPSIS criteria weight overrides.
type TopsisWeightsRaw struct {
	Severity  *float64 `mapstructure:"severity"`
	Urgency   *float64 `mapstructure:"urgency"`
	Frequency *float64 `mapstructure:"frequency"`
	Trend     *float64 `mapstructure:"trend"`
}

// LifestyleWeightsRaw holds optional lifestyle sub-dimension weight overrides.
type LifestyleWeightsRaw struct {
	Sleep      *float64 `mapstructure:"sleep"`
	Exercise   *float64 `mapstructure:"exercise"`
	Diet       *float64 `mapstructure:"diet"`
	Regularity *float64 `mapstructure:"regularity"`
}

// WeightsRawInput holds all weight overrides from the YAML config file.
type WeightsRawInput struct {
	Disease    *DiseaseWeightsRaw   `mapstructure:"disease"`
	Dimensions *DimensionWeightsRaw `mapstructure:"dimensions"`
	Topsis     *TopsisWeightsRaw    `mapstructure:"topsis"`
	Lifestyle  *LifestyleWeightsRaw `mapstructure:"lifestyle"`
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	User           string `mapstructure:"user"`
	Input          string `mapstructure:"input"`
	Days           int    `mapstructure:"days"`
	BaselineWindow int    `mapstructure:"baseline-window"`
	OutlierMethod  string `mapstructure:"outlier-method" validate:"omitempty,oneof=iqr zscore"`
	TopFactors     int    `mapstructure:"top-factors" validate:"omitempty,min=1,max=10"`
	Output         string `mapstructure:"output" validate:"omitempty,oneof=text json csv"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision" validate:"omitempty,min=1,max=2"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend" validate:"omitempty,oneof=sqlite mysql postgresql none"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	Weights    *WeightsRawInput                   `mapstructure:"weights"`
	Thresholds map[string]schema.TrendThresholds `mapstructure:"thresholds"`
}

// Config holds the runtime configuration for one assessment run.
// This struct remains the "final, validated" config.
type Config struct {
	UserID             string
	InputFile          string
	AssessmentDays     int
	BaselineWindowDays int
	OutlierMethod      schema.OutlierMethod
	TopFactors         int
	MaxRecommendations int
	AnomalyDayLimit    int

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// ComputedWeights are the final tables: defaults overlaid with any
	// config-file overrides.
	DiseaseWeights   map[string]float64
	DimensionWeights map[string]float64
	TopsisWeights    map[string]float64
	LifestyleWeights map[string]float64

	// TrendThresholds is the final per-metric threshold table.
	TrendThresholds map[string]schema.TrendThresholds
}

// BuildConfig validates the raw input and assembles the final Config,
// overlaying configured weight and threshold overrides on the schema
// defaults.
func BuildConfig(raw *ConfigRawInput) (*Config, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		UserID:             raw.User,
		InputFile:          raw.Input,
		AssessmentDays:     raw.Days,
		BaselineWindowDays: raw.BaselineWindow,
		OutlierMethod:      schema.OutlierIQR,
		TopFactors:         raw.TopFactors,
		MaxRecommendations: DefaultMaxRecommendations,
		AnomalyDayLimit:    DefaultAnomalyDayLimit,
		Output:             schema.TextOut,
		OutputFile:         raw.OutputFile,
		Precision:          raw.Precision,
		Width:              raw.Width,
		UseColors:          parseBool(raw.Color, true),
		StoreBackend:       schema.SQLiteBackend,
		StoreDBConnect:     raw.StoreDBConnect,
		DiseaseWeights:     schema.GetDefaultDiseaseWeights(),
		DimensionWeights:   schema.GetDefaultDimensionWeights(),
		TopsisWeights:      schema.GetDefaultTopsisWeights(),
		LifestyleWeights:   schema.GetDefaultLifestyleWeights(),
		TrendThresholds:    schema.GetDefaultTrendThresholds(),
	}

	if raw.OutlierMethod != "" {
		cfg.OutlierMethod = schema.OutlierMethod(raw.OutlierMethod)
	}
	if raw.Output != "" {
		cfg.Output = schema.OutputMode(raw.Output)
	}
	if raw.StoreBackend != "" {
		cfg.StoreBackend = schema.DatabaseBackend(raw.StoreBackend)
	}
	if cfg.AssessmentDays <= 0 {
		cfg.AssessmentDays = DefaultAssessmentDays
	}
	if cfg.BaselineWindowDays <= 0 {
		cfg.BaselineWindowDays = DefaultBaselineWindowDays
	}
	if cfg.TopFactors <= 0 {
		cfg.TopFactors = DefaultTopFactors
	}
	if cfg.Precision < 1 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return nil, err
	}

	applyWeightOverrides(cfg, raw.Weights)

	// Threshold overrides replace the whole per-metric entry; unknown metric
	// keys add new entries, which lets deployments track extra vitals.
	maps.Copy(cfg.TrendThresholds, raw.Thresholds)

	return cfg, nil
}

// applyWeightOverrides overlays configured weight values on the defaults.
func applyWeightOverrides(cfg *Config, w *WeightsRawInput) {
	if w == nil {
		return
	}
	if w.Disease != nil {
		setIf(cfg.DiseaseWeights, schema.DiseaseHypertension, w.Disease.Hypertension)
		setIf(cfg.DiseaseWeights, schema.DiseaseDiabetes, w.Disease.Diabetes)
		setIf(cfg.DiseaseWeights, schema.DiseaseDyslipidemia, w.Disease.Dyslipidemia)
	}
	if w.Dimensions != nil {
		setIf(cfg.DimensionWeights, schema.DimensionDisease, w.Dimensions.Disease)
		setIf(cfg.DimensionWeights, schema.DimensionLifestyle, w.Dimensions.Lifestyle)
		setIf(cfg.DimensionWeights, schema.DimensionTrend, w.Dimensions.Trend)
	}
	if w.Topsis != nil {
		setIf(cfg.TopsisWeights, schema.CriterionSeverity, w.Topsis.Severity)
		setIf(cfg.TopsisWeights, schema.CriterionUrgency, w.Topsis.Urgency)
		setIf(cfg.TopsisWeights, schema.CriterionFrequency, w.Topsis.Frequency)
		setIf(cfg.TopsisWeights, schema.CriterionTrend, w.Topsis.Trend)
	}
	if w.Lifestyle != nil {
		setIf(cfg.LifestyleWeights, schema.LifestyleSleep, w.Lifestyle.Sleep)
		setIf(cfg.LifestyleWeights, schema.LifestyleExercise, w.Lifestyle.Exercise)
		setIf(cfg.LifestyleWeights, schema.LifestyleDiet, w.Lifestyle.Diet)
		setIf(cfg.LifestyleWeights, schema.LifestyleRegularity, w.Lifestyle.Regularity)
	}
}

func setIf(m map[string]float64, key string, v *float64) {
	if v != nil && *v >= 0 {
		m[key] = *v
	}
}

// parseBool interprets the usual yes/no flag spellings.
func parseBool(s string, def bool) bool {
	switch s {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}

// ValidateDatabaseConnectionString performs basic validation of the backend
// and connection string combination before any connection is attempted.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store backend %s requires --store-db-connect", backend)
		}
	default:
		// SQLite uses a default file path; none ignores the connection string.
	}
	return nil
}
