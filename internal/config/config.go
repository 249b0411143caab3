package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Pipeline         Pipeline         `mapstructure:",squash"`
	DailyRevenueSync DailyRevenueSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

// Pipeline agrupa os parâmetros passados explicitamente para cada etapa
type Pipeline struct {
	OutputDir           string    `mapstructure:"pipeline_output_dir"`
	TargetDateRaw       string    `mapstructure:"pipeline_target_date"`
	TargetDate          time.Time `mapstructure:"-"`
	SaleLineItemsFile   string    `mapstructure:"pipeline_sale_line_items_file"`
	DailyRevenueFile    string    `mapstructure:"pipeline_daily_revenue_file"`
	PointAnswerFile     string    `mapstructure:"pipeline_point_answer_file"`
	ChartFile           string    `mapstructure:"pipeline_chart_file"`
	AnnotatedChartFile  string    `mapstructure:"pipeline_annotated_chart_file"`
	ChartWidthInches    float64   `mapstructure:"pipeline_chart_width_inches"`
	ChartHeightInches   float64   `mapstructure:"pipeline_chart_height_inches"`
	ChartDPI            int       `mapstructure:"pipeline_chart_dpi"`
	AnnotationOffsetDay int       `mapstructure:"pipeline_annotation_offset_days"`
}

type DailyRevenueSync struct {
	CronSchedule      string `mapstructure:"daily_revenue_sync_cron"`
	Retries           int    `mapstructure:"daily_revenue_sync_retries"`
	RetryDelaySeconds int    `mapstructure:"daily_revenue_sync_retry_delay_seconds"`
	Enabled           bool   `mapstructure:"daily_revenue_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/northwind?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("PIPELINE_OUTPUT_DIR", "./output")
	viper.SetDefault("PIPELINE_TARGET_DATE", "1996-08-08")
	viper.SetDefault("PIPELINE_SALE_LINE_ITEMS_FILE", "daily_sales_data.csv")
	viper.SetDefault("PIPELINE_DAILY_REVENUE_FILE", "daily_revenue.csv")
	viper.SetDefault("PIPELINE_POINT_ANSWER_FILE", "") // Derivado da data alvo quando vazio
	viper.SetDefault("PIPELINE_CHART_FILE", "daily_revenue_plot.png")
	viper.SetDefault("PIPELINE_ANNOTATED_CHART_FILE", "daily_revenue_plot_annotated.png")
	viper.SetDefault("PIPELINE_CHART_WIDTH_INCHES", 12.0)
	viper.SetDefault("PIPELINE_CHART_HEIGHT_INCHES", 6.0)
	viper.SetDefault("PIPELINE_CHART_DPI", 300)
	viper.SetDefault("PIPELINE_ANNOTATION_OFFSET_DAYS", 30)

	// Defaults para a execução agendada do pipeline
	viper.SetDefault("DAILY_REVENUE_SYNC_CRON", "0 0 * * *")       // Todos os dias à meia-noite
	viper.SetDefault("DAILY_REVENUE_SYNC_RETRIES", 1)              // Uma nova tentativa por tarefa
	viper.SetDefault("DAILY_REVENUE_SYNC_RETRY_DELAY_SECONDS", 60) // 1 minuto entre tentativas
	viper.SetDefault("DAILY_REVENUE_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Pipeline.Resolve(); err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a URL de conexão aceita tanto pelo lib/pq quanto pelo pgx
func BuildDSN(db Database) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s",
		db.User,
		db.Password,
		db.URL,
	)
}

// Resolve valida a data alvo e preenche os campos derivados
func (p *Pipeline) Resolve() error {
	if strings.TrimSpace(p.TargetDateRaw) == "" {
		return fmt.Errorf("config: pipeline_target_date é obrigatório")
	}

	targetDate, err := utils.ParseDate(p.TargetDateRaw)
	if err != nil {
		return fmt.Errorf("config: data alvo inválida %q: %w", p.TargetDateRaw, err)
	}
	p.TargetDate = *targetDate

	if p.PointAnswerFile == "" {
		p.PointAnswerFile = PointAnswerFileName(p.TargetDate)
	}

	if p.OutputDir == "" {
		return fmt.Errorf("config: pipeline_output_dir é obrigatório")
	}

	if p.ChartDPI <= 0 || p.ChartWidthInches <= 0 || p.ChartHeightInches <= 0 {
		return fmt.Errorf("config: dimensões do gráfico inválidas")
	}

	return nil
}

// PointAnswerFileName segue o padrão revenue_yyyy_mm_dd.txt
func PointAnswerFileName(targetDate time.Time) string {
	return fmt.Sprintf("revenue_%s.txt", targetDate.Format("2006_01_02"))
}

// Path retorna o caminho completo de um artefato dentro do diretório de saída
func (p Pipeline) Path(name string) string {
	return filepath.Join(p.OutputDir, name)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Debug("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
