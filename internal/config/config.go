package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	AuthJWTSecret string
	AuthTokenTTL  time.Duration

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	VSDC       VSDCConfig
	Receipt    ReceiptConfig
	QR         QRConfig
	PDF        PDFConfig
	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig

	// WebhookDedupTTL bounds how long a processed document number blocks
	// redelivery of the same webhook.
	WebhookDedupTTL time.Duration
}

// VSDCConfig identifies the taxpayer device registered with RRA.
type VSDCConfig struct {
	APIURL  string
	Timeout time.Duration

	TIN   string
	BhfID string
	SdcID string
	MrcNo string

	RegistrarID   string
	RegistrarName string
	ModifierID    string
	ModifierName  string

	// Applied when the Zoho document omits the field.
	FallbackCustomerTIN  string
	FallbackPurchaseCode string
}

// ReceiptConfig carries the seller identity printed on receipts when the
// business registry has no entry for the document's TIN.
type ReceiptConfig struct {
	TradeName     string
	Address       string
	Email         string
	Phone         string
	TopMessage    string
	BottomMessage string
}

// QRConfig selects how receipt QR codes are built.
type QRConfig struct {
	// Mode is "url" for RRA verification links or "text" for the raw
	// signature payload.
	Mode       string
	RRABaseURL string
}

// PDFConfig controls receipt rendering.
type PDFConfig struct {
	OutputDir string
}

// CloudinaryConfig configures QR image uploads. Uploading is disabled when
// the cloud name is empty; the QR is then embedded directly in the PDF.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// SMTPConfig configures failure notification mail. Disabled when Host is
// empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "ebmbridge"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		AuthJWTSecret: strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		AuthTokenTTL:  getenvDuration("AUTH_TOKEN_TTL", 24*time.Hour),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "ebmbridge"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),

		VSDC: VSDCConfig{
			APIURL:               getenv("VSDC_API_URL", "http://localhost:8080/vsdc/trnsSales/saveSales"),
			Timeout:              getenvDuration("VSDC_TIMEOUT", 30*time.Second),
			TIN:                  getenv("VSDC_TIN", "944000008"),
			BhfID:                getenv("VSDC_BRANCH_ID", "00"),
			SdcID:                getenv("VSDC_SDC_ID", "SDC010053151"),
			MrcNo:                getenv("VSDC_MRC", "WIS00058003"),
			RegistrarID:          getenv("VSDC_REGISTRAR_ID", "11999"),
			RegistrarName:        getenv("VSDC_REGISTRAR_NAME", "EBM Bridge"),
			ModifierID:           getenv("VSDC_MODIFIER_ID", "45678"),
			ModifierName:         getenv("VSDC_MODIFIER_NAME", "EBM Bridge"),
			FallbackCustomerTIN:  getenv("VSDC_DEFAULT_CUSTOMER_TIN", "998000003"),
			FallbackPurchaseCode: getenv("VSDC_DEFAULT_PURCHASE_CODE", "708955"),
		},

		Receipt: ReceiptConfig{
			TradeName:     getenv("COMPANY_NAME", "Kabisa Electric"),
			Address:       getenv("COMPANY_ADDRESS", "Kigali, Rwanda"),
			Email:         getenv("COMPANY_EMAIL", ""),
			Phone:         getenv("COMPANY_PHONE", ""),
			TopMessage:    getenv("RECEIPT_TOP_MESSAGE", "Welcome to our shop"),
			BottomMessage: getenv("RECEIPT_BOTTOM_MESSAGE", "THANK YOU, COME AGAIN"),
		},

		QR: QRConfig{
			Mode:       strings.ToLower(getenv("QR_CODE_TYPE", "url")),
			RRABaseURL: getenv("RRA_RECEIPT_BASE_URL", "https://myrra.rra.gov.rw/common/link/ebm/receipt/indexEbmReceiptData"),
		},

		PDF: PDFConfig{
			OutputDir: getenv("PDF_OUTPUT_DIR", "output/pdf"),
		},

		Cloudinary: CloudinaryConfig{
			CloudName: strings.TrimSpace(getenv("CLOUDINARY_CLOUD_NAME", "")),
			APIKey:    strings.TrimSpace(getenv("CLOUDINARY_API_KEY", "")),
			APISecret: strings.TrimSpace(getenv("CLOUDINARY_API_SECRET", "")),
		},

		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(getenv("SMTP_HOST", "")),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: getenv("SMTP_USERNAME", ""),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", ""),
			NotifyTo: getenv("SMTP_NOTIFY_TO", ""),
		},

		WebhookDedupTTL: getenvDuration("WEBHOOK_DEDUP_TTL", 10*time.Minute),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
