package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Company struct {
	Name    string
	TaxID   string
	Phone   string
	Email   string
	Address string
}

type Config struct {
	HTTPAddr      string
	DatabaseURL   string // empty disables persistence: quotes stay in process memory
	DBMaxConns    int32
	InternalToken string
	Env           string
	MigrationsDir string

	LogoPath string
	FontDir  string
	Company  Company

	// Business policy, fixed by the company rather than derived anywhere.
	Stores           []string
	FreightThreshold int64
	PaymentMethods   []string
	ValidityOptions  []string
	DefaultPayment   string
	DefaultValidity  string
}

func MustLoad() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBMaxConns:    int32(envInt64("DB_MAX_CONNS", 10)),
		InternalToken: mustEnv("INTERNAL_TOKEN"),
		Env:           env("APP_ENV", "prod"),
		MigrationsDir: env("MIGRATIONS_DIR", "migrations"),
		LogoPath:      env("LOGO_PATH", "assets/logo_transparente.png"),
		FontDir:       env("FONT_DIR", "assets/fonts"),
		Company: Company{
			Name:    env("COMPANY_NAME", "DIDACTICOS JUGANDO Y EDUCANDO SAS"),
			TaxID:   env("COMPANY_TAX_ID", "901144615-6"),
			Phone:   env("COMPANY_PHONE", "3153357921"),
			Email:   env("COMPANY_EMAIL", "jugandoyeducando@hotmail.com"),
			Address: env("COMPANY_ADDRESS", "Avenida 19 # 114A - 22, Bogota"),
		},
		Stores:           splitList(env("STORES", "Oviedo,Barranquilla")),
		FreightThreshold: envInt64("FREIGHT_THRESHOLD", 1_000_000),
		PaymentMethods: []string{
			"Transferencia bancaria (pago anticipado)",
			"Transferencia bancaria (50% anticipado - 50% contraentrega)",
			"Transferencia bancaria (contraentrega)",
			"Transferencia bancaria",
		},
	}

	for i := 1; i <= 7; i++ {
		cfg.ValidityOptions = append(cfg.ValidityOptions, fmt.Sprintf("%d DÍAS HÁBILES", i))
	}
	cfg.DefaultPayment = cfg.PaymentMethods[0]
	cfg.DefaultValidity = "5 DÍAS HÁBILES"
	return cfg
}

// KnownStore reports whether the store name is one of the configured scopes.
func (c Config) KnownStore(store string) bool {
	for _, s := range c.Stores {
		if s == store {
			return true
		}
	}
	return false
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("invalid env %s: %v", k, err)
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
