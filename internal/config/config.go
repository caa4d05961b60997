// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config reúne as variáveis de ambiente do serviço.
type Config struct {
	Port             string
	WorkbookPath     string
	AvaliacaoURL     string
	AvaliacaoTimeout time.Duration
}

// Load lê o arquivo .env quando presente e resolve as variáveis de ambiente
// com seus valores padrão.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Print("Arquivo .env não encontrado, prosseguindo com variáveis de ambiente")
	}

	return Config{
		Port:             getenv("PORT", "8084"),
		WorkbookPath:     getenv("WORKBOOK_PATH", "TESTE FUZZY_REACT.xlsx"),
		AvaliacaoURL:     getenv("AVALIACAO_URL", "http://localhost:8000"),
		AvaliacaoTimeout: time.Duration(getenvInt("AVALIACAO_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getenv(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

func getenvInt(chave string, padrao int) int {
	v := os.Getenv(chave)
	if v == "" {
		return padrao
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Valor inválido para %s: %q, usando %d", chave, v, padrao)
		return padrao
	}
	return n
}
