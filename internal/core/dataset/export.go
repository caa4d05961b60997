package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"convenios-service/internal/domain"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ExportCSV gera o CSV da cópia de trabalho no formato de planilha contábil:
// separador ';' e codificação Windows-1252.
func ExportCSV(conjunto domain.ConjuntoConvenios) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	if err := writer.Write([]string{"Convênio", "Saldo", "Prazo"}); err != nil {
		return nil, err
	}

	for i, c := range conjunto.Saldo {
		var prazo float64
		if i < len(conjunto.Prazo) {
			prazo = conjunto.Prazo[i].Prazo
		}
		registro := []string{
			sanitizarCampo(c.Nome),
			formatarDecimalVirgula(c.Saldo),
			formatarDecimalVirgula(prazo),
		}
		if err := writer.Write(registro); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

// sanitizarCampo remove quebras de linha e caracteres de controle embutidos.
func sanitizarCampo(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == '\t' {
			return -1
		}
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func formatarDecimalVirgula(val float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", val), ".", ",", 1)
}
