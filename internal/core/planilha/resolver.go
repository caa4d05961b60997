package planilha

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var naoNumericoRegex = regexp.MustCompile(`[^0-9,.\-]`)

// ResolveNumber procura a primeira chave candidata presente na linha e
// converte o valor para número. A precedência é da ordem da lista: uma chave
// presente com valor inválido não cede lugar às seguintes.
func ResolveNumber(linha map[string]string, chaves []string) (float64, bool) {
	for _, chave := range chaves {
		bruto, ok := linha[chave]
		if !ok {
			continue
		}
		n, err := ParseNumeroBR(bruto)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ResolveString devolve o valor da primeira chave candidata presente na linha.
func ResolveString(linha map[string]string, chaves []string) (string, bool) {
	for _, chave := range chaves {
		if v, ok := linha[chave]; ok {
			return v, true
		}
	}
	return "", false
}

// ParseNumeroBR normaliza entradas brasileiras/anglo ("1.234,56",
// "R$ 1.000,00", "2000") para um float64. Tudo que não for dígito, vírgula,
// ponto ou sinal é descartado antes da análise.
func ParseNumeroBR(val string) (float64, error) {
	s := naoNumericoRegex.ReplaceAllString(val, "")
	if s == "" {
		return 0, fmt.Errorf("valor numérico vazio ou inválido: %q", val)
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}

	// localizar última ocorrência de . e , para decidir o formato
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot > lastComma:
		s = strings.ReplaceAll(s, ",", "")
		if strings.Count(s, ".") > 1 {
			parts := strings.Split(s, ".")
			s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("valor numérico inválido: %q", val)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("valor numérico não finito: %q", val)
	}
	if neg {
		f = -f
	}
	return f, nil
}
