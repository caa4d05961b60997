package avaliacao

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"convenios-service/internal/core/planilha"
	"convenios-service/internal/domain"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Validate aplica as regras do formulário de projeto contra a lista de
// convênios conhecidos. Todas as regras são avaliadas, sem curto-circuito; o
// mapa campo->mensagem sai vazio quando o formulário é válido.
func Validate(form domain.FormularioProjeto, nomes []string) (domain.ProjetoSubmissao, map[string]string) {
	erros := make(map[string]string)
	sub := domain.ProjetoSubmissao{
		Projeto:       strings.TrimSpace(form.Projeto),
		TipoAquisicao: form.TipoAquisicao,
	}

	if sub.Projeto == "" {
		erros["projeto"] = "Nome do Projeto é obrigatório."
	}

	// aceita entrada no estilo brasileiro ("1.250,50") ou anglo ("1250.50")
	valor, errValor := planilha.ParseNumeroBR(form.Valor)
	if errValor != nil || valor <= 0 {
		erros["valor"] = "Valor deve ser maior que zero."
	}
	sub.Valor = valor

	if form.TipoAquisicao == "" {
		erros["tipoAquisicao"] = "Fonte pagadora é obrigatória."
	} else if !contemNome(nomes, form.TipoAquisicao) {
		msg := "Convênio desconhecido."
		if sugestao := sugerirConvenio(form.TipoAquisicao, nomes); sugestao != "" {
			msg = fmt.Sprintf("Convênio desconhecido. Você quis dizer %q?", sugestao)
		}
		erros["tipoAquisicao"] = msg
	}

	prazo, errPrazo := strconv.ParseFloat(strings.TrimSpace(form.Prazo), 64)
	switch {
	case errPrazo != nil:
		erros["prazo"] = "Prazo deve ser um número."
	case prazo < 0:
		erros["prazo"] = "Prazo deve ser >= 0."
	default:
		sub.Prazo = prazo
	}

	taxa, errTaxa := strconv.ParseFloat(strings.TrimSpace(form.TaxaConclusao), 64)
	switch {
	case errTaxa != nil:
		erros["taxaConclusao"] = "Taxa de Conclusão deve ser um número."
	case taxa < 0 || taxa > 100:
		erros["taxaConclusao"] = "Taxa de Conclusão deve estar entre 0 e 100."
	default:
		sub.TaxaConclusao = taxa
	}

	return sub, erros
}

func contemNome(nomes []string, nome string) bool {
	for _, n := range nomes {
		if n == nome {
			return true
		}
	}
	return false
}

// sugerirConvenio busca o convênio conhecido mais próximo do nome informado,
// comparando as formas normalizadas (sem acentos, maiúsculas).
func sugerirConvenio(nome string, nomes []string) string {
	chave := normalizarTexto(nome)
	if chave == "" || len(nomes) == 0 {
		return ""
	}

	originais := make(map[string]string, len(nomes))
	chaves := make([]string, 0, len(nomes))
	for _, n := range nomes {
		k := normalizarTexto(n)
		if k == "" {
			continue
		}
		if _, ok := originais[k]; !ok {
			originais[k] = n
			chaves = append(chaves, k)
		}
	}
	if len(chaves) == 0 {
		return ""
	}

	cm := closestmatch.New(chaves, []int{3, 4})
	return originais[cm.Closest(chave)]
}

func normalizarTexto(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
