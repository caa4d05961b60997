package planilha

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"convenios-service/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// AbaPrincipal é o nome exato da aba obrigatória de convênios.
const AbaPrincipal = "PLANILHA"

var abaEquipamentosRegex = regexp.MustCompile(`(?i)equipamentos?`)

// Ordens de chaves candidatas por coluna. A primeira presente vence.
var (
	chavesNome  = []string{"CONVÊNIO", "Convenio"}
	chavesSaldo = []string{"SALDO", "Saldo"}
	chavesPrazo = []string{"PRAZO", "Prazo"}
	chavesTaxa  = []string{
		"TAXA DE CONCLUSÃO", "TAXA DE CONCLUSAO", "Taxa de Conclusão",
		"Taxa de Conclusao", "TAXA_DE_CONCLUSAO", "TaxaConclusao",
	}
	chavesValorEquipamento = []string{
		"VALOR ATUAL DO EQUIPAMENTO", "VALOR ATUAL EQUIPAMENTO", "VALOR_ATUAL_DO_EQUIPAMENTO",
		"VALOR ATUAL", "VALOR_ATUAL", "VALOR", "Valor", "Valor Atual",
	}
	chavesIdadeEquipamento = []string{
		"IDADE DO EQUIPAMENTO", "IDADE_EQUIPAMENTO", "IDADE", "Idade", "IDADE DO ATIVO",
	}
)

// Service define a interface do serviço de ingestão da planilha de convênios.
type Service interface {
	Ingest(src io.Reader) (*domain.PlanilhaResult, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de ingestão.
func NewService() Service {
	return &service{}
}

// aba mantém as linhas de uma aba na ordem original do arquivo.
type aba struct {
	nome   string
	linhas [][]string
}

// Ingest carrega a pasta de trabalho e converte a aba PLANILHA em registros
// normalizados, além de agregar a aba opcional de equipamentos.
func (svc *service) Ingest(src io.Reader) (*domain.PlanilhaResult, error) {
	abas, err := svc.carregarPasta(src)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o arquivo: %w", err)
	}

	var principal *aba
	for i := range abas {
		if abas[i].nome == AbaPrincipal {
			principal = &abas[i]
			break
		}
	}
	if principal == nil {
		return nil, domain.ErrPlanilhaNaoEncontrada
	}

	resultado := &domain.PlanilhaResult{}
	for _, linha := range linhasComoMapas(principal.linhas) {
		nome, ok := ResolveString(linha, chavesNome)
		if !ok || strings.TrimSpace(nome) == "" {
			nome = "Sem Nome"
		}
		saldo, _ := ResolveNumber(linha, chavesSaldo)
		prazo, _ := ResolveNumber(linha, chavesPrazo)
		taxa, _ := ResolveNumber(linha, chavesTaxa)

		resultado.Saldo = append(resultado.Saldo, domain.Convenio{Nome: nome, Saldo: saldo})
		resultado.Prazo = append(resultado.Prazo, domain.Convenio{Nome: nome, Prazo: prazo})
		resultado.Taxas = append(resultado.Taxas, domain.TaxaConclusao{Nome: nome, Taxa: taxa})
	}

	// prioriza a primeira aba de equipamentos na ordem original do arquivo
	for i := range abas {
		if abaEquipamentosRegex.MatchString(abas[i].nome) {
			resultado.Equipamentos = resumirEquipamentos(linhasComoMapas(abas[i].linhas))
			break
		}
	}

	return resultado, nil
}

// carregarPasta lê a pasta de trabalho inteira preservando os nomes e a ordem
// das abas. Tenta .xlsx primeiro e cai para .xls legado.
func (svc *service) carregarPasta(src io.Reader) ([]aba, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	f, errXLSX := excelize.OpenReader(bytes.NewReader(data))
	if errXLSX == nil {
		defer f.Close()
		var abas []aba
		for _, nome := range f.GetSheetList() {
			linhas, err := f.GetRows(nome)
			if err != nil {
				continue
			}
			abas = append(abas, aba{nome: nome, linhas: linhas})
		}
		return abas, nil
	}

	pasta, errXLS := xls.OpenReader(bytes.NewReader(data))
	if errXLS != nil {
		return nil, errXLSX
	}

	var abas []aba
	for _, folha := range pasta.GetSheets() {
		var linhas [][]string
		for _, row := range folha.GetRows() {
			var celulas []string
			for _, cell := range row.GetCols() {
				celulas = append(celulas, cell.GetString())
			}
			linhas = append(linhas, celulas)
		}
		abas = append(abas, aba{nome: folha.GetName(), linhas: linhas})
	}
	return abas, nil
}

// linhasComoMapas converte as linhas de dados em mapas coluna->valor usando a
// primeira linha como cabeçalho. Células vazias ficam de fora do mapa, então
// uma coluna sem valor conta como chave ausente na resolução.
func linhasComoMapas(linhas [][]string) []map[string]string {
	if len(linhas) < 2 {
		return nil
	}
	cabecalho := linhas[0]

	var mapas []map[string]string
	for _, linha := range linhas[1:] {
		m := make(map[string]string, len(cabecalho))
		for i, coluna := range cabecalho {
			if strings.TrimSpace(coluna) == "" || i >= len(linha) {
				continue
			}
			if valor := strings.TrimSpace(linha[i]); valor != "" {
				m[coluna] = valor
			}
		}
		if len(m) > 0 {
			mapas = append(mapas, m)
		}
	}
	return mapas
}

// resumirEquipamentos soma os valores e tira a média das idades da aba de
// equipamentos. Linhas sem valor resolvível ficam fora da soma e da média,
// diferente da aba principal, que assume zero.
func resumirEquipamentos(linhas []map[string]string) domain.EquipamentoResumo {
	var somaValores, somaIdades float64
	var valores, idades int

	for _, linha := range linhas {
		if v, ok := ResolveNumber(linha, chavesValorEquipamento); ok {
			somaValores += v
			valores++
		}
		if idade, ok := ResolveNumber(linha, chavesIdadeEquipamento); ok {
			somaIdades += idade
			idades++
		}
	}

	resumo := domain.EquipamentoResumo{}
	if valores > 0 {
		resumo.ValorTotal = somaValores
	}
	if idades > 0 {
		resumo.IdadeMedia = somaIdades / float64(idades)
	}
	return resumo
}
