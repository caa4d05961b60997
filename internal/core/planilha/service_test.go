package planilha

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"convenios-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

type abaTeste struct {
	nome   string
	linhas [][]string
}

// criarPasta monta um .xlsx em memória com as abas na ordem dada.
func criarPasta(t *testing.T, abas []abaTeste) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	for i, a := range abas {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", a.nome); err != nil {
				t.Fatalf("erro ao renomear aba: %v", err)
			}
		} else {
			if _, err := f.NewSheet(a.nome); err != nil {
				t.Fatalf("erro ao criar aba %s: %v", a.nome, err)
			}
		}
		for r, linha := range a.linhas {
			for col, valor := range linha {
				celula, err := excelize.CoordinatesToCellName(col+1, r+1)
				if err != nil {
					t.Fatalf("erro ao montar célula: %v", err)
				}
				if err := f.SetCellValue(a.nome, celula, valor); err != nil {
					t.Fatalf("erro ao escrever célula: %v", err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("erro ao gerar a pasta de trabalho: %v", err)
	}
	return buf
}

func TestIngest_PlanilhaPrincipal(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{{
		nome: "PLANILHA",
		linhas: [][]string{
			{"CONVÊNIO", "SALDO", "PRAZO"},
			{"A", "100", "12"},
			{"B", "50", "6"},
		},
	}})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(resultado.Saldo) != 2 || len(resultado.Prazo) != 2 || len(resultado.Taxas) != 2 {
		t.Fatalf("esperava 2 registros em cada visão, veio %d/%d/%d",
			len(resultado.Saldo), len(resultado.Prazo), len(resultado.Taxas))
	}
	if resultado.Saldo[0].Nome != "A" || resultado.Saldo[0].Saldo != 100 {
		t.Fatalf("registro de saldo inesperado: %+v", resultado.Saldo[0])
	}
	if resultado.Prazo[1].Nome != "B" || resultado.Prazo[1].Prazo != 6 {
		t.Fatalf("registro de prazo inesperado: %+v", resultado.Prazo[1])
	}
	// sem coluna de taxa, todas as linhas assumem zero
	for _, taxa := range resultado.Taxas {
		if taxa.Taxa != 0 {
			t.Fatalf("taxa deveria ser zero sem a coluna, veio %v", taxa.Taxa)
		}
	}
	if resultado.Equipamentos.ValorTotal != 0 || resultado.Equipamentos.IdadeMedia != 0 {
		t.Fatalf("sem aba de equipamentos os totais deveriam ser zero: %+v", resultado.Equipamentos)
	}
}

func TestIngest_AbaPrincipalAusente(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{{
		nome:   "Outra",
		linhas: [][]string{{"CONVÊNIO"}, {"A"}},
	}})

	_, err := NewService().Ingest(src)
	if !errors.Is(err, domain.ErrPlanilhaNaoEncontrada) {
		t.Fatalf("quer ErrPlanilhaNaoEncontrada, veio %v", err)
	}
}

func TestIngest_ArquivoInvalido(t *testing.T) {
	t.Parallel()

	_, err := NewService().Ingest(bytes.NewReader([]byte("isto não é uma pasta de trabalho")))
	if err == nil {
		t.Fatalf("esperava erro para binário inválido")
	}
	if errors.Is(err, domain.ErrPlanilhaNaoEncontrada) {
		t.Fatalf("binário inválido não é aba ausente: %v", err)
	}
}

func TestIngest_NomePadrao(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{{
		nome: "PLANILHA",
		linhas: [][]string{
			{"SALDO", "PRAZO"},
			{"100", "12"},
		},
	}})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resultado.Saldo[0].Nome != "Sem Nome" {
		t.Fatalf("quer Sem Nome, veio %q", resultado.Saldo[0].Nome)
	}
}

func TestIngest_AliasesDeColunas(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{{
		nome: "PLANILHA",
		linhas: [][]string{
			{"Convenio", "Saldo", "Prazo", "TaxaConclusao"},
			{"C", "1.234,56", "24", "80"},
		},
	}})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resultado.Saldo[0].Nome != "C" || resultado.Saldo[0].Saldo != 1234.56 {
		t.Fatalf("aliases minúsculos não resolvidos: %+v", resultado.Saldo[0])
	}
	if resultado.Taxas[0].Taxa != 80 {
		t.Fatalf("quer taxa 80, veio %v", resultado.Taxas[0].Taxa)
	}
}

func TestIngest_TaxaInvalidaViraZero(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{{
		nome: "PLANILHA",
		linhas: [][]string{
			{"CONVÊNIO", "SALDO", "TAXA DE CONCLUSÃO"},
			{"A", "100", "indefinida"},
		},
	}})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resultado.Taxas[0].Taxa != 0 {
		t.Fatalf("taxa não numérica deveria virar zero, veio %v", resultado.Taxas[0].Taxa)
	}
}

func TestIngest_AbaDeEquipamentos(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{
		{
			nome: "PLANILHA",
			linhas: [][]string{
				{"CONVÊNIO", "SALDO"},
				{"A", "100"},
			},
		},
		{
			nome: "Equipamentos",
			linhas: [][]string{
				{"VALOR", "IDADE"},
				{"R$ 1.000,00", "5"},
				{"2000", "bad"},
			},
		},
	})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// os dois valores entram na soma; a idade inválida fica fora da média
	if resultado.Equipamentos.ValorTotal != 3000 {
		t.Fatalf("quer valor total 3000, veio %v", resultado.Equipamentos.ValorTotal)
	}
	if resultado.Equipamentos.IdadeMedia != 5 {
		t.Fatalf("quer idade média 5, veio %v", resultado.Equipamentos.IdadeMedia)
	}
}

func TestIngest_EquipamentosCaseInsensitiveEPrimeiraAba(t *testing.T) {
	t.Parallel()

	src := criarPasta(t, []abaTeste{
		{
			nome:   "PLANILHA",
			linhas: [][]string{{"CONVÊNIO", "SALDO"}, {"A", "100"}},
		},
		{
			nome:   "equipamento antigo",
			linhas: [][]string{{"VALOR", "IDADE"}, {"10", "2"}},
		},
		{
			nome:   "EQUIPAMENTOS",
			linhas: [][]string{{"VALOR", "IDADE"}, {"999", "99"}},
		},
	})

	resultado, err := NewService().Ingest(src)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// apenas a primeira aba que casa com o padrão conta
	if resultado.Equipamentos.ValorTotal != 10 || resultado.Equipamentos.IdadeMedia != 2 {
		t.Fatalf("deveria usar só a primeira aba de equipamentos: %+v", resultado.Equipamentos)
	}
}
