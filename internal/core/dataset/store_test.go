package dataset

import (
	"errors"
	"reflect"
	"testing"

	"convenios-service/internal/domain"
)

func cargaDeTeste() *domain.PlanilhaResult {
	return &domain.PlanilhaResult{
		Saldo: []domain.Convenio{
			{Nome: "A", Saldo: 100},
			{Nome: "B", Saldo: 50},
		},
		Prazo: []domain.Convenio{
			{Nome: "A", Prazo: 12},
			{Nome: "B", Prazo: 6},
		},
		Taxas: []domain.TaxaConclusao{
			{Nome: "A", Taxa: 80},
			{Nome: "B", Taxa: 40},
		},
	}
}

func TestStore_ZerarERestaurar(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Load(cargaDeTeste())

	if store.SaldoGeralAtual() != 150 {
		t.Fatalf("saldo geral após a carga deveria ser 150, veio %v", store.SaldoGeralAtual())
	}

	store.Zerar()
	if store.SaldoGeralAtual() != 0 {
		t.Fatalf("saldo geral após zerar deveria ser 0, veio %v", store.SaldoGeralAtual())
	}
	if store.Metricas().TotalConvenios != 2 {
		t.Fatalf("zerar não pode mudar a contagem: %d", store.Metricas().TotalConvenios)
	}

	atual := store.Atual()
	if len(atual.Saldo) != 2 || atual.Saldo[0].Nome != "A" || atual.Saldo[1].Nome != "B" {
		t.Fatalf("zerar não pode remover nem reordenar registros: %+v", atual.Saldo)
	}
	for _, c := range atual.Saldo {
		if c.Saldo != 0 {
			t.Fatalf("saldo deveria estar zerado: %+v", c)
		}
	}
	for _, c := range atual.Prazo {
		if c.Prazo != 0 {
			t.Fatalf("prazo deveria estar zerado: %+v", c)
		}
	}

	store.Restaurar()
	if store.SaldoGeralAtual() != 150 {
		t.Fatalf("restaurar deveria voltar o saldo geral a 150, veio %v", store.SaldoGeralAtual())
	}
	restaurado := store.Atual()
	if restaurado.Saldo[0].Saldo != 100 || restaurado.Prazo[1].Prazo != 6 {
		t.Fatalf("cópia de trabalho não voltou à baseline: %+v", restaurado)
	}
}

func TestStore_NomesUnicosPreservamOrdem(t *testing.T) {
	t.Parallel()

	carga := &domain.PlanilhaResult{
		Saldo: []domain.Convenio{
			{Nome: "A", Saldo: 1},
			{Nome: "B", Saldo: 2},
			{Nome: "A", Saldo: 3},
		},
		Prazo: []domain.Convenio{
			{Nome: "A"}, {Nome: "B"}, {Nome: "A"},
		},
	}

	store := NewStore()
	store.Load(carga)

	if got := store.Nomes(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("quer [A B], veio %v", got)
	}
	// duplicatas permanecem no conjunto, só a lista de nomes é única
	if store.Metricas().TotalConvenios != 3 {
		t.Fatalf("contagem deveria seguir as linhas da carga: %d", store.Metricas().TotalConvenios)
	}
}

func TestStore_FalhaCarga(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.FalhaCarga(errors.New(`a aba "PLANILHA" não foi encontrada`))

	estado := store.Estado()
	if !estado.Carregado {
		t.Fatalf("carga malsucedida ainda encerra o carregamento")
	}
	if estado.Erro == "" {
		t.Fatalf("mensagem global de erro deveria estar registrada")
	}
	if m := store.Metricas(); m != (domain.Metricas{}) {
		t.Fatalf("métricas deveriam estar zeradas: %+v", m)
	}
	if atual := store.Atual(); len(atual.Saldo) != 0 || len(atual.Prazo) != 0 {
		t.Fatalf("conjunto deveria estar vazio: %+v", atual)
	}
}

func TestStore_MatchConvenio(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Load(cargaDeTeste())

	dados := store.MatchConvenio("B")
	if dados == nil || dados.Saldo == nil || dados.Prazo == nil {
		t.Fatalf("convênio conhecido deveria resolver: %+v", dados)
	}
	if *dados.Saldo != 50 || *dados.Prazo != 6 {
		t.Fatalf("valores errados: saldo=%v prazo=%v", *dados.Saldo, *dados.Prazo)
	}

	if store.MatchConvenio("X") != nil {
		t.Fatalf("convênio desconhecido deveria devolver nil")
	}

	// depois de zerar, o match reflete a cópia de trabalho vigente
	store.Zerar()
	dados = store.MatchConvenio("B")
	if dados == nil || *dados.Saldo != 0 || *dados.Prazo != 0 {
		t.Fatalf("match deveria refletir os valores zerados: %+v", dados)
	}
}

func TestStore_AtualDevolveCopiaIndependente(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Load(cargaDeTeste())

	atual := store.Atual()
	atual.Saldo[0].Saldo = 999

	if store.Atual().Saldo[0].Saldo != 100 {
		t.Fatalf("mutação no snapshot do leitor vazou para o store")
	}
}
