package dataset

import (
	"sync"

	"convenios-service/internal/domain"
)

// Store guarda a carga original (baseline) e a cópia de trabalho que os
// consumidores observam. A baseline é imutável depois da carga; a cópia de
// trabalho pode ser zerada e restaurada. Toda mutação substitui o snapshot
// inteiro sob o lock, então um leitor nunca vê um conjunto pela metade.
type Store struct {
	mu        sync.RWMutex
	baseline  domain.ConjuntoConvenios
	trabalho  domain.ConjuntoConvenios
	taxas     []domain.TaxaConclusao
	nomes     []string
	metricas  domain.Metricas
	carregado bool
	erroCarga string
}

// NewStore cria um Store vazio, ainda não carregado.
func NewStore() *Store {
	return &Store{}
}

// Load substitui a baseline e a cópia de trabalho pelo resultado de uma
// ingestão, com cópias independentes, e recalcula todas as métricas.
func (s *Store) Load(resultado *domain.PlanilhaResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baseline = domain.ConjuntoConvenios{
		Saldo: copiaConvenios(resultado.Saldo),
		Prazo: copiaConvenios(resultado.Prazo),
	}
	s.trabalho = domain.ConjuntoConvenios{
		Saldo: copiaConvenios(resultado.Saldo),
		Prazo: copiaConvenios(resultado.Prazo),
	}
	s.taxas = append([]domain.TaxaConclusao(nil), resultado.Taxas...)
	s.nomes = nomesUnicos(resultado.Saldo)
	s.metricas = Aggregate(resultado.Saldo, resultado.Taxas, resultado.Equipamentos)
	s.carregado = true
	s.erroCarga = ""
}

// FalhaCarga registra o fim de uma carga malsucedida: conjunto vazio,
// métricas zeradas e a mensagem global de erro. Carregado vira true mesmo
// assim, porque o carregamento terminou.
func (s *Store) FalhaCarga(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baseline = domain.ConjuntoConvenios{}
	s.trabalho = domain.ConjuntoConvenios{}
	s.taxas = nil
	s.nomes = nil
	s.metricas = domain.Metricas{}
	s.carregado = true
	s.erroCarga = "Falha na importação do arquivo: " + err.Error()
}

// Zerar troca a cópia de trabalho por uma versão com os campos numéricos em
// zero, preservando nomes, ordem e cardinalidade. O saldo geral passa a zero;
// o total de convênios não muda.
func (s *Store) Zerar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	zerados := func(origem []domain.Convenio) []domain.Convenio {
		novo := make([]domain.Convenio, len(origem))
		for i, c := range origem {
			novo[i] = domain.Convenio{Nome: c.Nome}
		}
		return novo
	}
	s.trabalho = domain.ConjuntoConvenios{
		Saldo: zerados(s.baseline.Saldo),
		Prazo: zerados(s.baseline.Prazo),
	}

	m := s.metricas
	m.SaldoGeral = 0
	s.metricas = m
}

// Restaurar volta a cópia de trabalho para uma cópia fresca da baseline e
// recalcula o saldo geral a partir dela.
func (s *Store) Restaurar() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trabalho = domain.ConjuntoConvenios{
		Saldo: copiaConvenios(s.baseline.Saldo),
		Prazo: copiaConvenios(s.baseline.Prazo),
	}

	m := s.metricas
	m.SaldoGeral = 0
	for _, c := range s.baseline.Saldo {
		m.SaldoGeral += c.Saldo
	}
	s.metricas = m
}

// Atual devolve uma cópia independente da cópia de trabalho.
func (s *Store) Atual() domain.ConjuntoConvenios {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ConjuntoConvenios{
		Saldo: copiaConvenios(s.trabalho.Saldo),
		Prazo: copiaConvenios(s.trabalho.Prazo),
	}
}

// SaldoGeralAtual devolve o saldo geral da cópia de trabalho vigente.
func (s *Store) SaldoGeralAtual() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricas.SaldoGeral
}

// Metricas devolve o snapshot vigente das métricas do dashboard.
func (s *Store) Metricas() domain.Metricas {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricas
}

// Nomes devolve os nomes únicos de convênio na ordem da primeira ocorrência.
func (s *Store) Nomes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.nomes...)
}

// Taxas devolve as taxas de conclusão por convênio, uma por linha da carga.
func (s *Store) Taxas() []domain.TaxaConclusao {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.TaxaConclusao(nil), s.taxas...)
}

// Estado informa se a carga terminou e qual foi a mensagem global de erro.
func (s *Store) Estado() domain.EstadoCarga {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.EstadoCarga{Carregado: s.carregado, Erro: s.erroCarga}
}

// MatchConvenio localiza na cópia de trabalho o saldo e o prazo do convênio.
// Devolve nil quando o nome não consta no conjunto.
func (s *Store) MatchConvenio(nome string) *domain.DadosConvenio {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dados domain.DadosConvenio
	encontrado := false
	for _, c := range s.trabalho.Saldo {
		if c.Nome == nome {
			saldo := c.Saldo
			dados.Saldo = &saldo
			encontrado = true
			break
		}
	}
	for _, c := range s.trabalho.Prazo {
		if c.Nome == nome {
			prazo := c.Prazo
			dados.Prazo = &prazo
			encontrado = true
			break
		}
	}
	if !encontrado {
		return nil
	}
	return &dados
}

func copiaConvenios(origem []domain.Convenio) []domain.Convenio {
	if origem == nil {
		return nil
	}
	novo := make([]domain.Convenio, len(origem))
	copy(novo, origem)
	return novo
}

func nomesUnicos(registros []domain.Convenio) []string {
	var nomes []string
	vistos := make(map[string]bool, len(registros))
	for _, c := range registros {
		if !vistos[c.Nome] {
			vistos[c.Nome] = true
			nomes = append(nomes, c.Nome)
		}
	}
	return nomes
}
