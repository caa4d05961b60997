package dataset

import "convenios-service/internal/domain"

// Aggregate reduz os registros normalizados nas métricas do dashboard.
// Determinística e sem efeitos colaterais.
func Aggregate(saldo []domain.Convenio, taxas []domain.TaxaConclusao, equip domain.EquipamentoResumo) domain.Metricas {
	m := domain.Metricas{
		TotalConvenios:   len(saldo),
		TotalAtivosValor: equip.ValorTotal,
		IdadeMediaAtivos: equip.IdadeMedia,
	}

	for _, c := range saldo {
		m.SaldoGeral += c.Saldo
	}

	// a média considera todas as linhas, inclusive as que assumiram taxa zero
	// na carga; convênios sem a coluna puxam a média para baixo
	if len(taxas) > 0 {
		var soma float64
		for _, t := range taxas {
			soma += t.Taxa
		}
		m.MediaTaxaConclusao = soma / float64(len(taxas))
	}

	return m
}
