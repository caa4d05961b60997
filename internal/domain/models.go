// package domain/models.go
package domain

// Convenio representa uma linha da aba PLANILHA em uma das visões do
// dashboard: a visão de saldo preenche Saldo, a visão de prazo preenche Prazo.
type Convenio struct {
	Nome  string  `json:"convenio"`
	Saldo float64 `json:"saldo"`
	Prazo float64 `json:"prazo"`
}

// TaxaConclusao associa um convênio à sua taxa de conclusão em percentual.
// A faixa 0-100 é esperada mas não validada na carga.
type TaxaConclusao struct {
	Nome string  `json:"convenio"`
	Taxa float64 `json:"taxa"`
}

// EquipamentoResumo agrega a aba opcional de equipamentos.
type EquipamentoResumo struct {
	ValorTotal float64 `json:"total_ativos_valor"`
	IdadeMedia float64 `json:"idade_media_ativos"`
}

// Metricas são os agregados exibidos na Home do dashboard. Recalculadas por
// inteiro a cada mudança do conjunto de dados, nunca remendadas campo a campo.
type Metricas struct {
	TotalConvenios     int     `json:"total_convenios"`
	SaldoGeral         float64 `json:"saldo_geral"`
	MediaTaxaConclusao float64 `json:"media_taxa_conclusao"`
	TotalAtivosValor   float64 `json:"total_ativos_valor"`
	IdadeMediaAtivos   float64 `json:"idade_media_ativos"`
}

// ConjuntoConvenios guarda as duas visões paralelas (saldo e prazo) de uma
// carga. As duas listas têm sempre o mesmo tamanho e a mesma ordem de nomes.
type ConjuntoConvenios struct {
	Saldo []Convenio `json:"saldo"`
	Prazo []Convenio `json:"prazo"`
}

// PlanilhaResult é o resultado bruto de uma ingestão bem-sucedida.
type PlanilhaResult struct {
	Saldo        []Convenio
	Prazo        []Convenio
	Taxas        []TaxaConclusao
	Equipamentos EquipamentoResumo
}

// EstadoCarga reflete o ciclo de vida da ingestão: Carregado vira true assim
// que a carga termina, com ou sem sucesso, e Erro guarda a mensagem global.
type EstadoCarga struct {
	Carregado bool   `json:"carregado"`
	Erro      string `json:"erro,omitempty"`
}

// FormularioProjeto é a entrada crua do formulário de avaliação. Os campos
// numéricos chegam como texto e só são convertidos na validação.
type FormularioProjeto struct {
	Projeto       string `json:"projeto"`
	Valor         string `json:"valor"`
	Prazo         string `json:"prazo"`
	TipoAquisicao string `json:"tipo_aquisicao"`
	TaxaConclusao string `json:"taxa_conclusao"`
}

// ProjetoSubmissao é o formulário já validado e tipado.
type ProjetoSubmissao struct {
	Projeto       string  `json:"projeto"`
	Valor         float64 `json:"valor"`
	Prazo         float64 `json:"prazo"`
	TipoAquisicao string  `json:"tipo_aquisicao"`
	TaxaConclusao float64 `json:"taxa_conclusao"`
}

// DadosConvenio são os valores da cópia de trabalho usados na avaliação.
// Ponteiros distinguem valor zero de valor ausente.
type DadosConvenio struct {
	Saldo *float64 `json:"saldo"`
	Prazo *float64 `json:"prazo"`
}

// AvaliacaoPayload é o corpo enviado ao serviço externo de avaliação fuzzy.
type AvaliacaoPayload struct {
	SaldoConvenio float64 `json:"saldo_convenio"`
	PrazoConvenio float64 `json:"prazo_convenio"`
	ValorProjeto  float64 `json:"valor_projeto"`
	PrazoProjeto  float64 `json:"prazo_projeto"`
	TaxaConclusao float64 `json:"taxa_conclusao"`
}

// AvaliacaoDetalhes traz os percentuais calculados pelo serviço de avaliação.
// Versões antigas do serviço chamam o percentual de custo de percentual_saldo.
type AvaliacaoDetalhes struct {
	PercentualCusto *float64 `json:"percentual_custo,omitempty"`
	PercentualSaldo *float64 `json:"percentual_saldo,omitempty"`
	PercentualPrazo *float64 `json:"percentual_prazo,omitempty"`
}

// AvaliacaoResultado é a resposta do POST /avaliar do serviço externo.
type AvaliacaoResultado struct {
	Classificacao string             `json:"classificacao"`
	NivelSucesso  float64            `json:"nivel_sucesso"`
	Recomendacoes string             `json:"recomendacoes"`
	Detalhes      *AvaliacaoDetalhes `json:"detalhes,omitempty"`
}

// GraficoResultado é a resposta do POST /gerar-grafico do serviço externo.
type GraficoResultado struct {
	FilePath string `json:"file_path"`
}
