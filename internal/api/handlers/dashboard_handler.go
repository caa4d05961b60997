// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"convenios-service/internal/api/responses"
	"convenios-service/internal/core/dataset"

	"github.com/gin-gonic/gin"
)

// DashboardHandler lida com as requisições de métricas e séries do dashboard.
type DashboardHandler struct {
	store *dataset.Store
}

// NewDashboardHandler cria um novo handler do dashboard.
func NewDashboardHandler(store *dataset.Store) *DashboardHandler {
	return &DashboardHandler{
		store: store,
	}
}

// HandleMetricas devolve as métricas agregadas e o estado da carga. As
// métricas saem zeradas junto com a mensagem de erro quando a carga falhou.
func (h *DashboardHandler) HandleMetricas(c *gin.Context) {
	estado := h.store.Estado()
	responses.Success(c, gin.H{
		"metricas":  h.store.Metricas(),
		"carregado": estado.Carregado,
		"erro":      estado.Erro,
	}, "Métricas do dashboard")
}

// HandleSeries devolve as séries de saldo e prazo da cópia de trabalho.
func (h *DashboardHandler) HandleSeries(c *gin.Context) {
	atual := h.store.Atual()
	responses.Success(c, gin.H{
		"saldo":       atual.Saldo,
		"prazo":       atual.Prazo,
		"saldo_geral": h.store.SaldoGeralAtual(),
	}, "Séries dos gráficos")
}

// HandleConvenios devolve a lista única de convênios, na ordem da primeira
// ocorrência, junto com as taxas de conclusão por linha.
func (h *DashboardHandler) HandleConvenios(c *gin.Context) {
	estado := h.store.Estado()
	if estado.Erro != "" {
		responses.Error(c, http.StatusServiceUnavailable, estado.Erro)
		return
	}
	responses.Success(c, gin.H{
		"convenios":       h.store.Nomes(),
		"taxas_conclusao": h.store.Taxas(),
	}, "Convênios carregados")
}

// HandleZerar zera os campos numéricos da cópia de trabalho, mantendo nomes e
// ordenação. A contagem de convênios não muda.
func (h *DashboardHandler) HandleZerar(c *gin.Context) {
	h.store.Zerar()
	responses.Success(c, gin.H{"saldo_geral": h.store.SaldoGeralAtual()}, "Dados dos gráficos zerados")
}

// HandleRestaurar volta a cópia de trabalho para os dados originais da carga.
func (h *DashboardHandler) HandleRestaurar(c *gin.Context) {
	h.store.Restaurar()
	responses.Success(c, gin.H{"saldo_geral": h.store.SaldoGeralAtual()}, "Dados originais restaurados")
}

// HandleExportar baixa a cópia de trabalho como CSV (separador ';',
// Windows-1252), no formato aceito pelas planilhas contábeis.
func (h *DashboardHandler) HandleExportar(c *gin.Context) {
	saida, err := dataset.ExportCSV(h.store.Atual())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o CSV de convênios", err.Error())
		return
	}

	nomeArquivo := fmt.Sprintf("Convenios_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+nomeArquivo)
	c.Data(http.StatusOK, "text/csv; charset=windows-1252", saida)
}
