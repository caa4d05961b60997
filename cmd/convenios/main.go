// cmd/convenios/main.go
package main

import (
	"log"
	"os"

	"convenios-service/internal/api/handlers"
	"convenios-service/internal/api/responses"
	"convenios-service/internal/config"
	"convenios-service/internal/core/avaliacao"
	"convenios-service/internal/core/dataset"
	"convenios-service/internal/core/planilha"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()
	cfg := config.Load()

	store := dataset.NewStore()
	carregarPlanilha(store, planilha.NewService(), cfg.WorkbookPath)

	client := avaliacao.NewClient(cfg.AvaliacaoURL, cfg.AvaliacaoTimeout)

	dashboardHandler := handlers.NewDashboardHandler(store)
	avaliacaoHandler := handlers.NewAvaliacaoHandler(store, client)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/dashboard/metricas", dashboardHandler.HandleMetricas)
		apiV1.GET("/dashboard/series", dashboardHandler.HandleSeries)
		apiV1.POST("/dashboard/zerar", dashboardHandler.HandleZerar)
		apiV1.POST("/dashboard/restaurar", dashboardHandler.HandleRestaurar)
		apiV1.GET("/dashboard/exportar", dashboardHandler.HandleExportar)
		apiV1.GET("/convenios", dashboardHandler.HandleConvenios)
		apiV1.POST("/avaliacoes", avaliacaoHandler.HandleAvaliar)
		apiV1.POST("/avaliacoes/grafico", avaliacaoHandler.HandleGerarGrafico)
		apiV1.GET("/avaliacoes/grafico/:filename", avaliacaoHandler.HandleDownloadGrafico)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "convenios-service"})
	})

	log.Printf("🚀 Convenios Service (Go) iniciado e escutando na porta %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de convênios: ", err)
	}
}

// carregarPlanilha faz a ingestão única de inicialização. Uma falha não
// derruba o serviço: o conjunto fica vazio, as métricas zeradas e a mensagem
// de erro registrada para os consumidores.
func carregarPlanilha(store *dataset.Store, ingestor planilha.Service, caminho string) {
	arquivo, err := os.Open(caminho)
	if err != nil {
		log.Printf("Erro ao processar o arquivo: %v", err)
		store.FalhaCarga(err)
		return
	}
	defer arquivo.Close()

	resultado, err := ingestor.Ingest(arquivo)
	if err != nil {
		log.Printf("Erro ao processar o arquivo: %v", err)
		store.FalhaCarga(err)
		return
	}

	store.Load(resultado)
	log.Printf("Planilha carregada: %d convênios", store.Metricas().TotalConvenios)
}
