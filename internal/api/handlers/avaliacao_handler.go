// internal/api/handlers/avaliacao_handler.go
package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"convenios-service/internal/api/responses"
	"convenios-service/internal/core/avaliacao"
	"convenios-service/internal/core/dataset"
	"convenios-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// AvaliacaoHandler valida submissões de projeto e as encaminha ao serviço
// externo de avaliação fuzzy.
type AvaliacaoHandler struct {
	store  *dataset.Store
	client *avaliacao.Client
}

// NewAvaliacaoHandler cria um novo handler de avaliação.
func NewAvaliacaoHandler(store *dataset.Store, client *avaliacao.Client) *AvaliacaoHandler {
	return &AvaliacaoHandler{
		store:  store,
		client: client,
	}
}

// HandleAvaliar valida o formulário, monta o payload com os dados do convênio
// escolhido e consulta o POST /avaliar do serviço externo.
func (h *AvaliacaoHandler) HandleAvaliar(c *gin.Context) {
	payload, ok := h.montarPayload(c)
	if !ok {
		return
	}

	resultado, err := h.client.Avaliar(c.Request.Context(), payload)
	if err != nil {
		h.responderErroRemoto(c, "Erro ao realizar avaliação", err)
		return
	}

	responses.Success(c, resultado, "Avaliação concluída com sucesso")
}

// HandleGerarGrafico encaminha o mesmo payload ao POST /gerar-grafico e
// devolve o caminho e o nome do arquivo gerado.
func (h *AvaliacaoHandler) HandleGerarGrafico(c *gin.Context) {
	payload, ok := h.montarPayload(c)
	if !ok {
		return
	}

	resultado, err := h.client.GerarGrafico(c.Request.Context(), payload)
	if err != nil {
		h.responderErroRemoto(c, "Erro ao gerar gráfico", err)
		return
	}

	responses.Success(c, gin.H{
		"file_path": resultado.FilePath,
		"filename":  path.Base(resultado.FilePath),
	}, "Gráfico gerado com sucesso")
}

// HandleDownloadGrafico repassa o binário do gráfico gerado pelo serviço
// externo como download.
func (h *AvaliacaoHandler) HandleDownloadGrafico(c *gin.Context) {
	nomeArquivo := c.Param("filename")
	if nomeArquivo == "" || strings.ContainsAny(nomeArquivo, `/\`) || strings.Contains(nomeArquivo, "..") {
		responses.Error(c, http.StatusBadRequest, "Nome de arquivo inválido")
		return
	}

	conteudo, contentType, err := h.client.DownloadGrafico(c.Request.Context(), nomeArquivo)
	if err != nil {
		var remoto *domain.RemoteError
		if errors.As(err, &remoto) && remoto.Status == http.StatusNotFound {
			responses.Error(c, http.StatusNotFound, "Arquivo não encontrado")
			return
		}
		h.responderErroRemoto(c, "Erro ao baixar o gráfico", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+nomeArquivo)
	c.Data(http.StatusOK, contentType, conteudo)
}

// montarPayload concentra o caminho comum de avaliação e gráfico: bind do
// formulário, validação campo a campo e montagem do payload do contrato.
func (h *AvaliacaoHandler) montarPayload(c *gin.Context) (domain.AvaliacaoPayload, bool) {
	var form domain.FormularioProjeto
	if err := c.ShouldBindJSON(&form); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return domain.AvaliacaoPayload{}, false
	}

	sub, erros := avaliacao.Validate(form, h.store.Nomes())
	if len(erros) > 0 {
		responses.ValidationError(c, erros)
		return domain.AvaliacaoPayload{}, false
	}

	dados := h.store.MatchConvenio(sub.TipoAquisicao)
	payload, err := avaliacao.BuildPayload(dados, &sub)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return domain.AvaliacaoPayload{}, false
	}
	return payload, true
}

func (h *AvaliacaoHandler) responderErroRemoto(c *gin.Context, mensagem string, err error) {
	var remoto *domain.RemoteError
	if errors.As(err, &remoto) {
		responses.Error(c, http.StatusBadGateway, mensagem, remoto.Body)
		return
	}
	responses.Error(c, http.StatusBadGateway, mensagem, err.Error())
}
