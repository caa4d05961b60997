package avaliacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"convenios-service/internal/domain"
)

// Client consome o serviço externo de avaliação fuzzy. O contrato é fixo:
// POST /avaliar, POST /gerar-grafico e GET /download-grafico/{filename};
// qualquer status não-2xx devolve o corpo da resposta como detalhe do erro.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient cria um cliente para o serviço de avaliação.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BuildPayload monta o corpo enviado ao serviço de avaliação, verificando os
// campos na ordem fixa do contrato antes de qualquer chamada de rede.
func BuildPayload(conv *domain.DadosConvenio, sub *domain.ProjetoSubmissao) (domain.AvaliacaoPayload, error) {
	var payload domain.AvaliacaoPayload

	if conv == nil || conv.Saldo == nil {
		return payload, &domain.MissingFieldError{Field: "saldo_convenio"}
	}
	if conv.Prazo == nil {
		return payload, &domain.MissingFieldError{Field: "prazo_convenio"}
	}
	if sub == nil {
		return payload, &domain.MissingFieldError{Field: "valor_projeto"}
	}

	payload = domain.AvaliacaoPayload{
		SaldoConvenio: *conv.Saldo,
		PrazoConvenio: *conv.Prazo,
		ValorProjeto:  sub.Valor,
		PrazoProjeto:  sub.Prazo,
		TaxaConclusao: sub.TaxaConclusao,
	}
	return payload, nil
}

// Avaliar envia o payload ao POST /avaliar e devolve o resultado da avaliação.
func (c *Client) Avaliar(ctx context.Context, payload domain.AvaliacaoPayload) (*domain.AvaliacaoResultado, error) {
	var resultado domain.AvaliacaoResultado
	if err := c.post(ctx, "/avaliar", payload, &resultado); err != nil {
		return nil, err
	}
	return &resultado, nil
}

// GerarGrafico envia o payload ao POST /gerar-grafico e devolve o caminho do
// arquivo gerado.
func (c *Client) GerarGrafico(ctx context.Context, payload domain.AvaliacaoPayload) (*domain.GraficoResultado, error) {
	var resultado domain.GraficoResultado
	if err := c.post(ctx, "/gerar-grafico", payload, &resultado); err != nil {
		return nil, err
	}
	return &resultado, nil
}

// DownloadGrafico baixa o artefato binário do gráfico gerado e devolve o
// conteúdo com o content type informado pelo serviço.
func (c *Client) DownloadGrafico(ctx context.Context, filename string) ([]byte, string, error) {
	endereco := c.baseURL + "/download-grafico/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endereco, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao contatar o serviço de avaliação: %w", err)
	}
	defer resp.Body.Close()

	corpo, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler a resposta do serviço de avaliação: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &domain.RemoteError{Status: resp.StatusCode, Body: string(corpo)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return corpo, contentType, nil
}

func (c *Client) post(ctx context.Context, caminho string, in, out any) error {
	corpo, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+caminho, bytes.NewReader(corpo))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao contatar o serviço de avaliação: %w", err)
	}
	defer resp.Body.Close()

	resposta, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler a resposta do serviço de avaliação: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteError{Status: resp.StatusCode, Body: string(resposta)}
	}

	if err := json.Unmarshal(resposta, out); err != nil {
		return fmt.Errorf("resposta inválida do serviço de avaliação: %w", err)
	}
	return nil
}
