package domain

import (
	"errors"
	"fmt"
)

// ErrPlanilhaNaoEncontrada indica que a aba obrigatória PLANILHA não existe
// no arquivo carregado.
var ErrPlanilhaNaoEncontrada = errors.New(`a aba "PLANILHA" não foi encontrada`)

// MissingFieldError nomeia o primeiro campo ausente encontrado na montagem do
// payload de avaliação, na ordem fixa do contrato.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("o campo %s está faltando ou é inválido", e.Field)
}

// RemoteError carrega o corpo devolvido por um status não-2xx do serviço de
// avaliação ou de geração de gráficos.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("serviço de avaliação respondeu %d: %s", e.Status, e.Body)
}
