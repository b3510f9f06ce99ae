package pdf

import "github.com/alejomeek/cotizaciones/internal/domain/quote"

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}
