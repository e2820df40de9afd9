package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acervo/expedientes-api/internal/application/dto"
)

func TestPageRequest_Normalizar(t *testing.T) {
	casos := []struct {
		nombre    string
		in        dto.PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults con ceros", dto.PageRequest{}, 1, 20},
		{"negativos", dto.PageRequest{Page: -3, Limit: -10}, 1, 20},
		{"limite por encima del tope", dto.PageRequest{Page: 2, Limit: 500}, 2, 100},
		{"valores validos se respetan", dto.PageRequest{Page: 4, Limit: 50}, 4, 50},
		{"limite en el tope exacto", dto.PageRequest{Page: 1, Limit: 100}, 1, 100},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			p := c.in
			p.Normalizar()
			assert.Equal(t, c.wantPage, p.Page)
			assert.Equal(t, c.wantLimit, p.Limit)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := dto.PageRequest{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())

	p = dto.PageRequest{Page: 1, Limit: 20}
	assert.Equal(t, 0, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := dto.NewPagination(2, 20, 45)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 20, pg.Limit)
	assert.Equal(t, 45, pg.TotalItems)
	assert.Equal(t, 3, pg.TotalPages, "45 filas con límite 20 son 3 páginas")

	pg = dto.NewPagination(1, 20, 0)
	assert.Equal(t, 0, pg.TotalPages, "sin filas no hay páginas")

	pg = dto.NewPagination(1, 20, 20)
	assert.Equal(t, 1, pg.TotalPages)
}
