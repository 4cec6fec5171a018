package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
)

var _ repository.BaselineSource = (*CSVSource)(nil)

// CSVSource lee el baseline desde un CSV con encabezado.
// Encoding vacío o "utf-8" = sin transcodificar; otros nombres WHATWG
// ("windows-1252", "iso-8859-1", ...) se decodifican a UTF-8.
type CSVSource struct {
	name     string
	open     Opener
	encoding string
}

// NewCSVSource construye la fuente. name se usa en errores y logs.
func NewCSVSource(name string, open Opener, enc string) *CSVSource {
	return &CSVSource{name: name, open: open, encoding: enc}
}

func (s *CSVSource) Name() string { return s.name }

// Load abre, decodifica y parsea el archivo completo.
func (s *CSVSource) Load(ctx context.Context) ([]entity.InventoryRecord, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, err)
	}
	defer rc.Close()

	r, err := decodeReader(rc, s.encoding)
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewDataLoadError(s.name, fmt.Errorf("leer CSV: %w", err))
	}
	return parseTable(s.name, rows)
}

func decodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(n)
	if err != nil {
		return nil, fmt.Errorf("codificación no soportada %q: %w", name, err)
	}
	return enc, nil
}
