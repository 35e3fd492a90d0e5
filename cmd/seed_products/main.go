// seed_products genera un script SQL para poblar el catálogo de productos a partir de un CSV
// con columnas: title;unitOfMeasurement;materialType;description (description opcional).
// Acepta archivos UTF-8 o ISO-8859-1 (exportaciones de Excel), separados por ';' o ','.
//
// Uso: go run ./cmd/seed_products [ruta/productos.csv] [salida.sql]
// Por defecto lee productos.csv y escribe seed_products.sql en la raíz del módulo.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "seed_products.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	products, rejected, err := parseCatalog(raw, validator.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, r := range rejected {
		fmt.Fprintf(os.Stderr, "línea %d omitida: %s\n", r.line, r.reason)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d filas omitidas\n", outPath, len(products), len(rejected))
}

type rejectedRow struct {
	line   int
	reason string
}

// parseCatalog decodifica el CSV, normaliza y valida cada fila como un alta de producto.
// Los títulos repetidos dentro del archivo se omiten.
func parseCatalog(raw []byte, v *validator.Validator) ([]dto.ProductRequest, []rejectedRow, error) {
	var r io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectComma(raw)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var out []dto.ProductRequest
	var rejected []rejectedRow
	seen := map[string]bool{}
	for i, rec := range records {
		line := i + 1
		if i == 0 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "title") {
			continue
		}
		if len(rec) < 3 {
			rejected = append(rejected, rejectedRow{line, "se esperaban al menos 3 columnas"})
			continue
		}
		req := dto.ProductRequest{Title: rec[0], UnitOfMeasurement: rec[1], MaterialType: rec[2]}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			desc := rec[3]
			req.Description = &desc
		}
		req.Clean()
		if errs := v.Validate(req); errs != nil {
			rejected = append(rejected, rejectedRow{line, errs[0].Field + ": " + errs[0].Message})
			continue
		}
		if seen[req.Title] {
			rejected = append(rejected, rejectedRow{line, "título repetido"})
			continue
		}
		seen[req.Title] = true
		out = append(out, req)
	}
	return out, rejected, nil
}

func detectComma(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte(";")) >= bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

// writeSQL escribe un INSERT por producto que no duplica títulos ya cargados.
func writeSQL(w io.Writer, products []dto.ProductRequest) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos\n-- Generado por cmd/seed_products\n\n")
	for _, p := range products {
		desc := "NULL"
		if p.Description != nil {
			desc = "'" + escapeSQL(*p.Description) + "'"
		}
		fmt.Fprintf(&b, "INSERT INTO products (id, title, description, unit_of_measurement, material_type)\n")
		fmt.Fprintf(&b, "SELECT '%s', '%s', %s, '%s', '%s'\n",
			uuid.NewString(), escapeSQL(p.Title), desc, escapeSQL(p.UnitOfMeasurement), escapeSQL(p.MaterialType))
		fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = '%s');\n", escapeSQL(p.Title))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
