package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/warp/expense-tracker/ledger"
)

// WritePDF renders the report as PDF and streams it to w.
func WritePDF(w io.Writer, txs []ledger.Transaction, initial, current decimal.Decimal, opts Options) (Result, error) {
	c := NewPDFCanvas()
	res, err := Render(c, txs, initial, current, opts)
	if err != nil {
		return res, err
	}
	if err := c.Write(w); err != nil {
		res.Success = false
		return res, fmt.Errorf("write pdf: %w", err)
	}
	return res, nil
}

// SaveFile renders the report as PDF into dir under the generated filename.
// The file is only created once rendering succeeded.
func SaveFile(dir string, txs []ledger.Transaction, initial, current decimal.Decimal, opts Options) (Result, error) {
	var buf bytes.Buffer
	res, err := WritePDF(&buf, txs, initial, current, opts)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Success = false
		return res, fmt.Errorf("create report directory: %w", err)
	}
	res.Path = filepath.Join(dir, res.Filename)
	if err := os.WriteFile(res.Path, buf.Bytes(), 0o644); err != nil {
		res.Success = false
		return res, fmt.Errorf("save report: %w", err)
	}
	return res, nil
}
