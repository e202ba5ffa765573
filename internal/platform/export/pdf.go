package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
)

// PDFContentType is the MIME type of rendered reports.
const PDFContentType = "application/pdf"

// ErrRendererDisabled is returned when no Gotenberg endpoint is configured.
var ErrRendererDisabled = fmt.Errorf("pdf rendering is not configured: %w", apperrors.ErrStoreUnavailable)

var reportTemplate = template.Must(template.New("stock-opname").Funcs(template.FuncMap{
	"qty": opname.FormatQuantity,
}).Parse(reportHTML))

// GotenbergRenderer turns reports into PDF through a Gotenberg chromium endpoint.
type GotenbergRenderer struct {
	Endpoint string
	Client   *http.Client
}

// NewGotenbergRenderer creates a renderer. An empty endpoint disables rendering.
func NewGotenbergRenderer(endpoint string) *GotenbergRenderer {
	return &GotenbergRenderer{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// RenderStockReport renders the report letterhead and table to PDF.
func (r *GotenbergRenderer) RenderStockReport(ctx context.Context, report *domain.StockReport) ([]byte, error) {
	if r == nil || r.Endpoint == "" {
		return nil, ErrRendererDisabled
	}
	html, err := StockReportHTML(report)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(html); err != nil {
		return nil, err
	}
	for field, value := range map[string]string{"landscape": "true", "printBackground": "true"} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("gotenberg request failed: %w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("render failed with status %d: %w", resp.StatusCode, apperrors.ErrStoreUnavailable)
	}
	return io.ReadAll(resp.Body)
}

// StockReportHTML renders the printable HTML document of a report.
func StockReportHTML(report *domain.StockReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.StockReport
		Totals opname.ReportTotals
	}{report, opname.SumRows(report.Rows)}
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.Bytes(), nil
}

const reportHTML = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Laporan Stock Opname {{.CutoffDate}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 10px; }
.letterhead { text-align: center; border-bottom: 3px double #000; margin-bottom: 12px; }
.letterhead h1 { font-size: 16px; margin: 0; }
table.report { width: 100%; border-collapse: collapse; }
table.report th, table.report td { border: 1px solid #000; padding: 3px; }
td.num { text-align: right; }
.signatures { width: 100%; margin-top: 32px; }
.signatures td { width: 50%; text-align: center; vertical-align: top; }
.signatures .name { padding-top: 56px; font-weight: bold; text-decoration: underline; }
</style>
</head>
<body>
<div class="letterhead">
<h1>{{.Officials.OfficeName}}</h1>
<p>{{.Officials.OfficeAddress}}</p>
</div>
<h2 style="text-align:center">LAPORAN STOCK OPNAME OBAT<br>Per tanggal {{.CutoffDate}}</h2>
<table class="report">
<thead>
<tr><th rowspan="2">No</th><th rowspan="2">Nama Obat</th><th rowspan="2">Satuan</th><th rowspan="2">Kedaluwarsa</th>
<th colspan="3">Awal</th><th colspan="3">Masuk</th><th colspan="3">Keluar</th><th colspan="3">Akhir</th><th rowspan="2">Keterangan</th></tr>
<tr><th>B</th><th>R</th><th>J</th><th>B</th><th>R</th><th>J</th><th>B</th><th>R</th><th>J</th><th>B</th><th>R</th><th>J</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.No}}</td><td>{{.MedicineName}}</td><td>{{.UnitOfMeasure}}</td><td>{{.ExpiryDate}}</td>
<td class="num">{{qty .PriorGood}}</td><td class="num">{{qty .PriorDamaged}}</td><td class="num">{{qty .PriorTotal}}</td>
<td class="num">{{qty .InGood}}</td><td class="num">{{qty .InDamaged}}</td><td class="num">{{qty .InTotal}}</td>
<td class="num">{{qty .OutGood}}</td><td class="num">{{qty .OutDamaged}}</td><td class="num">{{qty .OutTotal}}</td>
<td class="num">{{qty .EndingGood}}</td><td class="num">{{qty .EndingDamaged}}</td><td class="num">{{qty .EndingTotal}}</td>
<td>{{.Notes}}</td></tr>
{{else}}<tr><td colspan="17" style="text-align:center">Tidak ada data</td></tr>
{{end}}<tr><th colspan="4">JUMLAH</th>
<td></td><td></td><td class="num">{{qty .Totals.PriorTotal}}</td>
<td></td><td></td><td class="num">{{qty .Totals.InTotal}}</td>
<td></td><td></td><td class="num">{{qty .Totals.OutTotal}}</td>
<td class="num">{{qty .Totals.EndingGood}}</td><td class="num">{{qty .Totals.EndingDmg}}</td><td class="num">{{qty .Totals.EndingTotal}}</td><td></td></tr>
</tbody>
</table>
<table class="signatures"><tr>
<td>Mengetahui,<div class="name">{{.Officials.HeadOfficialName}}</div>{{with .Officials.HeadOfficialNIP}}NIP. {{.}}{{end}}</td>
<td>Pengurus Barang,<div class="name">{{.Officials.KeeperOfficialName}}</div>{{with .Officials.KeeperOfficialNIP}}NIP. {{.}}{{end}}</td>
</tr></table>
</body>
</html>
`
