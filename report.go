package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"aureus/models"
	"aureus/pkg/ledger"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func monthName(m time.Month) string { return indonesianMonths[int(m)-1] }

func kindLabel(k models.TransactionKind) string {
	switch k {
	case models.TxIncome:
		return "Pemasukan"
	case models.TxExpense:
		return "Pengeluaran"
	default:
		return "Transfer"
	}
}

// formatRupiah groups digits with periods the Indonesian way, "Rp 1.250.000".
func formatRupiah(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var buf bytes.Buffer
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf.WriteByte('.')
		}
		buf.WriteRune(r)
	}
	return sign + "Rp " + buf.String()
}

// MonthlyCSV renders a month's transactions plus totals as CSV for
// spreadsheet import.
func MonthlyCSV(txs []models.Transaction, month time.Month, year int) ([]byte, error) {
	s := ledger.MonthlySummary(txs, month, year)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Tanggal", "Jenis", "Kategori", "Deskripsi", "Jumlah"}}
	for _, t := range s.Transactions {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			kindLabel(t.Kind),
			t.Category,
			t.Description,
			strconv.FormatInt(t.Amount, 10),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"Total Pemasukan", "", "", "", strconv.FormatInt(s.Income, 10)},
		[]string{"Total Pengeluaran", "", "", "", strconv.FormatInt(s.Expense, 10)},
		[]string{"Selisih", "", "", "", strconv.FormatInt(s.Net, 10)},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupiah": formatRupiah,
	"label":  kindLabel,
	"date":   func(t time.Time) string { return t.Format("02-01-2006") },
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Laporan Bulanan {{.Month}} {{.Year}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.3rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; font-size: 0.9rem; }
th { background: #f3f3f3; }
td.num { text-align: right; }
tfoot td { font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>Laporan Bulanan {{.Month}} {{.Year}}</h1>
<p>Dibuat {{date .Generated}} &middot; {{.Summary.Count}} transaksi</p>
<table>
<thead>
<tr><th>Tanggal</th><th>Jenis</th><th>Kategori</th><th>Deskripsi</th><th>Jumlah</th></tr>
</thead>
<tbody>
{{range .Summary.Transactions}}<tr>
<td>{{date .Date}}</td><td>{{label .Kind}}</td><td>{{.Category}}</td><td>{{.Description}}</td><td class="num">{{rupiah .Amount}}</td>
</tr>
{{else}}<tr><td colspan="5">Tidak ada transaksi</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Total Pemasukan</td><td class="num">{{rupiah .Summary.Income}}</td></tr>
<tr><td colspan="4">Total Pengeluaran</td><td class="num">{{rupiah .Summary.Expense}}</td></tr>
<tr><td colspan="4">Selisih</td><td class="num">{{rupiah .Summary.Net}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

type reportPage struct {
	Month     string
	Year      int
	Generated time.Time
	Summary   ledger.Summary
}

// MonthlyHTML renders the printable monthly report page.
func MonthlyHTML(txs []models.Transaction, month time.Month, year int, now time.Time) ([]byte, error) {
	page := reportPage{
		Month:     monthName(month),
		Year:      year,
		Generated: now,
		Summary:   ledger.MonthlySummary(txs, month, year),
	}
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
