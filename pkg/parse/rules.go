package parse

import (
	"regexp"
	"strings"

	"aureus/models"
)

// Income-indicating keywords. Any hit marks the utterance as income; no hit
// defaults to expense. Transfers are never inferred from text.
var incomeKeywords = []string{
	"dapat", "dapet",
	"terima",
	"gaji",
	"bonus",
	"untung",
	"hasil",
	"jual",
	"pendapatan",
	"masuk",
	"dibayar",
	"cuan",
	"nemu", "nemuin",
	"dikasih", "dikasi", "kasih",
	"hadiah",
	"menang",
	"transfer masuk",
}

// InferKind classifies the utterance direction from its keywords alone. The
// classification never depends on amount or category.
func InferKind(text string) models.TransactionKind {
	low := strings.ToLower(text)
	for _, kw := range incomeKeywords {
		if strings.Contains(low, kw) {
			return models.TxIncome
		}
	}
	return models.TxExpense
}

// categoryRule is one (predicate, result) pair of the cascade. Rules are
// evaluated top to bottom, first match wins, so priority is data rather than
// control flow.
type categoryRule struct {
	Name string
	re   *regexp.Regexp
}

func rule(name, words string) categoryRule {
	return categoryRule{Name: name, re: regexp.MustCompile(`(?i)\b(` + words + `)\b`)}
}

var expenseRules = []categoryRule{
	rule("Makanan & Minuman", `makan|nasi|ayam|bebek|soto|bakso|mie|kopi|teh|jus|minuman|restoran|warung|cafe|geprek|padang|burger|pizza|snack|jajan|kue|roti|sarapan|lunch|dinner|malam|siang|pagi`),
	rule("Transportasi", `bensin|ojek|grab|gojek|taxi|bus|kereta|krl|mrt|parkir|tol|motor|mobil|servis|bengkel|ban|oli|driver|uber|maxim|indrive|angkot`),
	rule("Belanja", `beli|belanja|shopping|mall|toko|pasar|supermarket|indomaret|alfamart|toped|tokopedia|shopee|lazada|bukalapak|baju|celana|sepatu|tas|aksesoris|skincare|makeup`),
	rule("Tagihan", `listrik|air|pdam|telepon|internet|wifi|pulsa|token|pln|tagihan|bpjs|asuransi|cicilan|kredit|hutang|pinjaman|sewa|kos|kontrakan`),
	rule("Kesehatan", `dokter|rumah sakit|obat|vitamin|kesehatan|medical|apotek|klinik|periksa|gigi|mata|checkup|imunisasi|vaksin`),
	rule("Hiburan", `bioskop|game|streaming|netflix|spotify|youtube|hiburan|nonton|wisata|jalan|liburan|hotel|staycation|konser|tiket|musik|hobi`),
	rule("Pendidikan", `sekolah|kuliah|kursus|les|buku|pendidikan|training|seminar|webinar|workshop|spp|uang gedung|seragam|alat tulis`),
	rule("Rumah Tangga", `sabun|sampo|tissue|deterjen|pembersih|rumah tangga|galon|gas|elpiji|baterai|lampu|perabot|renovasi|tukang`),
	rule("Komunikasi", `paket|kuota|data|sim card|kartu perdana`),
}

var incomeRules = []categoryRule{
	rule("Gaji", `gaji|salary|payday|bayaran|upah`),
	rule("Bonus", `bonus|thr|hadiah|reward|insentif`),
	rule("Penjualan", `jual|sold|laku|dagang|transaksi|toko`),
	rule("Investasi", `investasi|saham|reksadana|crypto|dividen|profit|bunga|deposito`),
	rule("Freelance", `freelance|proyek|project|side job|ceperan|nulis|desain|coding`),
}

const (
	fallbackExpenseCategory = "Lainnya"
	fallbackIncomeCategory  = "Pemasukan Lain"
)

// InferCategory runs the direction-specific rule cascade over the text. The
// keyword lists are deliberately broad (brands, slang, common nouns) to favor
// recall over precision; a miss falls to the direction's "other" bucket.
func InferCategory(text string, kind models.TransactionKind) string {
	rules := expenseRules
	fallback := fallbackExpenseCategory
	if kind == models.TxIncome {
		rules = incomeRules
		fallback = fallbackIncomeCategory
	}
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.Name
		}
	}
	return fallback
}
