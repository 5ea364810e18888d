package main

import (
	"time"

	"github.com/google/uuid"

	"aureus/models"
)

// Seed data used on first run or when the persisted state is unreadable.

var categoryColors = []string{
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#95E1D3", "#F38181",
	"#AA96DA", "#FCBAD3", "#A8D8EA", "#FFB6B9", "#D4A5A5",
}

var subscriptionColors = []string{
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#AA96DA", "#FCBAD3", "#A8D8EA",
}

func defaultWallets(now time.Time) []models.Wallet {
	return []models.Wallet{{
		ID:        uuid.NewString(),
		Name:      "Tunai",
		Kind:      models.WalletCash,
		Currency:  "IDR",
		Color:     "#4ECDC4",
		Icon:      "💵",
		CreatedAt: now,
	}}
}

func defaultCategories(now time.Time) []models.Category {
	expense := []struct{ name, icon string }{
		{"Makanan & Minuman", "🍔"},
		{"Transportasi", "🚗"},
		{"Belanja", "🛍️"},
		{"Tagihan", "📱"},
		{"Kesehatan", "⚕️"},
		{"Hiburan", "🎮"},
		{"Pendidikan", "📚"},
		{"Rumah Tangga", "🏠"},
		{"Komunikasi", "📞"},
		{"Langganan", "🎫"},
		{"Lainnya", "🎪"},
	}
	income := []struct{ name, icon string }{
		{"Gaji", "💰"},
		{"Bonus", "🎁"},
		{"Penjualan", "🏷️"},
		{"Investasi", "📈"},
		{"Freelance", "💻"},
		{"Pemasukan Lain", "🪙"},
	}

	var out []models.Category
	add := func(name, icon string, kind models.TransactionKind, i int) {
		out = append(out, models.Category{
			ID:        uuid.NewString(),
			Name:      name,
			Kind:      kind,
			Color:     categoryColors[i%len(categoryColors)],
			Icon:      icon,
			IsCustom:  false,
			CreatedAt: now,
		})
	}
	for i, c := range expense {
		add(c.name, c.icon, models.TxExpense, i)
	}
	for i, c := range income {
		add(c.name, c.icon, models.TxIncome, i)
	}
	return out
}
