package view

import "github.com/shopspring/decimal"

type WalletSummary struct {
	BalanceCents   int64
	PendingCents   int64
	LifetimeCents  int64
	CompletedTasks int
}

type Wallet struct {
	Balance        string   `json:"balance"`
	Pending        string   `json:"pending"`
	Lifetime       string   `json:"lifetime"`
	CompletedTasks int      `json:"completed_tasks"`
	Actions        []Action `json:"actions"`
}

// MockWalletSummary is what the wallet screen shows until payouts exist.
func MockWalletSummary(balanceCents int64) WalletSummary {
	return WalletSummary{
		BalanceCents:  balanceCents,
		LifetimeCents: balanceCents,
	}
}

func WalletScreen(s WalletSummary) Wallet {
	w := Wallet{
		Balance:        FormatCents(s.BalanceCents),
		Pending:        FormatCents(s.PendingCents),
		Lifetime:       FormatCents(s.LifetimeCents),
		CompletedTasks: s.CompletedTasks,
		Actions:        []Action{},
	}
	if s.BalanceCents > 0 {
		w.Actions = append(w.Actions, Action{Kind: "withdraw", Label: "Withdraw", Target: "/wallet/withdraw"})
	}
	return w
}

// FormatCents renders minor units as dollars, e.g. 2450 -> "$24.50".
func FormatCents(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
