package view

import "strings"

const (
	AppTitle          = "TaskMarket"
	SearchPlaceholder = "Search tasks..."
)

type HeaderProps struct {
	Title    string
	ShowBack bool
	Query    string
}

type SearchBox struct {
	Placeholder string `json:"placeholder"`
	Query       string `json:"query"`
	Target      string `json:"target"`
}

type NavItem struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Target string `json:"target"`
}

type Header struct {
	Title  string    `json:"title"`
	Back   *Action   `json:"back,omitempty"`
	Search SearchBox `json:"search"`
	Nav    []NavItem `json:"nav"`
}

func GlobalHeader(p HeaderProps) Header {
	h := Header{
		Title: strings.TrimSpace(p.Title),
		Search: SearchBox{
			Placeholder: SearchPlaceholder,
			Query:       strings.TrimSpace(p.Query),
			Target:      "/api/tasks",
		},
		Nav: []NavItem{
			{Label: "Wallet", Icon: "wallet", Target: "/wallet"},
			{Label: "Profile", Icon: "person", Target: "/profile"},
		},
	}
	if h.Title == "" {
		h.Title = AppTitle
	}
	if p.ShowBack {
		h.Back = &Action{Kind: "back", Label: "Back"}
	}
	return h
}
