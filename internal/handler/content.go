package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/view"
	"github.com/BuzzLyutic/task-market/pkg/respond"
)

// ContentHandler serves the static screens: header, legal modals and wallet.
type ContentHandler struct {
	walletBalanceCents int64
	logger             *zap.Logger
}

func NewContentHandler(walletBalanceCents int64, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		walletBalanceCents: walletBalanceCents,
		logger:             logger,
	}
}

func (h *ContentHandler) Header(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respond.JSON(w, r, http.StatusOK, view.GlobalHeader(view.HeaderProps{
		Title:    q.Get("title"),
		ShowBack: q.Get("back") == "true",
		Query:    q.Get("q"),
	}))
}

func (h *ContentHandler) Legal(w http.ResponseWriter, r *http.Request) {
	doc, err := view.LegalDocument(view.DocumentKind(chi.URLParam(r, "doc")))
	if err != nil {
		if errors.Is(err, view.ErrUnknownDocument) {
			respond.Error(w, r, http.StatusNotFound, "not found")
			return
		}
		h.logger.Error("failed to load legal document", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, doc)
}

func (h *ContentHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, view.WalletScreen(view.MockWalletSummary(h.walletBalanceCents)))
}
