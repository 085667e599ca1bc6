package tellergo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type balanceJSONResp struct {
	Balance decimal.Decimal `json:"balance"`
}

type transactionsJSONResp struct {
	Transactions []Transaction `json:"transactions"`
}

func NewHTTPHandler(svc Service, log *zerolog.Logger) http.Handler {
	hndlr := &httpHandler{
		Svc: svc,
		Log: log,
	}
	mux := chi.NewMux()
	mux.NotFound(HTTPNotFound)
	mux.Post("/accounts", hndlr.CreateAccount)
	mux.Route("/accounts/{acctNum:[0-9]+}", func(r chi.Router) {
		r.Post("/deposit", hndlr.Deposit)
		r.Post("/withdraw", hndlr.Withdraw)
		r.Get("/balance", hndlr.Balance)
		r.Get("/statement", hndlr.Statement)
	})
	mux.Get("/transactions", hndlr.Transactions)
	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return mux
}

type httpHandler struct {
	Svc Service
	Log *zerolog.Logger
}

func (h *httpHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", "create_account").Msg("error reading HTTP request")
		WriteHTTPError(w, ErrInternalServer)
		return
	}
	var req CreateAccountReq
	if err = json.Unmarshal(buf, &req); err != nil {
		h.Log.Err(err).Str("method", "create_account").Msg("error unmarshalling JSON")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}})
		return
	}
	acct, err := h.Svc.CreateAccount(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(acct); err != nil {
		h.Log.Err(err).Str("method", "create_account").Msg("error encoding response")
	}
}

func (h *httpHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", "deposit").Msg("error reading HTTP request")
		WriteHTTPError(w, ErrInternalServer)
		return
	}
	var req ChargeReq
	if err = json.Unmarshal(buf, &req); err != nil {
		h.Log.Err(err).Str("method", "deposit").Msg("error unmarshalling JSON")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}})
		return
	}
	acctNum, err := strconv.ParseInt(chi.URLParam(r, "acctNum"), 10, 64)
	if err != nil {
		h.Log.Err(err).Str("method", "deposit").Msg("error parsing account number")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctNum": "invalid format"}})
		return
	}
	req.Number = acctNum
	bal, err := h.Svc.Deposit(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	resp := balanceJSONResp{Balance: *bal}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		WriteHTTPError(w, err)
	}
}

func (h *httpHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", "withdraw").Msg("error reading HTTP request")
		WriteHTTPError(w, ErrInternalServer)
		return
	}
	var req ChargeReq
	if err = json.Unmarshal(buf, &req); err != nil {
		h.Log.Err(err).Str("method", "withdraw").Msg("error unmarshalling JSON")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}})
		return
	}
	acctNum, err := strconv.ParseInt(chi.URLParam(r, "acctNum"), 10, 64)
	if err != nil {
		h.Log.Err(err).Str("method", "withdraw").Msg("error parsing account number")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctNum": "invalid format"}})
		return
	}
	req.Number = acctNum
	bal, err := h.Svc.Withdraw(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	resp := balanceJSONResp{Balance: *bal}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		WriteHTTPError(w, err)
	}
}

func (h *httpHandler) Balance(w http.ResponseWriter, r *http.Request) {
	acctNum, err := strconv.ParseInt(chi.URLParam(r, "acctNum"), 10, 64)
	if err != nil {
		h.Log.Err(err).Str("method", "balance").Msg("error parsing account number")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctNum": "invalid format"}})
		return
	}
	bal, err := h.Svc.Balance(BalanceReq{Number: acctNum})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	resp := balanceJSONResp{Balance: *bal}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		WriteHTTPError(w, err)
	}
}

func (h *httpHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Svc.Transactions()
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	if txns == nil {
		txns = []Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(transactionsJSONResp{Transactions: txns}); err != nil {
		WriteHTTPError(w, err)
	}
}

func (h *httpHandler) Statement(w http.ResponseWriter, r *http.Request) {
	acctNum, err := strconv.ParseInt(chi.URLParam(r, "acctNum"), 10, 64)
	if err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error parsing account number")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctNum": "invalid format"}})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	if err = h.Svc.Statement(w, StatementReq{Number: acctNum}); err != nil {
		WriteHTTPError(w, err)
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var ne error
	defer func() {
		if ne != nil {
			log.Error().
				Err(ne).
				Msg("error response encoding failed")
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	errnf := &ErrNotFound{}
	errbr := &ErrBadRequest{}
	errcf := &ErrConflict{}
	switch {
	case errors.As(err, errnf):
		w.WriteHeader(http.StatusNotFound)
		ne = json.NewEncoder(w).Encode(errnf)
	case errors.As(err, errbr):
		w.WriteHeader(http.StatusBadRequest)
		ne = json.NewEncoder(w).Encode(errbr)
	case errors.As(err, errcf):
		w.WriteHeader(http.StatusConflict)
		ne = json.NewEncoder(w).Encode(errcf)
	case errors.Is(err, ErrInsufficientFunds), errors.Is(err, ErrOverdraftLimit):
		w.WriteHeader(http.StatusConflict)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	case errors.Is(err, ErrTooManyRequests):
		w.WriteHeader(http.StatusTooManyRequests)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	case errors.Is(err, ErrUnavailable):
		w.WriteHeader(http.StatusServiceUnavailable)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": "server error"})
	}
}

func HTTPNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	resp := map[string]string{
		"path": r.URL.Path,
	}
	json.NewEncoder(w).Encode(resp)
}
