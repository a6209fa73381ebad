package httpapi

import (
	"encoding/json"
	"math/big"
	"net/http"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/types"
)

var tokenAddr = ethcommon.HexToAddress(common.TokenContractAddr)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &ErrorResponse{Error: message})
}

func pathAddress(w http.ResponseWriter, r *http.Request, name string) (ethcommon.Address, bool) {
	v := mux.Vars(r)[name]
	if !ethcommon.IsHexAddress(v) {
		writeError(w, http.StatusBadRequest, "invalid address "+v)
		return ethcommon.Address{}, false
	}
	return ethcommon.HexToAddress(v), true
}

// view runs a read only token method
func (s *Server) view(method string, args ...any) (any, error) {
	data, err := common.PackCall(token.ABI(), method, args...)
	if err != nil {
		return nil, err
	}
	ret, err := s.backend.Call(ethcommon.Address{}, tokenAddr, data)
	if err != nil {
		return nil, err
	}
	out, err := token.ABI().Unpack(method, ret)
	if err != nil {
		return nil, errors.Wrapf(err, "unpack %s", method)
	}
	if len(out) != 1 {
		return nil, errors.Errorf("unexpected %s outputs", method)
	}
	return out[0], nil
}

func (s *Server) viewAmount(method string, args ...any) (string, error) {
	v, err := s.view(method, args...)
	if err != nil {
		return "", err
	}
	amount, ok := v.(*big.Int)
	if !ok {
		return "", errors.Errorf("unexpected %s output %T", method, v)
	}
	return amount.String(), nil
}

func (s *Server) handleSendTransaction(w http.ResponseWriter, r *http.Request) {
	req := &SendTransactionRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx := &types.Transaction{}
	if err := tx.UnmarshalBinary(req.Raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	receipt, err := s.backend.ApplyTransaction(tx)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.WithFields(logrus.Fields{
		"hash":   receipt.TxHash.String(),
		"status": receipt.Status,
	}).Debug("Receive transaction")
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	req := &CallRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	to := tokenAddr
	if req.To != nil {
		to = *req.To
	}
	ret, err := s.backend.Call(req.From, to, req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &CallResponse{Ret: ret})
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)["hash"]
	hash := ethcommon.HexToHash(v)
	receipt, err := s.backend.GetReceipt(hash)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "receipt not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleNonce(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r, "addr")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, &NonceResponse{Account: addr, Nonce: s.backend.GetNonce(addr)})
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.CurrentHeader())
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	outs := make(map[string]any)
	for _, method := range []string{token.NameMethod, token.SymbolMethod, token.DecimalsMethod, token.OwnerMethod} {
		v, err := s.view(method)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		outs[method] = v
	}
	supply, err := s.viewAmount(token.TotalSupplyMethod)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &TokenResponse{
		Name:        outs[token.NameMethod].(string),
		Symbol:      outs[token.SymbolMethod].(string),
		Decimals:    outs[token.DecimalsMethod].(uint8),
		Owner:       outs[token.OwnerMethod].(ethcommon.Address),
		TotalSupply: supply,
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r, "addr")
	if !ok {
		return
	}
	balance, err := s.viewAmount(token.BalanceOfMethod, addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &BalanceResponse{Account: addr, Balance: balance})
}

func (s *Server) handleHeld(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r, "addr")
	if !ok {
		return
	}
	v, err := s.view(token.HeldMethod, addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	until := v.(uint64)
	res := &HeldResponse{Account: addr, HeldUntil: until}
	next := s.backend.NextHeader()
	res.AsOf = next.Timestamp
	res.Held = next.Timestamp < until
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAllowance(w http.ResponseWriter, r *http.Request) {
	holder, ok := pathAddress(w, r, "holder")
	if !ok {
		return
	}
	spender, ok := pathAddress(w, r, "spender")
	if !ok {
		return
	}
	allowance, err := s.viewAmount(token.AllowanceMethod, holder, spender)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &AllowanceResponse{Holder: holder, Spender: spender, Allowance: allowance})
}

func (s *Server) handleIncreaseTime(w http.ResponseWriter, r *http.Request) {
	req := &IncreaseTimeRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, &IncreaseTimeResponse{Offset: s.backend.IncreaseTime(req.Seconds)})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	header, err := s.backend.Mine()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, header)
}
