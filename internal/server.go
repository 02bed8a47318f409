package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/julienschmidt/httprouter"
	"ima/config"
	"ima/entity"
	"ima/services"
	"io"
	"net"
	"net/http"
	"sort"
)

const maxBodySize = 1 << 20

const (
	executeCommand = "/transaction/:command"
	transResult    = "/result/:trans_id"
	closeDay       = "/close"
	redirectPage   = "/redirect/:trans_id"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	transport  services.Transport
	logger     services.LogHandler
}

// commandRequest is the JSON body of a command call. ClientIP defaults to the
// remote address of the caller, Language and Currency to the configured ones.
type commandRequest struct {
	TransID  string            `json:"trans_id"`
	Amount   string            `json:"amount"`
	Expiry   string            `json:"expiry"`
	Biller   string            `json:"biller"`
	Fraud    bool              `json:"fraud"`
	ClientIP string            `json:"client_ip"`
	Language string            `json:"language"`
	Currency string            `json:"currency"`
	Fields   map[string]string `json:"fields"`
}

type commandResponse struct {
	Command       string  `json:"command"`
	Success       bool    `json:"success"`
	Failed        bool    `json:"failed"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Warning       string  `json:"warning,omitempty"`
	Error         string  `json:"error,omitempty"`
	Result        *Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: NewLogger("server", false, nil),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(executeCommand, s.executeCommand)
	router.GET(transResult, s.transactionResult)
	router.POST(closeDay, s.closeDay)
	router.GET(redirectPage, s.redirect)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) SetTransport(transport services.Transport) {
	s.transport = transport
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if s.transport == nil {
		return fmt.Errorf("transport not set")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) executeCommand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cmd, ok := entity.ParseCommand(ps.ByName("command"))
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown command: %s", ps.ByName("command"))})
		return
	}

	var request commandRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("read request body: %v", err)})
		return
	}
	if len(body) > 0 {
		if err = json.Unmarshal(body, &request); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request body: %v", err)})
			return
		}
	}

	s.execute(w, r, cmd, request)
}

func (s *Server) transactionResult(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.execute(w, r, entity.CommandResult, commandRequest{
		TransID:  ps.ByName("trans_id"),
		ClientIP: r.URL.Query().Get("client_ip"),
	})
}

func (s *Server) closeDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.execute(w, r, entity.CommandCloseDay, commandRequest{})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, cmd entity.Command, request commandRequest) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.transport == nil {
		s.logger.Warn(fmt.Sprintf("[%s] %s: transport not set", reqID, cmd.Name()))
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "transport not set"})
		return
	}

	session, err := s.newSession(r, request)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, cmd.Name(), err))
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	agent := NewAgent(s.transport, session)
	agent.SetLogger(s.logger)

	args := Args{
		TransID: request.TransID,
		Amount:  request.Amount,
		Expiry:  request.Expiry,
		Biller:  request.Biller,
		Fraud:   request.Fraud,
		Fields:  sortedFields(request.Fields),
	}

	s.logger.Info(fmt.Sprintf("[%s] processing request: %s from %s", reqID, cmd.Name(), session.ClientIP()))
	result, err := agent.Execute(ctx, cmd, args)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case IsValidationError(err):
			status = http.StatusBadRequest
		case IsTransportError(err):
			status = http.StatusBadGateway
		}
		// the agent has already logged the failure
		s.logger.Debug(fmt.Sprintf("[%s] %s: status %d", reqID, cmd.Name(), status))
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, commandResponse{
		Command:       cmd.Name(),
		Success:       result.Success(),
		Failed:        result.Failed(),
		TransactionID: result.TransactionID(),
		Warning:       result.Warning(),
		Error:         result.ErrorMessage(),
		Result:        result,
	})
}

func (s *Server) redirect(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	transID := ps.ByName("trans_id")
	if s.conf == nil || s.conf.Merchant.ClientHandler == "" {
		http.Error(w, "client handler not configured", http.StatusServiceUnavailable)
		return
	}
	page, err := RedirectPayload(s.conf.Merchant.ClientHandler, transID)
	if err != nil {
		s.logger.Error("redirect", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, string(page))
}

func (s *Server) newSession(r *http.Request, request commandRequest) (*entity.Session, error) {
	clientIP := request.ClientIP
	if clientIP == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		clientIP = host
	}
	if clientIP != "" && net.ParseIP(clientIP) == nil {
		return nil, &ValidationError{Field: fieldClientIP, Reason: "not an ip address: " + clientIP}
	}

	currency, language := request.Currency, request.Language
	if s.conf != nil {
		if currency == "" {
			currency = s.conf.Merchant.Currency
		}
		if language == "" {
			language = s.conf.Merchant.Language
		}
	}
	session, err := entity.NewSession(clientIP, entity.WithCurrency(currency), entity.WithLanguage(language))
	if errors.Is(err, entity.ErrEmptyClientIP) {
		return nil, &ValidationError{Field: fieldClientIP, Reason: "required"}
	}
	return session, err
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}

// sortedFields gives JSON supplied fields a stable order.
func sortedFields(m map[string]string) *entity.Fields {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := entity.NewFields()
	for _, k := range keys {
		fields.Set(k, m[k])
	}
	return fields
}
