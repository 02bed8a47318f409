package internal

import (
	"context"
	"fmt"
	"gitee.com/golang-module/dongle"
	"html/template"
	"ima/entity"
	"ima/services"
)

// Agent sends merchant commands to the gateway on behalf of one client session.
// It holds no mutable state of its own; results are new values for every call.
type Agent struct {
	session       *entity.Session
	transport     services.Transport
	clientHandler string
	logger        services.LogHandler
}

func NewAgent(transport services.Transport, session *entity.Session) *Agent {
	return &Agent{
		session:   session,
		transport: transport,
		logger:    NewLogger("agent", false, nil),
	}
}

func (a *Agent) SetLogger(logger services.LogHandler) {
	a.logger = logger
}

// SetClientHandler sets the url the cardholder is redirected to for card entry.
func (a *Agent) SetClientHandler(url string) {
	a.clientHandler = url
}

func (a *Agent) Session() *entity.Session {
	return a.session
}

// WithSession returns a copy of the agent bound to another session.
func (a *Agent) WithSession(session *entity.Session) *Agent {
	c := *a
	c.session = session
	return &c
}

// Execute builds the command, sends it and parses the response.
// Validation errors are returned before anything is sent; transport errors are
// returned as the transport reported them. Gateway declines are not errors,
// check the Result.
func (a *Agent) Execute(ctx context.Context, cmd entity.Command, args Args) (*Result, error) {
	fields, err := Build(cmd, args, a.session)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("command %s: %v", cmd.Name(), err))
		return nil, err
	}
	return a.send(ctx, cmd.Name(), fields)
}

// Transaction sends arbitrary fields merged over the session defaults, without validation.
func (a *Agent) Transaction(ctx context.Context, fields *entity.Fields) (*Result, error) {
	return a.send(ctx, "transaction", Transaction(fields, a.session))
}

func (a *Agent) send(ctx context.Context, name string, fields *entity.Fields) (*Result, error) {
	transID, _ := fields.Get(fieldTransID)
	a.logger.Debug(fmt.Sprintf("%s: sending %d fields; trans_id: %s", name, fields.Len(), secret(transID)))

	raw, err := a.transport.Send(ctx, fields)
	if err != nil {
		a.logger.Error(fmt.Sprintf("%s: send", name), err)
		return nil, err
	}

	result := ParseResult(raw)
	a.logger.Info(fmt.Sprintf("%s: result: %s; transaction: %s; response sha256: %s",
		name, result.value(keyResult), secret(result.TransactionID()), fingerprint(raw)))
	if result.IsError() {
		a.logger.Warn(fmt.Sprintf("%s: gateway error: %s", name, result.ErrorMessage()))
	}
	if result.IsWarning() {
		a.logger.Warn(fmt.Sprintf("%s: gateway warning: %s", name, result.Warning()))
	}
	return result, nil
}

// StartSMSTrans starts a single message transaction; biller is optional.
func (a *Agent) StartSMSTrans(ctx context.Context, amount, biller string) (*Result, error) {
	return a.Execute(ctx, entity.CommandSMS, Args{Amount: amount, Biller: biller})
}

func (a *Agent) StartDMSAuth(ctx context.Context, amount string) (*Result, error) {
	return a.Execute(ctx, entity.CommandDMSAuth, Args{Amount: amount})
}

func (a *Agent) MakeDMSTrans(ctx context.Context, transID, amount string) (*Result, error) {
	return a.Execute(ctx, entity.CommandDMSExec, Args{TransID: transID, Amount: amount})
}

// StartSMSTransRP starts an SMS transaction registering a recurring payment valid until expiry (MMYY).
func (a *Agent) StartSMSTransRP(ctx context.Context, amount, expiry string) (*Result, error) {
	return a.startRP(ctx, entity.CommandSMSRP, amount, expiry)
}

// StartDMSAuthRP starts a DMS authorization registering a recurring payment valid until expiry (MMYY).
func (a *Agent) StartDMSAuthRP(ctx context.Context, amount, expiry string) (*Result, error) {
	return a.startRP(ctx, entity.CommandDMSAuthRP, amount, expiry)
}

func (a *Agent) startRP(ctx context.Context, cmd entity.Command, amount, expiry string) (*Result, error) {
	return a.Execute(ctx, cmd, Args{Amount: amount, Expiry: expiry})
}

func (a *Agent) RegisterRP(ctx context.Context, expiry string) (*Result, error) {
	return a.Execute(ctx, entity.CommandRegisterRP, Args{Expiry: expiry})
}

func (a *Agent) MakeRP(ctx context.Context, amount string) (*Result, error) {
	return a.Execute(ctx, entity.CommandRP, Args{Amount: amount})
}

func (a *Agent) GetTransResult(ctx context.Context, transID string) (*Result, error) {
	return a.Execute(ctx, entity.CommandResult, Args{TransID: transID})
}

// Reverse reverses a transaction; an empty amount reverses it in full.
func (a *Agent) Reverse(ctx context.Context, transID, amount string, fraud bool) (*Result, error) {
	return a.Execute(ctx, entity.CommandReverse, Args{TransID: transID, Amount: amount, Fraud: fraud})
}

func (a *Agent) Refund(ctx context.Context, transID, amount string) (*Result, error) {
	return a.Execute(ctx, entity.CommandRefund, Args{TransID: transID, Amount: amount})
}

func (a *Agent) Credit(ctx context.Context, transID, amount string) (*Result, error) {
	return a.Execute(ctx, entity.CommandCredit, Args{TransID: transID, Amount: amount})
}

// CloseDay closes the last opened batch of the merchant.
func (a *Agent) CloseDay(ctx context.Context) (*Result, error) {
	return a.Execute(ctx, entity.CommandCloseDay, Args{})
}

// RedirectToPayment renders the client handler redirect page for transID.
func (a *Agent) RedirectToPayment(transID string) (template.HTML, error) {
	if a.clientHandler == "" {
		return "", fmt.Errorf("client handler not configured")
	}
	return RedirectPayload(a.clientHandler, transID)
}

func fingerprint(raw string) string {
	return dongle.Encrypt.FromString(raw).BySha256().ToHexString()
}
