package internal

import (
	"github.com/stretchr/testify/require"
	"ima/entity"
	"testing"
)

func testSession(t *testing.T, opts ...entity.SessionOption) *entity.Session {
	t.Helper()
	session, err := entity.NewSession("10.0.0.1", append([]entity.SessionOption{entity.WithLanguage("en")}, opts...)...)
	require.NoError(t, err)
	return session
}

func fullArgs() Args {
	return Args{TransID: "TRANS123", Amount: "10.50", Expiry: "1230", Biller: "B1", Fraud: true}
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, field, ve.Field)
}

func TestBuildAllCommands(t *testing.T) {
	session := testSession(t)
	for _, cmd := range entity.Commands() {
		fields, err := Build(cmd, fullArgs(), session)
		require.NoError(t, err, cmd.Name())

		code, _ := fields.Get(fieldCommand)
		require.Equal(t, string(cmd), code)
		for _, name := range RequiredFields(cmd) {
			value, ok := fields.Get(name)
			require.True(t, ok, "%s: %s", cmd.Name(), name)
			require.NotEmpty(t, value, "%s: %s", cmd.Name(), name)
		}
		require.Equal(t, len(fields.Keys()), len(fields.Map()), "duplicate keys in %s", cmd.Name())
	}
}

func TestBuildMissingMandatoryField(t *testing.T) {
	omit := map[string]func(args *Args, opts *[]entity.SessionOption){
		fieldAmount:   func(args *Args, _ *[]entity.SessionOption) { args.Amount = "" },
		fieldTransID:  func(args *Args, _ *[]entity.SessionOption) { args.TransID = "" },
		fieldExpiry:   func(args *Args, _ *[]entity.SessionOption) { args.Expiry = "" },
		fieldLanguage: func(_ *Args, opts *[]entity.SessionOption) { *opts = append(*opts, entity.WithLanguage("")) },
	}

	for _, cmd := range entity.Commands() {
		for _, name := range RequiredFields(cmd) {
			apply, ok := omit[name]
			if !ok {
				continue
			}
			args := fullArgs()
			var opts []entity.SessionOption
			apply(&args, &opts)

			_, err := Build(cmd, args, testSession(t, opts...))
			requireValidationError(t, err, name)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, cmd, ve.Command)
		}
	}
}

func TestBuildWithoutSession(t *testing.T) {
	_, err := Build(entity.CommandCloseDay, Args{}, nil)
	requireValidationError(t, err, "session")
}

func TestBuildUnknownCommand(t *testing.T) {
	_, err := Build(entity.Command("q"), fullArgs(), testSession(t))
	requireValidationError(t, err, fieldCommand)
}

func TestBuildInvalidAmount(t *testing.T) {
	_, err := Build(entity.CommandDMSAuth, Args{Amount: "ten"}, testSession(t))
	requireValidationError(t, err, fieldAmount)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, entity.CommandDMSAuth, ve.Command)
}

func TestBuildSMS(t *testing.T) {
	fields, err := Build(entity.CommandSMS, Args{Amount: "10.5", Biller: "B1"}, testSession(t))
	require.NoError(t, err)
	require.Equal(t, []string{"command", "amount", "currency", "client_ip_addr", "language", "biller"}, fields.Keys())
	require.Equal(t, map[string]string{
		"command":        "v",
		"amount":         "1050",
		"currency":       "840",
		"client_ip_addr": "10.0.0.1",
		"language":       "en",
		"biller":         "B1",
	}, fields.Map())

	fields, err = Build(entity.CommandSMS, Args{Amount: "10.5"}, testSession(t))
	require.NoError(t, err)
	require.False(t, fields.Has(fieldBiller))
}

func TestBuildIgnoresUnusedArgs(t *testing.T) {
	fields, err := Build(entity.CommandDMSAuth, fullArgs(), testSession(t))
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"command":        "a",
		"amount":         "1050",
		"currency":       "840",
		"client_ip_addr": "10.0.0.1",
	}, fields.Map())
}

func TestBuildRecurringPayments(t *testing.T) {
	for _, cmd := range []entity.Command{entity.CommandSMSRP, entity.CommandDMSAuthRP} {
		fields, err := Build(cmd, Args{Amount: "1", Expiry: "not-mmyy"}, testSession(t))
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			"command":          string(cmd),
			"amount":           "100",
			"currency":         "840",
			"client_ip_addr":   "10.0.0.1",
			"language":         "en",
			"perspayee_expiry": "not-mmyy",
		}, fields.Map())
	}

	fields, err := Build(entity.CommandRegisterRP, Args{Expiry: "0129"}, testSession(t))
	require.NoError(t, err)
	require.False(t, fields.Has(fieldAmount))
	expiry, _ := fields.Get(fieldExpiry)
	require.Equal(t, "0129", expiry)
}

func TestBuildReverse(t *testing.T) {
	fields, err := Build(entity.CommandReverse, Args{TransID: "T1", Fraud: true}, testSession(t))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"command": "r", "trans_id": "T1", "fraud": "yes"}, fields.Map())

	fields, err = Build(entity.CommandReverse, Args{TransID: "T1", Amount: "5.00"}, testSession(t))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"command": "r", "trans_id": "T1", "amount": "500"}, fields.Map())
}

func TestBuildRefundAndCredit(t *testing.T) {
	for _, cmd := range []entity.Command{entity.CommandRefund, entity.CommandCredit} {
		fields, err := Build(cmd, Args{TransID: "T1", Fraud: true}, testSession(t))
		require.NoError(t, err)
		require.Equal(t, map[string]string{"command": string(cmd), "trans_id": "T1"}, fields.Map())

		fields, err = Build(cmd, Args{TransID: "T1", Amount: "0.5"}, testSession(t))
		require.NoError(t, err)
		amount, _ := fields.Get(fieldAmount)
		require.Equal(t, "050", amount)
	}
}

func TestBuildCloseDay(t *testing.T) {
	fields, err := Build(entity.CommandCloseDay, Args{}, testSession(t))
	require.NoError(t, err)
	require.Equal(t, []string{"command"}, fields.Keys())
}

func TestBuildMergeOrder(t *testing.T) {
	session := testSession(t,
		entity.WithParameter("description", "default"),
		entity.WithParameter("amount", "1"),
		entity.WithParameter("merchant_ref", "M1"),
	)
	args := Args{
		Amount: "2.00",
		Fields: entity.FieldsOf("description", "explicit", "command", "x", "fraud", "yes"),
	}

	fields, err := Build(entity.CommandDMSAuth, args, session)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"description":    "explicit",
		"amount":         "200",
		"merchant_ref":   "M1",
		"command":        "a",
		"fraud":          "yes",
		"currency":       "840",
		"client_ip_addr": "10.0.0.1",
	}, fields.Map())
	require.Equal(t, []string{"description", "amount", "merchant_ref", "command", "fraud", "currency", "client_ip_addr"}, fields.Keys())

	// an omitted optional field is removed even when a default carries it
	fields, err = Build(entity.CommandRefund, Args{TransID: "T1"}, session)
	require.NoError(t, err)
	require.False(t, fields.Has(fieldAmount))
	require.True(t, fields.Has("merchant_ref"))
}

func TestTransactionMergesDefaults(t *testing.T) {
	session := testSession(t, entity.WithParameter("a", "default"), entity.WithParameter("b", "kept"))
	fields := Transaction(entity.FieldsOf("a", "explicit", "command", "v"), session)
	require.Equal(t, []string{"a", "b", "command"}, fields.Keys())
	require.Equal(t, map[string]string{"a": "explicit", "b": "kept", "command": "v"}, fields.Map())

	require.Equal(t, 0, Transaction(nil, nil).Len())
}

func TestBuildBlankMandatoryField(t *testing.T) {
	_, err := Build(entity.CommandResult, Args{TransID: "   "}, testSession(t))
	requireValidationError(t, err, fieldTransID)

	_, err = Build(entity.CommandSMS, Args{Amount: "1"}, testSession(t, entity.WithLanguage("  ")))
	requireValidationError(t, err, fieldLanguage)
}
