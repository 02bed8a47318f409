package internal

import (
	"errors"
	"ima/entity"
	"strings"
)

const (
	fieldCommand  = "command"
	fieldAmount   = "amount"
	fieldCurrency = "currency"
	fieldClientIP = "client_ip_addr"
	fieldLanguage = "language"
	fieldTransID  = "trans_id"
	fieldExpiry   = "perspayee_expiry"
	fieldBiller   = "biller"
	fieldFraud    = "fraud"
)

// commandFields lists the fields sent along with the command code.
// Required fields must resolve to a non-empty value, optional ones are omitted when empty.
type commandFields struct {
	required []string
	optional []string
}

var commandTable = map[entity.Command]commandFields{
	entity.CommandSMS: {
		required: []string{fieldAmount, fieldCurrency, fieldClientIP, fieldLanguage},
		optional: []string{fieldBiller},
	},
	entity.CommandDMSAuth: {
		required: []string{fieldAmount, fieldCurrency, fieldClientIP},
	},
	entity.CommandDMSExec: {
		required: []string{fieldTransID, fieldAmount, fieldCurrency, fieldClientIP},
	},
	entity.CommandSMSRP: {
		required: []string{fieldAmount, fieldCurrency, fieldClientIP, fieldLanguage, fieldExpiry},
	},
	entity.CommandDMSAuthRP: {
		required: []string{fieldAmount, fieldCurrency, fieldClientIP, fieldLanguage, fieldExpiry},
	},
	entity.CommandRegisterRP: {
		required: []string{fieldCurrency, fieldClientIP, fieldLanguage, fieldExpiry},
	},
	entity.CommandRP: {
		required: []string{fieldAmount, fieldCurrency, fieldClientIP, fieldLanguage},
	},
	entity.CommandResult: {
		required: []string{fieldTransID, fieldClientIP},
	},
	entity.CommandReverse: {
		required: []string{fieldTransID},
		optional: []string{fieldAmount, fieldFraud},
	},
	entity.CommandRefund: {
		required: []string{fieldTransID},
		optional: []string{fieldAmount},
	},
	entity.CommandCredit: {
		required: []string{fieldTransID},
		optional: []string{fieldAmount},
	},
	entity.CommandCloseDay: {},
}

// Args carries the per-call values of a command. Only the values the command
// uses are read, the rest are ignored.
type Args struct {
	TransID string
	// Amount is a decimal string such as "12.34"
	Amount string
	// Expiry of the recurring payment, MMYY; passed through as is
	Expiry string
	Biller string
	// Fraud marks a reversal as caused by fraud
	Fraud bool
	// Fields are explicit per-call fields; they override session defaults and
	// are overridden by the command fields
	Fields *entity.Fields
}

func (a Args) value(field string, session *entity.Session) (string, error) {
	switch field {
	case fieldAmount:
		if a.Amount == "" {
			return "", nil
		}
		return FormatAmount(a.Amount)
	case fieldCurrency:
		return session.Currency(), nil
	case fieldClientIP:
		return session.ClientIP(), nil
	case fieldLanguage:
		return session.Language(), nil
	case fieldTransID:
		return a.TransID, nil
	case fieldExpiry:
		return a.Expiry, nil
	case fieldBiller:
		return a.Biller, nil
	case fieldFraud:
		if a.Fraud {
			return "yes", nil
		}
		return "", nil
	}
	return "", nil
}

// Build assembles the field set of a command. Session defaults are applied first,
// then Args.Fields, then the command fields which always win.
func Build(cmd entity.Command, args Args, session *entity.Session) (*entity.Fields, error) {
	cf, ok := commandTable[cmd]
	if !ok {
		return nil, &ValidationError{Command: cmd, Field: fieldCommand, Reason: "unknown command"}
	}
	if session == nil {
		return nil, &ValidationError{Command: cmd, Field: "session", Reason: "required"}
	}

	fields := session.Parameters()
	fields.Merge(args.Fields)
	fields.Set(fieldCommand, string(cmd))

	for _, name := range cf.required {
		value, err := args.value(name, session)
		if err != nil {
			return nil, withCommand(err, cmd)
		}
		if strings.TrimSpace(value) == "" {
			return nil, &ValidationError{Command: cmd, Field: name, Reason: "required"}
		}
		fields.Set(name, value)
	}

	for _, name := range cf.optional {
		value, err := args.value(name, session)
		if err != nil {
			return nil, withCommand(err, cmd)
		}
		if value == "" {
			// an absent optional field is never sent, whatever the defaults say
			fields.Delete(name)
			continue
		}
		fields.Set(name, value)
	}

	return fields, nil
}

// Transaction merges session defaults under caller supplied fields without any validation.
func Transaction(fields *entity.Fields, session *entity.Session) *entity.Fields {
	merged := entity.NewFields()
	if session != nil {
		merged = session.Parameters()
	}
	merged.Merge(fields)
	return merged
}

// RequiredFields returns the mandatory fields of a command beyond the code itself.
func RequiredFields(cmd entity.Command) []string {
	return append([]string(nil), commandTable[cmd].required...)
}

// OptionalFields returns the optional fields of a command.
func OptionalFields(cmd entity.Command) []string {
	return append([]string(nil), commandTable[cmd].optional...)
}

func withCommand(err error, cmd entity.Command) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Command == "" {
		ve.Command = cmd
	}
	return err
}
