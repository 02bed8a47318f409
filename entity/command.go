// Package entity defines data models for the integrated merchant agent.
package entity

import "strings"

// Command is the single character code the gateway uses to select an operation.
type Command string

const (
	// CommandSMS starts a single message system transaction.
	CommandSMS Command = "v"
	// CommandDMSAuth starts a dual message system authorization.
	CommandDMSAuth Command = "a"
	// CommandDMSExec executes (captures) a previously authorized DMS transaction.
	CommandDMSExec Command = "t"
	// CommandSMSRP starts an SMS transaction with recurring payment registration.
	CommandSMSRP Command = "z"
	// CommandDMSAuthRP starts a DMS authorization with recurring payment registration.
	CommandDMSAuthRP Command = "d"
	// CommandRegisterRP registers a recurring payment without charging.
	CommandRegisterRP Command = "p"
	// CommandRP executes a recurring payment.
	CommandRP Command = "e"
	// CommandResult queries the result of a transaction.
	CommandResult Command = "c"
	// CommandReverse reverses a transaction.
	CommandReverse Command = "r"
	// CommandRefund refunds a transaction.
	CommandRefund Command = "k"
	// CommandCredit credits a transaction.
	CommandCredit Command = "g"
	// CommandCloseDay closes the last opened batch of the merchant.
	CommandCloseDay Command = "b"
)

var commandNames = map[Command]string{
	CommandSMS:        "sms",
	CommandDMSAuth:    "dms_auth",
	CommandDMSExec:    "dms_exec",
	CommandSMSRP:      "sms_rp",
	CommandDMSAuthRP:  "dms_auth_rp",
	CommandRegisterRP: "register_rp",
	CommandRP:         "rp",
	CommandResult:     "result",
	CommandReverse:    "reverse",
	CommandRefund:     "refund",
	CommandCredit:     "credit",
	CommandCloseDay:   "close_day",
}

// Commands lists every known command in gateway documentation order.
func Commands() []Command {
	return []Command{
		CommandSMS, CommandDMSAuth, CommandDMSExec, CommandSMSRP, CommandDMSAuthRP, CommandRegisterRP,
		CommandRP, CommandResult, CommandReverse, CommandRefund, CommandCredit, CommandCloseDay,
	}
}

// Name returns a readable name of the command, or the raw code if it is unknown.
func (c Command) Name() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

func (c Command) String() string {
	return c.Name()
}

// ParseCommand accepts either a gateway code ("v") or a command name ("sms").
func ParseCommand(s string) (Command, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c := Command(s); c.Valid() {
		return c, true
	}
	for c, name := range commandNames {
		if name == s {
			return c, true
		}
	}
	return "", false
}
