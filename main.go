package main

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/spf13/cobra"
	"ima/config"
	"ima/entity"
	"ima/internal"
	"ima/services"
	"os"
)

var (
	configPath string
	execArgs   struct {
		transID  string
		amount   string
		expiry   string
		biller   string
		fraud    bool
		clientIP string
		language string
		currency string
	}
)

var rootCmd = &cobra.Command{
	Use:           "ima",
	Short:         "Integrated merchant agent for the card payment gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := internal.NewLogger("internal", false, nil)

		logger.Info("using config file: " + configPath)
		conf, err := config.GetConfig(configPath)
		if err != nil {
			return err
		}

		var mongo services.Database
		if conf.Mongo.Enabled {
			mongo, err = internal.NewMongoClient(conf)
			if err != nil {
				return fmt.Errorf("mongo client: %w", err)
			}
			logger.Info("mongo client initialized")
		}

		transport, err := internal.NewTransport(conf)
		if err != nil {
			return fmt.Errorf("transport: %w", err)
		}
		if !conf.Merchant.VerifyPeer {
			logger.Warn("gateway certificate verification disabled")
		}

		server := internal.NewServer(conf)
		server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
		server.SetTransport(transport)

		return server.Start()
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Send one command to the gateway and print the result",
	Long:  "Command is a gateway code (v, a, t, z, d, p, e, c, r, k, g, b) or its name (sms, dms_auth, ..., close_day).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, ok := entity.ParseCommand(args[0])
		if !ok {
			return fmt.Errorf("unknown command: %s", args[0])
		}

		conf, err := config.GetConfig(configPath)
		if err != nil {
			return err
		}
		transport, err := internal.NewTransport(conf)
		if err != nil {
			return fmt.Errorf("transport: %w", err)
		}

		currency := execArgs.currency
		if currency == "" {
			currency = conf.Merchant.Currency
		}
		language := execArgs.language
		if language == "" {
			language = conf.Merchant.Language
		}
		session, err := entity.NewSession(execArgs.clientIP, entity.WithCurrency(currency), entity.WithLanguage(language))
		if err != nil {
			return err
		}

		agent := internal.NewAgent(transport, session)
		agent.SetLogger(internal.NewLogger("agent", conf.IsDebug, nil))

		result, err := agent.Execute(context.Background(), command, internal.Args{
			TransID: execArgs.transID,
			Amount:  execArgs.amount,
			Expiry:  execArgs.expiry,
			Biller:  execArgs.biller,
			Fraud:   execArgs.fraud,
		})
		if err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")
		if err = out.Encode(result); err != nil {
			return err
		}
		if result.Failed() || result.IsError() {
			return fmt.Errorf("gateway declined: %s", result.ErrorMessage())
		}
		return nil
	},
}

var redirectCmd = &cobra.Command{
	Use:   "redirect <trans_id>",
	Short: "Print the page redirecting the cardholder to the client handler",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig(configPath)
		if err != nil {
			return err
		}
		page, err := internal.RedirectPayload(conf.Merchant.ClientHandler, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), page)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "config.yml", "path to config file, empty to read the environment only")

	flags := execCmd.Flags()
	flags.StringVar(&execArgs.transID, "trans-id", "", "transaction id")
	flags.StringVar(&execArgs.amount, "amount", "", "amount as a decimal, e.g. 12.34")
	flags.StringVar(&execArgs.expiry, "expiry", "", "recurring payment expiry, MMYY")
	flags.StringVar(&execArgs.biller, "biller", "", "biller client id")
	flags.BoolVar(&execArgs.fraud, "fraud", false, "mark a reversal as fraud")
	flags.StringVar(&execArgs.clientIP, "client-ip", "127.0.0.1", "cardholder ip address")
	flags.StringVar(&execArgs.language, "language", "", "language identifier, defaults to the configured one")
	flags.StringVar(&execArgs.currency, "currency", "", "ISO 4217 numeric currency, defaults to the configured one")

	rootCmd.AddCommand(serveCmd, execCmd, redirectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
