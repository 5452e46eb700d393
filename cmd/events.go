package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"artisanmart/internal/config"
	"artisanmart/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var eventsBinding string

// eventsCmd follows the session and catalog events other processes publish.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print session and catalog events from RabbitMQ",
	Long: `Prints the events published by artisanmart clients and the sandbox:
session.login, session.logout, session.invalidated, product.submitted,
product.created, product.deleted and brand.saved. Requires RABBITMQ_URL.

	artisanmart events --bind "session.*"
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(os.Stderr)

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cfg.RabbitMQURL == "" {
			return errors.New("RABBITMQ_URL is not set")
		}

		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return err
		}
		defer mqClient.Close()

		out := cmd.OutOrStdout()
		return mqClient.Consume(eventsBinding, func(routingKey string, body []byte) error {
			_, err := fmt.Fprintf(out, "%-20s %s\n", routingKey, body)
			return err
		})
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsBinding, "bind", "#", "routing key pattern to follow")
	rootCmd.AddCommand(eventsCmd)
}
