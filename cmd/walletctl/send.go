package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"walletctl/internal/domain/entity"
	"walletctl/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sendAssumeYes bool

var sendCmd = &cobra.Command{
	Use:   "send <from-address> <to-address> <quantity> <asset-id>",
	Short: "Send tokens from one wallet to another",
	Long: `Submits a transfer through the custody service and polls it to a terminal
state. USDC transfers are submitted gasless; all other assets pay network
fees. Submission requires explicit confirmation (or --yes).`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		from, to, rawQuantity, asset := args[0], args[1], args[2], args[3]

		if !common.IsHexAddress(from) {
			logger.Fatal("Invalid source address", "address", from)
		}
		if !common.IsHexAddress(to) {
			logger.Fatal("Invalid destination address", "address", to)
		}
		quantity, err := decimal.NewFromString(rawQuantity)
		if err != nil || !quantity.IsPositive() {
			logger.Fatal("Quantity must be a positive decimal", "quantity", rawQuantity)
		}

		a := newApp()
		defer a.zapLogger.Sync()

		req := entity.TransferRequest{
			SourceAddress:      from,
			DestinationAddress: to,
			Asset:              strings.ToLower(asset),
			Quantity:           quantity,
		}

		fmt.Printf("\nLocating wallet %s...\n", from)
		outcome, err := a.transfers.Execute(cmd.Context(), req, &stdinConfirmer{
			network:   a.cfg.Network,
			assumeYes: sendAssumeYes,
		})
		if err != nil {
			reportTransferError(err)
			os.Exit(1)
		}

		reportOutcome(outcome)
	},
}

func init() {
	sendCmd.Flags().BoolVar(&sendAssumeYes, "yes", false, "skip the interactive confirmation prompt")
}

// stdinConfirmer implements port.Confirmer by printing the transaction
// details and reading an explicit yes from stdin.
type stdinConfirmer struct {
	network   string
	assumeYes bool
}

func (c *stdinConfirmer) Confirm(req entity.TransferRequest, gasless bool) bool {
	fmt.Println("\nTransaction Details:")
	fmt.Printf("From: %s\n", req.SourceAddress)
	fmt.Printf("To: %s\n", req.DestinationAddress)
	fmt.Printf("Amount: %s\n", req.Quantity.String())
	fmt.Printf("Asset ID: %s\n", req.Asset)
	fmt.Printf("Network: %s\n", c.network)
	fmt.Printf("Gasless: %t\n", gasless)

	if c.assumeYes {
		return true
	}

	fmt.Print("\nProceed with transaction? (yes/no): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

func reportTransferError(err error) {
	var notFound *entity.NotFoundError
	var insufficient *entity.InsufficientBalanceError
	var submission *entity.SubmissionFailedError

	switch {
	case errors.As(err, &insufficient):
		fmt.Println("\nError: Insufficient balance")
		fmt.Printf("Required: %s %s\n", insufficient.Required.String(), strings.ToUpper(insufficient.Asset))
		fmt.Printf("Available: %s %s\n", insufficient.Available.String(), strings.ToUpper(insufficient.Asset))
	case errors.As(err, &notFound):
		fmt.Printf("\nError: %s\n", notFound.Error())
	case errors.As(err, &submission):
		fmt.Printf("\nError: %s\n", submission.Error())
	default:
		fmt.Printf("\nError sending tokens: %s\n", err)
	}
}

func reportOutcome(outcome entity.TransferOutcome) {
	switch outcome.Kind {
	case entity.OutcomeSucceeded:
		fmt.Println("\nTransfer completed successfully!")
		if outcome.TransactionHash != "" {
			fmt.Printf("Transaction hash: %s\n", outcome.TransactionHash)
		}
		if outcome.ExplorerLink != "" {
			fmt.Printf("Transaction link: %s\n", outcome.ExplorerLink)
		}
		printBalances(outcome.FinalBalances, "\nUpdated balance:")
	case entity.OutcomeFailed:
		fmt.Println("\nTransfer failed!")
		if outcome.Reason != "" {
			fmt.Printf("Error details: %s\n", outcome.Reason)
		}
	case entity.OutcomeTimedOut:
		fmt.Println("\nTransfer timed out!")
		if outcome.Reason != "" {
			fmt.Println(outcome.Reason)
		}
	case entity.OutcomeCancelled:
		fmt.Println("Transaction cancelled")
	}
}
