package main

import (
	"fmt"
	"sort"
	"strings"

	"walletctl/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var createWalletCmd = &cobra.Command{
	Use:   "create-wallet",
	Short: "Create a new custodial wallet on the configured network",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp()
		defer a.zapLogger.Sync()

		result, err := a.wallets.Create(cmd.Context())
		if err != nil {
			// A tool invocation that produced no wallet has nothing further
			// to do.
			logger.Fatal("Failed to create wallet", "error", err)
		}

		fmt.Println("\nNew wallet created successfully!")
		fmt.Printf("Wallet ID: %s\n", result.Snapshot.ID)
		fmt.Printf("Address: %s\n", result.Record.Address)
		fmt.Printf("Network: %s\n", result.Record.Network)
		fmt.Printf("Can Sign: %t\n", result.Snapshot.CanSign)
		fmt.Printf("Server Signer Status: %s\n", result.Snapshot.ServerSignerStatus)

		switch {
		case !result.Funding.Attempted:
			// Nothing to report on non-test networks.
		case result.Funding.Funded:
			fmt.Println("\nWallet funded successfully with testnet ETH")
			printBalances(result.Snapshot.Balances, "Initial balance:")
		default:
			fmt.Printf("\nNote: Faucet funding failed: %s\n", result.Funding.Error)
		}
	},
}

var listWalletsCmd = &cobra.Command{
	Use:   "list-wallets",
	Short: "List all wallets known to the custody service",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp()
		defer a.zapLogger.Sync()

		fmt.Println("\nFetching wallets...")
		wallets, err := a.wallets.List(cmd.Context())
		if err != nil {
			logger.Fatal("Failed to list wallets", "error", err)
		}

		fmt.Printf("Found %d wallet(s):\n", len(wallets))
		for _, w := range wallets {
			fmt.Printf("\nWallet ID: %s\n", w.ID)
			fmt.Printf("Address: %s\n", w.DefaultAddress)
			fmt.Printf("Network: %s\n", w.Network)
			fmt.Printf("Can Sign: %t\n", w.CanSign)
			fmt.Printf("Server Signer Status: %s\n", w.ServerSignerStatus)
			printBalances(w.Balances, "Balances:")
			fmt.Println(strings.Repeat("-", 50))
		}
	},
}

var showBalanceCmd = &cobra.Command{
	Use:   "show-balance <wallet-address>",
	Short: "Show balances and transfer history for a wallet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer a.zapLogger.Sync()

		address := args[0]
		if !common.IsHexAddress(address) {
			logger.Fatal("Invalid wallet address", "address", address)
		}

		inspection, err := a.wallets.Inspect(cmd.Context(), address)
		if err != nil {
			logger.Fatal("Failed to show balance", "address", address, "error", err)
		}

		fmt.Println("\nWallet Information:")
		fmt.Printf("Wallet ID: %s\n", inspection.Snapshot.ID)
		fmt.Printf("Address: %s\n", address)
		fmt.Printf("Network: %s\n", inspection.Record.Network)
		fmt.Printf("Can Sign: %t\n", inspection.Snapshot.CanSign)
		fmt.Printf("Server Signer Status: %s\n", inspection.Snapshot.ServerSignerStatus)

		printBalances(inspection.Snapshot.Balances, "\nCurrent balances:")

		fmt.Println("\nTransfer history:")
		if len(inspection.Transfers) == 0 {
			fmt.Println("No transfer history found")
			return
		}
		for _, t := range inspection.Transfers {
			fmt.Printf("Transfer %s: %s %s -> %s [%s]\n",
				t.ID, t.Amount.String(), strings.ToUpper(t.Asset), t.Destination, t.Status.Raw)
		}
	},
}

// printBalances renders a balance map with a header, assets sorted and
// upper-cased.
func printBalances(balances map[string]decimal.Decimal, header string) {
	fmt.Println(header)
	if len(balances) == 0 {
		fmt.Println("No balances found")
		return
	}
	assets := make([]string, 0, len(balances))
	for asset := range balances {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for _, asset := range assets {
		fmt.Printf("  %s: %s\n", strings.ToUpper(asset), balances[asset].String())
	}
}
