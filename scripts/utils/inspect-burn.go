//go:build ignore

// Inspect Burn Script
//
// Fetch one transaction through the configured RPC endpoints, run it through
// the burn parser and compare the result with the stored row.
//
// Usage:
//   go run scripts/utils/inspect-burn.go -config config.yaml -sig <signature> [-store]

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/xenartist/memo.rip/pkg/app/api"
	"github.com/xenartist/memo.rip/pkg/burnstore"
	"github.com/xenartist/memo.rip/pkg/config"
	"github.com/xenartist/memo.rip/pkg/solana"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to config file")
	signature  = flag.String("sig", "", "Transaction signature")
	withStore  = flag.Bool("store", false, "Also print the stored row")
)

func main() {
	flag.Parse()

	if !solana.ValidSignature(*signature) {
		fmt.Println("ERROR: -sig must be a base58 transaction signature")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("ERROR: Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Println("══════════════════════════════════════════════════════════════════════")
	fmt.Println("  Burn Inspection")
	fmt.Println("══════════════════════════════════════════════════════════════════════")
	fmt.Printf("  Signature: %s\n", *signature)
	fmt.Printf("  Endpoints: %v\n", cfg.RPC.Endpoints)
	fmt.Println()

	client := solana.NewClient(cfg.RPC.Endpoints, solana.WithTimeout(cfg.RPC.RequestTimeout))

	status, err := client.GetSignatureStatus(ctx, *signature)
	switch {
	case err != nil:
		fmt.Printf("  Status:    ERROR %v\n", err)
	case status == nil:
		fmt.Println("  Status:    unknown to the node")
	default:
		fmt.Printf("  Status:    %s (slot %d, failed=%v)\n", status.ConfirmationStatus, status.Slot, status.Failed())
	}

	raw, err := client.GetTransaction(ctx, *signature)
	if err != nil {
		fmt.Printf("ERROR: getTransaction: %v\n", err)
		os.Exit(1)
	}
	if raw == nil {
		fmt.Println("  Transaction not finalized yet")
		os.Exit(0)
	}

	detail, err := solana.ParseBurn(raw)
	if err != nil {
		fmt.Printf("  Parse:     %v\n", err)
	} else {
		fmt.Printf("  Burner:    %s\n", detail.Burner)
		fmt.Printf("  Amount:    %d\n", detail.Amount)
		fmt.Printf("  Token:     %s\n", detail.Token)
		fmt.Printf("  Memo:      %q\n", detail.Memo)
		fmt.Printf("  Time:      %s\n", detail.Timestamp.UTC().Format(time.RFC3339))
		if cfg.Token.Mint != "" && detail.Token != cfg.Token.Mint {
			fmt.Printf("  WARNING:   mint differs from configured %s\n", cfg.Token.Mint)
		}
	}

	if !*withStore {
		return
	}

	fmt.Println()
	store, closeStore, err := api.OpenStore(ctx, cfg, zap.NewNop())
	if err != nil {
		fmt.Printf("ERROR: open store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	rec, err := store.GetBurn(ctx, *signature)
	switch {
	case errors.Is(err, burnstore.ErrNotFound):
		fmt.Println("  Stored:    no row")
	case err != nil:
		fmt.Printf("  Stored:    ERROR %v\n", err)
	default:
		fmt.Printf("  Stored:    %s, amount %d, attempts %d, last error %q\n",
			rec.State(), rec.Amount, rec.CheckAttempts, rec.LastError)
	}
}
