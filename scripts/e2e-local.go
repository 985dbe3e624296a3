//go:build ignore

// e2e-local.go - smoke test against a running API server
//
// Test Flow:
// 1. Read /api/burns
// 2. Submit a signature status poll through /rpc-proxy
// 3. Wait for the burn to be reconciled via /api/burns/{signature}
// 4. Read /api/burns again and print the difference
//
// Usage:
//   go run scripts/e2e-local.go -url http://localhost:3000 -sig <signature> [-wait 2m]

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/xenartist/memo.rip/pkg/leaderboard"
	"github.com/xenartist/memo.rip/pkg/rpc"
	"github.com/xenartist/memo.rip/pkg/solana"
)

const (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

var (
	baseURL   = flag.String("url", "http://localhost:3000", "API server base URL")
	signature = flag.String("sig", "", "Signature of a confirmed burn transaction")
	waitFor   = flag.Duration("wait", 2*time.Minute, "How long to wait for reconciliation")
)

var httpClient = &http.Client{Timeout: 90 * time.Second}

func main() {
	flag.Parse()
	if *signature == "" {
		fail("-sig is required")
	}

	before := stats()
	step("Stats before: totalBurn=%d burnPercentage=%.6f", before.TotalBurn, before.BurnPercentage)

	req, err := rpc.NewRequest(1, solana.MethodGetSignatureStatuses, []string{*signature}, map[string]any{
		"searchTransactionHistory": true,
	})
	must(err)
	body, err := json.Marshal(req)
	must(err)

	resp, err := httpClient.Post(*baseURL+"/rpc-proxy", "application/json", bytes.NewReader(body))
	must(err)
	reply, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fail("status poll returned %d: %s", resp.StatusCode, reply)
	}
	step("Status poll accepted: %s", reply)

	deadline := time.Now().Add(*waitFor)
	for {
		var detail leaderboard.BurnDetail
		if code := getJSON("/api/burns/"+*signature, &detail); code == http.StatusOK && detail.State == "reconciled" {
			step("Reconciled: burner=%s amount=%d", detail.Burner, detail.Amount)
			break
		}
		if time.Now().After(deadline) {
			fail("burn not reconciled within %s", *waitFor)
		}
		fmt.Printf("%s  waiting...%s\n", colorYellow, colorReset)
		time.Sleep(5 * time.Second)
	}

	after := stats()
	step("Stats after: totalBurn=%d (+%d)", after.TotalBurn, after.TotalBurn-before.TotalBurn)
	fmt.Printf("%sPASS%s\n", colorGreen, colorReset)
}

func stats() leaderboard.BurnStats {
	var s leaderboard.BurnStats
	if code := getJSON("/api/burns", &s); code != http.StatusOK {
		fail("/api/burns returned %d", code)
	}
	return s
}

func getJSON(path string, out any) int {
	resp, err := httpClient.Get(*baseURL + path)
	must(err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		must(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func step(format string, args ...any) {
	fmt.Printf("%s✓%s "+format+"\n", append([]any{colorGreen, colorReset}, args...)...)
}

func must(err error) {
	if err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Printf("%sFAIL%s "+format+"\n", append([]any{colorRed, colorReset}, args...)...)
	os.Exit(1)
}
