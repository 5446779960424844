// Command cli is a small operational tool that talks to the database
// directly, bypassing HTTP: create accounts, move money, inspect balances.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"log/slog"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/infra"
	infrarepo "github.com/felipecesargomes/banking-api/infra/repository"
	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	accountsvc "github.com/felipecesargomes/banking-api/pkg/service/account"
	"github.com/felipecesargomes/banking-api/pkg/service/ledger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.DiscardHandler)
	uow := infrarepo.NewUoW(db)
	accounts := accountsvc.NewService(uow, logger)
	engine := ledger.NewService(uow, logger)
	ctx := context.Background()

	switch cmd {
	case "create":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli create <owner_id> [kind]")
			return
		}
		ownerID, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid owner id:", err)
			return
		}
		kind := account.KindChecking
		if len(os.Args) > 3 {
			kind, err = account.ParseKind(os.Args[3])
			if err != nil {
				fmt.Println(err)
				return
			}
		}
		a, err := accounts.CreateAccount(ctx, ownerID, kind, money.Zero, account.DefaultDailyLimit)
		if err != nil {
			fmt.Println("Error creating account:", err)
			return
		}
		fmt.Printf("Account created: ID=%d, Kind=%s, Balance=%s\n", a.ID, a.Kind, a.Balance)
	case "deposit", "withdraw":
		if len(os.Args) < 4 {
			fmt.Printf("Usage: cli %s <account_id> <amount>\n", cmd)
			return
		}
		accountID, amount, err := parseOperationArgs(os.Args[2], os.Args[3])
		if err != nil {
			fmt.Println(err)
			return
		}
		var op *account.Operation
		if cmd == "deposit" {
			op, err = engine.Deposit(ctx, accountID, amount, "")
		} else {
			op, err = engine.Withdraw(ctx, accountID, amount, "")
		}
		if err != nil {
			fmt.Printf("Error on %s: %v\n", cmd, err)
			return
		}
		fmt.Printf("%s of %s applied to account %d. New balance: %s\n",
			op.Kind, op.Amount, op.AccountID, op.BalanceAfter)
	case "balance":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli balance <account_id>")
			return
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			fmt.Println("Invalid account id:", err)
			return
		}
		a, err := accounts.Get(ctx, uint(id))
		if err != nil {
			fmt.Println("Error fetching account:", err)
			return
		}
		fmt.Printf("Account %d (%s): balance %s, daily limit %s, active=%v\n",
			a.ID, a.Kind, a.Balance, a.DailyLimit, a.Active)
	default:
		usage()
	}
}

func parseOperationArgs(rawID, rawAmount string) (uint, money.Money, error) {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return 0, money.Zero, fmt.Errorf("invalid account id: %w", err)
	}
	value, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return 0, money.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	amount, err := money.New(value)
	if err != nil {
		return 0, money.Zero, err
	}
	return uint(id), amount, nil
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands: create <owner_id> [kind], deposit <account_id> <amount>, withdraw <account_id> <amount>, balance <account_id>")
}
