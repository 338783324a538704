package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/account"
	"github.com/vovakirdan/brick-arcade/internal/storage"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage arcade accounts",
	Long: `Create accounts, check a login, recover a forgotten password with the
security question, or list the accounts of this database.

Examples:
  arcade account register alice
  arcade account login alice
  arcade account recover alice
  arcade account list`,
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRegister,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Check a password and pull the account from the cloud",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountLogin,
}

var accountRecoverCmd = &cobra.Command{
	Use:   "recover <name>",
	Short: "Set a new password by answering the security question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRecover,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

func init() {
	accountCmd.AddCommand(accountRegisterCmd, accountLoginCmd, accountRecoverCmd, accountListCmd)
}

func accountEnv() (*env, error) {
	return newEnv(envOptions{Prefix: "arcade", RequireStore: true, LogTo: os.Stderr})
}

func runAccountRegister(_ *cobra.Command, args []string) error {
	e, err := accountEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	p := newPrompter()
	reg := account.Registration{Name: args[0]}
	if reg.Password, err = p.secret("Password: "); err != nil {
		return err
	}
	if reg.Confirm, err = p.secret("Confirm password: "); err != nil {
		return err
	}
	if reg.Question, err = p.line("Security question: "); err != nil {
		return err
	}
	if reg.Hint, err = p.line("Hint (optional): "); err != nil {
		return err
	}
	if reg.Answer, err = p.secret("Answer: "); err != nil {
		return err
	}

	acc, err := e.svc.Accounts.Register(reg)
	if err != nil {
		return err
	}
	e.logger.Info("account registered", "account", acc.Namespace)
	fmt.Printf("Account %s created.\n", acc.Name)
	return nil
}

func runAccountLogin(_ *cobra.Command, args []string) error {
	e, err := accountEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	pw, err := newPrompter().secret("Password: ")
	if err != nil {
		return err
	}
	acc, err := e.svc.Accounts.Login(args[0], pw)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s.\n", acc.Name)

	if e.svc.Mirror == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applied, err := e.svc.Mirror.Download(ctx, acc.Namespace)
	switch {
	case err != nil:
		e.logger.Warn("cloud sync failed", "account", acc.Namespace, "err", err)
	case applied:
		fmt.Println("Progress synced from the cloud.")
	default:
		fmt.Println("Nothing in the cloud yet.")
	}
	return nil
}

func runAccountRecover(_ *cobra.Command, args []string) error {
	e, err := accountEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	question, hint, err := e.svc.Accounts.Question(args[0])
	if err != nil {
		return err
	}

	p := newPrompter()
	fmt.Println("Question:", question)
	if hint != "" {
		fmt.Println("Hint:", hint)
	}
	answer, err := p.secret("Answer: ")
	if err != nil {
		return err
	}
	pw, err := p.secret("New password: ")
	if err != nil {
		return err
	}
	confirm, err := p.secret("Confirm password: ")
	if err != nil {
		return err
	}

	acc, err := e.svc.Accounts.Recover(args[0], answer, pw, confirm)
	if errors.Is(err, account.ErrWrongAnswer) {
		return errors.New("that is not the answer")
	}
	if err != nil {
		return err
	}
	e.logger.Info("password recovered", "account", acc.Namespace)
	fmt.Printf("Password for %s changed.\n", acc.Name)
	return nil
}

func runAccountList(_ *cobra.Command, _ []string) error {
	e, err := accountEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	names, err := e.svc.Accounts.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No accounts yet. Create one with 'arcade account register <name>'.")
		return nil
	}

	fmt.Printf("%s:\n", humanize.Plural(len(names), "account", "accounts"))
	for _, name := range names {
		ns := storage.Namespace(name)
		best := 0
		if r, err := e.svc.Store.Ranking(ns); err == nil {
			best = r.Best()
		}
		saved := ""
		if has, err := e.svc.Store.HasSavedGame(ns); err == nil && has {
			saved = "  (saved game)"
		}
		fmt.Printf("  %-20s  best %s%s\n", name, humanize.Comma(int64(best)), saved)
	}
	return nil
}
