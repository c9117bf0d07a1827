package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mood-journal/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// 測試可替換
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	tokenPath    = client.DefaultTokenPath
)

// app 每次執行共用的狀態
type app struct {
	v      *viper.Viper
	in     *bufio.Reader
	client *client.Client
	tokens client.TokenFile
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("MOODCTL")
	a.v.AutomaticEnv()
	a.v.SetDefault("server", client.DefaultServer)

	root := &cobra.Command{
		Use:   "moodctl",
		Short: "Mood journal terminal client",
		Long: `Record daily moods and review your history from the terminal.

Examples:
  moodctl signup --name Ana --email ana@example.com
  moodctl login --email ana@example.com
  moodctl add --mood 7 --note "slept well"
  moodctl list
  moodctl stats`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String("server", client.DefaultServer, "API server URL (env MOODCTL_SERVER)")
	_ = a.v.BindPFlag("server", root.PersistentFlags().Lookup("server"))

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.googleCmd(),
		a.logoutCmd(),
		a.addCmd(),
		a.listCmd(),
		a.deleteCmd(),
		a.statsCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	a.tokens = client.TokenFile{Path: path}
	a.in = bufio.NewReader(cmd.InOrStdin())
	a.client = client.New(a.v.GetString("server"), nil)
	return nil
}

// requireLogin 載入已保存的 token
func (a *app) requireLogin() error {
	tok, err := a.tokens.Load()
	if errors.Is(err, client.ErrNoToken) {
		return errors.New("not logged in, run `moodctl login` first")
	}
	if err != nil {
		return err
	}
	a.client.SetToken(tok)
	return nil
}

func (a *app) prompt(w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(w, label+": "); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword 終端機不回顯；非終端機時改讀一行
func (a *app) promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return a.prompt(w, "Password")
	}
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *app) valueOrPrompt(cmd *cobra.Command, flag, label string) (string, error) {
	v, _ := cmd.Flags().GetString(flag)
	if strings.TrimSpace(v) != "" {
		return v, nil
	}
	return a.prompt(cmd.OutOrStdout(), label)
}

func (a *app) saveToken(cmd *cobra.Command, tok string) error {
	if err := a.tokens.Save(tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
	return nil
}
