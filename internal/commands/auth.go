package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/neuralfocus/internal/auth"
)

var stdin = bufio.NewReader(os.Stdin)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your account",
	Run: func(cmd *cobra.Command, args []string) {
		email, err := flagOrPrompt(cmd, "email", "Email: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println("Signing in...")
		res, err := auth.NewService(cfg.AuthDelay).Login(cmd.Context(), auth.LoginRequest{
			Email:    email,
			Password: password,
		})
		printAuthResult(res, err)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		name, err := flagOrPrompt(cmd, "name", "Name: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		email, err := flagOrPrompt(cmd, "email", "Email: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		accept, _ := cmd.Flags().GetBool("accept-terms")
		if !accept {
			answer, err := prompt("Accept the terms and conditions? [y/N]: ")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			accept = strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
		}

		fmt.Println("Creating account...")
		res, err := auth.NewService(cfg.AuthDelay).Signup(cmd.Context(), auth.SignupRequest{
			Name:            name,
			Email:           email,
			Password:        password,
			ConfirmPassword: confirm,
			AcceptTerms:     accept,
		})
		printAuthResult(res, err)
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset link",
	Run: func(cmd *cobra.Command, args []string) {
		email, err := flagOrPrompt(cmd, "email", "Email: ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println("Sending reset link...")
		res, err := auth.NewService(cfg.AuthDelay).ForgotPassword(cmd.Context(), auth.ForgotPasswordRequest{Email: email})
		printAuthResult(res, err)
	},
}

func printAuthResult(res auth.Result, err error) {
	var fe auth.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Printf("❌ %s: %s\n", f, fe[f])
		}
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✅ %s\n", res.Message)
	if res.Token != "" {
		fmt.Printf("Session: %s\n", res.Token)
	}
}

func flagOrPrompt(cmd *cobra.Command, name, label string) (string, error) {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v, nil
	}
	return prompt(label)
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(label)
	}
	fmt.Fprint(os.Stderr, label)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(pass), err
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	signupCmd.Flags().String("name", "", "Your name")
	signupCmd.Flags().String("email", "", "Account email")
	signupCmd.Flags().Bool("accept-terms", false, "Accept the terms and conditions")
	forgotPasswordCmd.Flags().String("email", "", "Account email")
}
