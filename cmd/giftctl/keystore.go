package main

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/config"
	"github.com/AlexZinkM/aptos-gifts/internal/crypto"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newKeystoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Manage the encrypted key file",
	}
	cmd.AddCommand(newKeystoreNewCmd(a), newKeystorePasswdCmd(a), newKeystoreAddressCmd(a))
	return cmd
}

func (a *app) keyFile(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.KeyFile != "" {
		return a.cfg.KeyFile, nil
	}
	return "", errors.New("keystore path is required: pass --file or set APTOS_KEY_FILE")
}

func newKeystoreNewCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new account and save it to an encrypted keystore",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.keyFile(file)
			if err != nil {
				return err
			}

			identity, err := aptos.GenerateIdentity()
			if err != nil {
				return err
			}
			if err := aptos.SaveKeystore(identity, path, a.cfg.Network, confirmedPassword); err != nil {
				return err
			}

			a.logger.Info("🔐 Keystore created", zap.String("path", path), zap.String("address", identity.Address()))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, identity.Address())
			if qr, err := aptos.TerminalQR(identity.Address()); err == nil {
				fmt.Fprint(out, qr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "keystore path (default APTOS_KEY_FILE), must end in "+crypto.KeystoreExt)
	return cmd
}

func newKeystorePasswdCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Re-encrypt the keystore under a new password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.keyFile(file)
			if err != nil {
				return err
			}

			oldPassword, err := config.PromptForPassword("Current password: ")
			if err != nil {
				return err
			}
			defer clear(oldPassword)

			newPassword, err := confirmedPassword()
			if err != nil {
				return err
			}
			defer clear(newPassword)

			if err := crypto.Rekey(path, oldPassword, newPassword); err != nil {
				return err
			}
			a.logger.Info("🔐 Keystore password changed", zap.String("path", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "keystore path (default APTOS_KEY_FILE)")
	return cmd
}

func newKeystoreAddressCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the keystore address without decrypting it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.keyFile(file)
			if err != nil {
				return err
			}
			address, err := crypto.ReadKeystoreAddress(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "keystore path (default APTOS_KEY_FILE)")
	return cmd
}

// confirmedPassword prompts twice and requires both entries to match
func confirmedPassword() ([]byte, error) {
	pw, err := config.PromptForPassword("New password: ")
	if err != nil {
		return nil, err
	}
	again, err := config.PromptForPassword("Repeat password: ")
	if err != nil {
		clear(pw)
		return nil, err
	}
	defer clear(again)

	if string(pw) != string(again) {
		clear(pw)
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}
