package main

import (
	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/client"
	"github.com/AlexZinkM/aptos-gifts/internal/config"
)

func (a *app) newChain() (*client.AptosClient, error) {
	network, err := client.ResolveNetwork(a.cfg.Network, a.cfg.NodeURL, a.cfg.FaucetURL)
	if err != nil {
		return nil, err
	}
	return client.NewAptosClient(network, client.Options{
		MaxGasAmount: a.cfg.MaxGasAmount,
		WaitTimeout:  a.cfg.TxWaitTimeout,
	})
}

func (a *app) identityOptions() aptos.IdentityOptions {
	return aptos.IdentityOptions{
		Secret:    a.cfg.PrivateKey,
		SecretEnv: config.PrivateKeyEnv,
		KeyFile:   a.cfg.KeyFile,
		Network:   a.cfg.Network,
		Password:  passwordPrompt("Keystore password: "),
	}
}

// loadIdentity returns the configured identity without generating one
func (a *app) loadIdentity() (*aptos.Identity, error) {
	return aptos.LoadIdentity(a.identityOptions())
}

func passwordPrompt(prompt string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return config.PromptForPassword(prompt)
	}
}
