package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AlexZinkM/aptos-gifts/aptos"
	"github.com/AlexZinkM/aptos-gifts/internal/api"
	"github.com/AlexZinkM/aptos-gifts/internal/handler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet and gifts HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := a.loadIdentity()
			if err != nil {
				return err
			}
			chain, err := a.newChain()
			if err != nil {
				return err
			}

			// an empty address is resolved from the deployment record per request
			gm := aptos.GiftModule{
				Address:  a.cfg.GiftModuleAddress,
				Module:   a.cfg.GiftModule,
				Function: a.cfg.GiftFunction,
			}
			aptosHandler, err := handler.NewAptosHandler(chain, identity, handler.Options{
				Network:     a.cfg.Network,
				FaucetOctas: a.cfg.FaucetAmountOctas,
				RecordPath:  a.cfg.RecordPath,
				Gift:        gm,
			}, a.logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           api.SetupRouter(aptosHandler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()

			a.logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("address", identity.Address()))
			a.logger.Info("Swagger UI available", zap.String("url", "http://localhost:"+a.cfg.Port+"/swagger/index.html"))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
