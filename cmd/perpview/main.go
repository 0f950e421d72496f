package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/perpview/perpview/internal/api"
	"github.com/perpview/perpview/internal/balance"
	"github.com/perpview/perpview/internal/config"
	"github.com/perpview/perpview/internal/drift"
	"github.com/perpview/perpview/internal/export"
	"github.com/perpview/perpview/internal/order"
	"github.com/perpview/perpview/internal/portfolio"
	"github.com/perpview/perpview/internal/position"
)

func main() {
	app := &cli.App{
		Name:  "perpview",
		Usage: "derive wallet portfolio views from a Drift data gateway",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API server",
				Action: func(c *cli.Context) error {
					return runServe(c.Context)
				},
			},
			{
				Name:      "view",
				Usage:     "print the portfolio view for a wallet as JSON",
				ArgsUsage: "<address>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one wallet address argument")
					}
					return runView(c.Context, c.Args().First())
				},
			},
			{
				Name:      "export",
				Usage:     "write the portfolio view for a wallet to an xlsx workbook",
				ArgsUsage: "<address>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "portfolio.xlsx",
						Usage: "output workbook path",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one wallet address argument")
					}
					return runExport(c.Context, c.Args().First(), c.String("out"))
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildPortfolioService(cfg config.Config) *portfolio.Service {
	gateway := drift.NewClient(cfg.GatewayURL, cfg.GatewayRetryMax, cfg.GatewayRetryBaseDelay)

	balanceSvc := balance.NewService(gateway, cfg.Venue)
	positionSvc := position.NewService(gateway, cfg.Venue)
	orderSvc := order.NewService(cfg.Venue)

	return portfolio.NewService(gateway, balanceSvc, positionSvc, orderSvc, cfg.SubaccountConcurrency)
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	portfolioSvc := buildPortfolioService(cfg)

	handler := api.NewHandler(portfolioSvc, cfg.DeriveTimeout)
	srv := api.NewServer(":"+cfg.HTTPPort, handler)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runView(ctx context.Context, wallet string) error {
	cfg := config.Load()
	portfolioSvc := buildPortfolioService(cfg)

	ctx, cancel := context.WithTimeout(ctx, cfg.DeriveTimeout)
	defer cancel()

	view, err := portfolioSvc.Derive(ctx, wallet)
	if err != nil {
		return fmt.Errorf("deriving portfolio: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func runExport(ctx context.Context, wallet, out string) error {
	cfg := config.Load()
	portfolioSvc := buildPortfolioService(cfg)
	exportSvc := export.NewService(portfolioSvc, export.NewXlsxWriter(out))

	ctx, cancel := context.WithTimeout(ctx, cfg.DeriveTimeout)
	defer cancel()

	if err := exportSvc.Export(ctx, wallet); err != nil {
		return err
	}
	slog.Info("portfolio exported", "wallet", wallet, "path", out)
	return nil
}
