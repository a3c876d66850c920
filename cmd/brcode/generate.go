package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/infra/cache"
	"github.com/boddenberg/pj-collections-go/internal/infra/observability"
	"github.com/boddenberg/pj-collections-go/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func generateCmd() *cobra.Command {
	var req domain.BRCodeRequest
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a PIX copy-and-paste code",
		Long: `Generate a PIX BR Code and print it.

Static code:
  brcode generate --name "LOJA TESTE" --city "SAO PAULO" --key 11144477735 --amount 10

Dynamic code:
  brcode generate --name "LOJA TESTE" --city "SAO PAULO" --url https://pix.example.com/qr/v2/abc --unique`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cache.New[*domain.BRCode](time.Minute)
			defer c.Close()

			svc := service.NewCollectionService(c, observability.NewMetrics(), zap.NewNop())
			code, err := svc.GenerateBRCode(context.Background(), &req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(code)
			}
			fmt.Fprintln(out, code.Payload)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Emitter.FullName, "name", "", "Merchant name (tag 59)")
	f.StringVar(&req.Emitter.CityName, "city", "", "Merchant city (tag 60)")
	f.StringVarP(&req.Emitter.Key, "key", "k", "", "PIX key")
	f.Float64VarP(&req.Amount, "amount", "a", 0, "Amount in BRL")
	f.StringVarP(&req.Description, "description", "d", "", "Description shown to the payer")
	f.StringVar(&req.TransactionID, "txid", "", "Transaction id (defaults to ***)")
	f.BoolVar(&req.UniquePayment, "unique", false, "Code can be paid only once")
	f.StringVar(&req.URL, "url", "", "Payload location of a dynamic code")
	f.BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("city")

	return cmd
}
