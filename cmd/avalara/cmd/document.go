package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/avalara-go/internal/model"
	"github.com/rezonia/avalara-go/internal/transport"
	"github.com/rezonia/avalara-go/internal/wire"
)

// documentFlags are shared by quote and commit
type documentFlags struct {
	submit       bool
	generateCode bool
	strictRefs   bool
	timeout      time.Duration
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.submit, "submit", false, "Send the document to the tax service instead of printing the payload")
	cmd.Flags().BoolVar(&f.generateCode, "generate-code", false, "Assign a random doc code when the document has none")
	cmd.Flags().BoolVar(&f.strictRefs, "strict", false, "Reject lines that reference unknown address codes")
	cmd.Flags().DurationVar(&f.timeout, "timeout", time.Minute, "Overall request timeout")
}

type finalizeFunc func(*model.TaxDocument) (wire.Object, error)

type submitFunc func(context.Context, *model.TaxDocument) (transport.Response, error)

func runDocument(flags *documentFlags, finalize finalizeFunc, submit func() (submitFunc, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		in, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if flags.generateCode {
			in.EnsureDocCode()
		}

		var opts []model.Option
		if flags.strictRefs {
			opts = append(opts, model.WithStrictAddressRefs())
		}

		doc, err := in.Build(opts...)
		if err != nil {
			return err
		}
		log.Debug("built document",
			zap.String("doc_code", doc.DocCode),
			zap.Int("addresses", len(doc.Addresses())),
			zap.Int("lines", len(doc.Lines())),
			zap.String("total_amount", doc.TotalAmount().String()))

		if !flags.submit {
			payload, err := finalize(doc)
			if err != nil {
				return err
			}
			return writeOutput(payload)
		}

		send, err := submit()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
		defer cancel()

		resp, err := send(ctx, doc)
		if err != nil {
			return err
		}
		return writeOutput(resp)
	}
}
