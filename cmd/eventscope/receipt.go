package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eventScope/internal/model"
	"eventScope/internal/receipt"
	"eventScope/internal/semantics"
)

func runReceipt(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	env.logger.Info("receipt start", zap.String("in", env.cfg.In))

	var total, rendered, failed int
	err = env.eachTransaction(func(record model.TransactionRecord) error {
		total++
		in := semantics.Input{
			Logs:     record.Logs,
			Tx:       record.Call,
			Sender:   record.Sender,
			Metadata: env.metadata,
		}
		if err := in.Validate(); err != nil {
			failed++
			env.logger.Warn("invalid transaction", zap.String("tx", record.TxHash), zap.Error(err))
			return nil
		}

		items := receipt.Build(env.addrs, in)
		fmt.Printf("Receipt %s\n\n%s\n", record.TxHash, receipt.RenderText(items))

		if env.store != nil {
			result := model.ClassifiedTransaction{
				TxHash:  record.TxHash,
				Sender:  record.Sender,
				Events:  env.engine.KnownEvents(in),
				Receipt: &items,
			}
			if err := env.store.UpsertClassified(env.ctx, []model.ClassifiedTransaction{result}); err != nil {
				return err
			}
		}
		rendered++
		return nil
	})
	if err != nil {
		return err
	}

	env.logger.Info("receipt complete",
		zap.Int("total", total),
		zap.Int("rendered", rendered),
		zap.Int("failed", failed),
	)
	return nil
}
