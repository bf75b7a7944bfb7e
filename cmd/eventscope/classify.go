package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eventScope/internal/chain"
	"eventScope/internal/config"
	"eventScope/internal/model"
	"eventScope/internal/receipt"
	"eventScope/internal/semantics"
	"eventScope/internal/storage"
	"eventScope/internal/storage/postgres"
	"eventScope/internal/tokenmeta"
)

func runClassify(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	cfg := env.cfg
	env.logger.Info("classify start", zap.String("in", cfg.In), zap.String("out", cfg.Out))

	var sink storage.Storage
	if cfg.Out != "" {
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	var total, classified, failed int
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

		events := env.engine.KnownEvents(in)
		receiptItems := receipt.Build(env.addrs, in)
		result := model.ClassifiedTransaction{
			TxHash:  record.TxHash,
			Sender:  record.Sender,
			Events:  events,
			Receipt: &receiptItems,
		}

		if sink != nil {
			if err := sink.PutResultBatch([]model.ClassifiedTransaction{result}); err != nil {
				return err
			}
		} else {
			for _, event := range events {
				fmt.Printf("%s  %s\n", record.TxHash, receipt.FormatEvent(event))
			}
		}
		if env.store != nil {
			if err := env.store.UpsertClassified(env.ctx, []model.ClassifiedTransaction{result}); err != nil {
				return err
			}
		}
		classified++
		return nil
	})
	if err != nil {
		return err
	}

	env.logger.Info("classify complete",
		zap.Int("total", total),
		zap.Int("classified", classified),
		zap.Int("failed", failed),
	)
	return nil
}

// environment wires the shared pieces of both subcommands.
type environment struct {
	ctx      context.Context
	stop     context.CancelFunc
	cfg      config.Config
	logger   *zap.Logger
	addrs    semantics.Addresses
	engine   *semantics.Engine
	metadata model.MetadataFunc
	client   *chain.Client
	store    *postgres.Store
}

func setup(cmd *cobra.Command) (*environment, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.In == "" {
		return nil, fmt.Errorf("input path is required")
	}

	addrs, err := engineAddresses(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := semantics.New(addrs, semantics.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	env := &environment{ctx: ctx, stop: stop, cfg: cfg, logger: logger, addrs: addrs, engine: engine}

	var static map[common.Address]model.TokenMeta
	if cfg.TokenMetaFile != "" {
		static, err = tokenmeta.LoadStatic(cfg.TokenMetaFile)
		if err != nil {
			env.close()
			return nil, err
		}
	}

	if cfg.RPCURL != "" {
		env.client, err = chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			env.close()
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
	}
	env.metadata = tokenmeta.NewResolver(env.client, static, logger).Lookup(ctx)

	if cfg.PgDSN != "" {
		env.store, err = postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			env.close()
			return nil, err
		}
	}
	return env, nil
}

func (env *environment) close() {
	if env.store != nil {
		env.store.Close()
	}
	if env.client != nil {
		env.client.Close()
	}
	env.logger.Sync()
	env.stop()
}

// eachTransaction streams the input JSONL. Numbers decode as json.Number so
// 256-bit amounts survive the trip.
func (env *environment) eachTransaction(fn func(model.TransactionRecord) error) error {
	file, err := os.Open(env.cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		decoder := json.NewDecoder(bytes.NewReader(line))
		decoder.UseNumber()
		var record model.TransactionRecord
		if err := decoder.Decode(&record); err != nil {
			env.logger.Warn("decode transaction", zap.Error(err))
			continue
		}
		if err := fn(record); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}

func engineAddresses(cfg config.Config) (semantics.Addresses, error) {
	addrs := semantics.Addresses{RoleNames: semantics.DefaultRoleNames()}

	for _, field := range []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"fee-manager", cfg.FeeManager, &addrs.FeeManager},
		{"exchange", cfg.Exchange, &addrs.Exchange},
		{"token-factory", cfg.TokenFactory, &addrs.TokenFactory},
		{"policy-registry", cfg.PolicyRegistry, &addrs.PolicyRegistry},
		{"nonce-manager", cfg.NonceManager, &addrs.NonceManager},
		{"fee-pool", cfg.FeeLiquidityPool, &addrs.FeeLiquidityPool},
	} {
		if field.value == "" {
			continue
		}
		if !common.IsHexAddress(field.value) {
			return semantics.Addresses{}, fmt.Errorf("invalid %s address: %s", field.name, field.value)
		}
		*field.dst = common.HexToAddress(field.value)
	}

	if cfg.RoleNamesFile != "" {
		names, err := loadRoleNames(cfg.RoleNamesFile)
		if err != nil {
			return semantics.Addresses{}, err
		}
		for hash, name := range names {
			addrs.RoleNames[hash] = name
		}
	}
	return addrs, nil
}

func loadRoleNames(path string) (map[common.Hash]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role names: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse role names: %w", err)
	}
	names := make(map[common.Hash]string, len(raw))
	for key, name := range raw {
		names[common.HexToHash(key)] = name
	}
	return names, nil
}
