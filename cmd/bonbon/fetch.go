package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	solana "github.com/cielu/bonbon"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/store"
	"github.com/cielu/bonbon/store/badgerstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// chunkSize is the original chocolatier CLI's slot-range fetch granularity.
const chunkSize = 16

// newSource resolves --source-config to a ledger.Source. The concrete chain
// data source (an RPC client, a BigTable export reader, ...) is outside this
// module's scope; callers embedding this command wire their own by
// replacing this variable.
var newSource = func(cfg string) (ledger.Source, error) {
	return nil, fmt.Errorf("fetch: no ledger.Source configured for %q", cfg)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Pull confirmed blocks in a slot range into the store",
	Long: `Pulls confirmed blocks [start, end) in chunks of 16 slots, keeps only
transactions whose account_keys mention the token or metadata program, and
writes them to the sink.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := parseRange(rangeFlag)
		if err != nil {
			return err
		}
		src, err := newSource(sourceConfig)
		if err != nil {
			return err
		}
		sink, err := badgerstore.Open(sinkConfig)
		if err != nil {
			return err
		}
		defer sink.Close()
		return runFetch(cmd.Context(), src, sink, start, end, logger)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&sourceConfig, "source-config", "", "connection string for the ledger data source")
	fetchCmd.Flags().StringVar(&rangeFlag, "range", "", "slot range to fetch, as start-end")
}

func parseRange(s string) (start, end uint64, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("fetch: --range must be start-end, got %q", s)
	}
	start, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch: bad range start: %w", err)
	}
	end, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch: bad range end: %w", err)
	}
	return start, end, nil
}

func runFetch(ctx context.Context, src ledger.Source, sink store.Store, start, end uint64, log *zap.Logger) error {
	for chunkStart := start; chunkStart < end; chunkStart += chunkSize {
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > end {
			chunkEnd = end
		}
		err := src.FetchRange(ctx, chunkStart, chunkEnd, func(tx ledger.Transaction) error {
			if !mentionsRelevantProgram(tx) {
				return nil
			}
			return writeTransaction(sink, tx)
		})
		if err != nil {
			log.Warn("fetch: chunk failed", zap.Uint64("chunk_start", chunkStart), zap.Uint64("chunk_end", chunkEnd), zap.Error(err))
			continue
		}
	}
	return nil
}

func mentionsRelevantProgram(tx ledger.Transaction) bool {
	for _, key := range tx.Message.AccountKeys {
		if key == solana.TokenProgramID || key == solana.MetadataProgramID {
			return true
		}
	}
	return false
}

func writeTransaction(sink store.Store, tx ledger.Transaction) error {
	data, err := encodeTransaction(tx)
	if err != nil {
		return err
	}
	return sink.PutTransaction(store.TransactionRecord{
		Slot:        int64(tx.Slot),
		BlockIndex:  int64(tx.BlockIndex),
		Signature:   tx.Signature,
		Transaction: data,
	})
}
