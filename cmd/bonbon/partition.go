package main

import (
	"github.com/cielu/bonbon/replay"
	"github.com/cielu/bonbon/store"
	"github.com/cielu/bonbon/store/badgerstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Classify stored transactions into per-NFT partitions",
	Long: `Reads all stored transactions in (slot, block_index) order, runs the
partitioner over each, and writes partition rows and the account_keys side
table. A transaction whose partitioner errors is skipped and logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, err := badgerstore.Open(sinkConfig)
		if err != nil {
			return err
		}
		defer sink.Close()
		return runPartition(sink, logger)
	},
}

func runPartition(sink store.Store, log *zap.Logger) error {
	return sink.TransactionsInOrder(func(rec store.TransactionRecord) error {
		tx, err := decodeTransaction(rec.Transaction)
		if err != nil {
			log.Warn("partition: bad transaction payload", zap.Int64("slot", rec.Slot), zap.Int64("block_index", rec.BlockIndex), zap.Error(err))
			return nil
		}
		partitioned, err := replay.PartitionTransaction(tx)
		if err != nil {
			log.Warn("partition: partitioner error", zap.Uint64("slot", tx.Slot), zap.Uint64("block_index", tx.BlockIndex), zap.Binary("signature", tx.Signature[:]), zap.Error(err))
			return nil
		}
		if len(partitioned) == 0 {
			return nil
		}
		if err := sink.PutAccountKeys(store.AccountKeysRecord{
			Signature: tx.Signature,
			Keys:      tx.Message.AccountKeys,
		}); err != nil {
			return err
		}
		for _, p := range partitioned {
			if err := sink.PutPartition(toPartitionRecord(p)); err != nil {
				return err
			}
		}
		return nil
	})
}

func toPartitionRecord(p replay.PartitionedInstruction) store.PartitionRecord {
	return store.PartitionRecord{
		PartitionKey: p.PartitionKey,
		ProgramKey:   p.ProgramKey,
		Slot:         int64(p.Slot),
		BlockIndex:   int64(p.BlockIndex),
		OuterIndex:   p.OuterIndex,
		InnerIndex:   p.InnerIndex,
		Signature:    p.Signature,
		Instruction:  p.Instruction,
	}
}
