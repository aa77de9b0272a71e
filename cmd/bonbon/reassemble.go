package main

import (
	"fmt"
	"os"

	"github.com/cielu/bonbon/assemble"
	"github.com/cielu/bonbon/internal/dump"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/orchestrate"
	"github.com/cielu/bonbon/store"
	"github.com/cielu/bonbon/store/badgerstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// findMetadataAccount derives a mint's canonical metadata account. The
// Metaplex program-derived-address computation is outside this module's
// scope; callers embedding this command replace this variable with a real
// derivation.
var findMetadataAccount = func(mint ledger.Key) ledger.Key {
	return mint
}

var reassembleCmd = &cobra.Command{
	Use:   "reassemble",
	Short: "Assemble final Bonbon records from stored partitions",
	Long: `For each distinct mint partition key, joins with its metadata key,
orders instructions, runs the assembler, and emits a final Bonbon record.
A Bonbon whose update fails is logged and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, err := badgerstore.Open(sinkConfig)
		if err != nil {
			return err
		}
		defer sink.Close()
		return runReassemble(sink, logger)
	},
}

func runReassemble(sink store.Store, log *zap.Logger) error {
	src := store.OrchestratorSource{Store: sink}
	bonbons, err := orchestrate.Run(src, findMetadataAccount, log)
	if err != nil {
		return fmt.Errorf("reassemble: %w", err)
	}
	for mint, b := range bonbons {
		if err := persistBonbon(sink, mint, b); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintln(os.Stderr, dump.Sdump(b))
		}
	}
	return nil
}

func persistBonbon(sink store.Store, mint ledger.Key, b *assemble.Bonbon) error {
	if err := sink.PutBonbon(store.BonbonRecord{
		MintKey:        b.MintKey,
		MetadataKey:    b.MetadataKey,
		CurrentOwner:   b.CurrentOwner,
		CurrentAccount: b.CurrentAccount,
		EditionStatus:  b.EditionStatus,
		LimitedEdition: b.LimitedEdition,
	}); err != nil {
		return fmt.Errorf("reassemble: put bonbon %s: %w", mint, err)
	}
	for _, g := range b.Glazing {
		if err := sink.PutGlazing(store.GlazingRecord{
			MintKey:    mint,
			Slot:       int64(g.At.Slot),
			BlockIndex: int64(g.At.BlockIndex),
			OuterIndex: g.At.OuterIndex,
			InnerIndex: g.At.InnerIndex,
			Glazing:    g,
		}); err != nil {
			return fmt.Errorf("reassemble: put glazing %s: %w", mint, err)
		}
	}
	return nil
}
