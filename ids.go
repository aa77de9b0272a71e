// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package solana

// Well-known program ids this module decodes instructions for.
var (
	// TokenProgramID is the SPL token program.
	TokenProgramID = StrToPublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

	// MetadataProgramID is the Metaplex token-metadata program.
	MetadataProgramID = StrToPublicKey("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// SystemProgramID is the native system program.
	SystemProgramID = StrToPublicKey("11111111111111111111111111111111")
)
