package replay

import solana "github.com/cielu/bonbon"

var (
	tokenProgramID    = solana.TokenProgramID
	metadataProgramID = solana.MetadataProgramID
)
