package replay

import "errors"

// Error taxonomy for the partitioner, matching the input-shape and
// transaction-level error kinds named in the replay design.
var (
	ErrMissingTransactionStatusMeta        = errors.New("replay: missing transaction status meta")
	ErrBadAccountKeyIndex                  = errors.New("replay: bad account key index")
	ErrBadTokenMetaAccountIndex            = errors.New("replay: bad token meta account index")
	ErrBadPubkeyString                     = errors.New("replay: bad pubkey string")
	ErrFailedTransientTokenAccountMatching = errors.New("replay: failed transient token account matching")
)
