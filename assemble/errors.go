package assemble

import "errors"

// Error taxonomy for the assembler's invariant checks (§4.5, §7).
var (
	ErrBadAccountKeyIndex             = errors.New("assemble: bad account key index")
	ErrInvalidMetadataCreate          = errors.New("assemble: invalid metadata create")
	ErrInvalidMetadataUpdate          = errors.New("assemble: invalid metadata update")
	ErrInvalidMasterEditionCreate     = errors.New("assemble: invalid master edition create")
	ErrInvalidMetadataVerifyOperation = errors.New("assemble: invalid metadata verify operation")
)
