package solana

// CompiledInstruction is one instruction of a Message: an index into the
// message's account_keys naming the executing program, an ordered list of
// account indices, and the opaque instruction payload.
//
// Indices are stored as uint16 rather than uint8 because a bare []byte is
// treated specially by encoding/json and reflect-based codecs; the wire
// values are always single bytes.
type CompiledInstruction struct {
	ProgramIDIndex uint16   `json:"programIdIndex"`
	Accounts       []uint16 `json:"accounts"`
	Data           []byte   `json:"data"`
}
