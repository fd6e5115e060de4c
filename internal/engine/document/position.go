package document

import "fmt"

// BlockID is a stable handle to a block slot in a document's arena. The
// handle of a live block never changes; once the block is removed the
// handle goes dead and may later be reissued for a new block.
type BlockID int32

// noBlock marks the absent ends of the sentinel links.
const noBlock BlockID = -1

// Slots 0 and 1 are the permanent document sentinels. They are allocated at
// construction, are never live blocks, and never move, which makes the zero
// Position invalid by construction.
const (
	sentinelStart BlockID = 0
	sentinelEnd   BlockID = 1
)

// Position addresses a point between two characters: a block handle, a run
// index within the block, and a character offset within the run.
//
// Canonical form: Off may equal the run's length only on the block's last
// run; the boundary between two runs is addressed as offset 0 of the
// following run. Operations accept any in-range position and canonicalize.
type Position struct {
	Block BlockID
	Run   int
	Off   int
}

// String renders the position for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("block %d run %d off %d", p.Block, p.Run, p.Off)
}
