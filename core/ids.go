package core

// ids.go – route identifier generation. Grounded on the teacher's use of
// github.com/google/uuid in core/cross_chain_bridge.go's
// StartBridgeTransfer (`ID: uuid.New()`), the same library, same call
// shape, used here for Route and bridge-leg IDs instead of on-chain
// transfer records.

import "github.com/google/uuid"

func newRouteID() string { return uuid.NewString() }
