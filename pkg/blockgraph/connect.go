package blockgraph

// Connect establishes a connection between two ports. It reports success;
// on failure the graph is unchanged.
//
// The call fails when either block or port does not exist, when both
// ports sit on the same block (self-loops are rejected), or when the
// ports' directions match - exactly one end must be an input and the
// other an output. Direction is the only compatibility rule; categories
// never restrict connectivity.
//
// If either port is already connected, its existing connection is
// severed on both sides before the new one is made. Connect therefore
// silently replaces prior connections: callers that want fail-if-busy
// semantics must check [Port.Connected] themselves first.
func (g *Graph) Connect(fromBlockID, fromPortID, toBlockID, toPortID string) bool {
	from, ok := g.Port(fromBlockID, fromPortID)
	if !ok {
		return false
	}
	to, ok := g.Port(toBlockID, toPortID)
	if !ok {
		return false
	}
	if fromBlockID == toBlockID {
		return false
	}
	if from.Dir == to.Dir {
		return false
	}

	g.sever(from)
	g.sever(to)

	from.ConnectedTo = &PortRef{BlockID: toBlockID, PortID: toPortID}
	to.ConnectedTo = &PortRef{BlockID: fromBlockID, PortID: fromPortID}
	return true
}

// Disconnect severs the connection held by the named port, on both
// sides. Reports whether a connection was removed; a free or unknown
// port is a no-op.
func (g *Graph) Disconnect(blockID, portID string) bool {
	p, ok := g.Port(blockID, portID)
	if !ok || p.ConnectedTo == nil {
		return false
	}
	g.sever(p)
	return true
}

// DisconnectPair severs the specific connection between two named ports.
// Callers that already hold both ends use this to skip the reciprocal
// lookup. Reports whether the named pair was connected; any other state
// (missing ports, free ports, ports connected elsewhere) is a no-op.
func (g *Graph) DisconnectPair(blockID1, portID1, blockID2, portID2 string) bool {
	p1, ok := g.Port(blockID1, portID1)
	if !ok || p1.ConnectedTo == nil {
		return false
	}
	if p1.ConnectedTo.BlockID != blockID2 || p1.ConnectedTo.PortID != portID2 {
		return false
	}
	g.sever(p1)
	return true
}
