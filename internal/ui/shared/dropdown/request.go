package dropdown

import "github.com/zjrosen/xselect/internal/pubsub"

// SelectionRequest asks a container to select one of its items.
//
// Owner is the interception point: only the container whose ID equals Owner
// handles the request, so sibling and nested containers never observe each
// other's traffic.
type SelectionRequest struct {
	Owner  string
	Source ItemKey
	Silent bool
}

// ChangedMsg is emitted after every non-silent selection.
// It carries no value; read Model.Value on the container named by ID.
type ChangedMsg struct {
	ID string
}

// OutsideClickMsg reports a click outside the container while it was open.
// Token names the subscription that observed it.
type OutsideClickMsg struct {
	ID    string
	Token pubsub.Token
}

// CloseRequestMsg asks the container named by ID to close its list.
type CloseRequestMsg struct {
	ID string
}
