/*
Package dispatcher fronts the node with four commands — SubmitTx,
GetBalance, GetNonce, MineBlock — dispatched through a small,
reusable Service[Req, Resp] abstraction: the idiomatic-Go shape of
the original dispatcher's tower::Service-based pipeline, without
pulling in a full middleware framework.

Build assembles the stack the node actually runs: a timeout layer
wrapping a logging layer wrapping a metrics layer wrapping the base
handler, which dispatches synchronously to a *chainnode.NodeManager.
*/
package dispatcher
